package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/questline/questline/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &WorldValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("world file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var w world.World
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal world: %w", err)
	}
	w.FillIDs()

	if err := w.Validate(); err != nil {
		v.errors = append(v.errors, err.Error())
	}
	v.lint(&w)

	if len(v.errors) > 0 {
		return fmt.Errorf("%d problem(s):\n  %s", len(v.errors), strings.Join(v.errors, "\n  "))
	}
	return nil
}

// lint flags authoring mistakes the engine tolerates but authors rarely
// intend.
func (v *WorldValidator) lint(w *world.World) {
	for id, loc := range w.Locations {
		if loc.Name == "" {
			v.errors = append(v.errors, fmt.Sprintf("location %q has no name", id))
		}
		for _, exit := range loc.Exits {
			if exit.Hidden && exit.RevealWhen == nil {
				v.errors = append(v.errors, fmt.Sprintf("location %q exit %q is hidden with no reveal condition", id, exit.Direction))
			}
			if exit.Locked && exit.RequiredItem == "" {
				v.errors = append(v.errors, fmt.Sprintf("location %q exit %q is locked with no required item", id, exit.Direction))
			}
		}
	}
	for id, item := range w.Items {
		if item.Name == "" {
			v.errors = append(v.errors, fmt.Sprintf("item %q has no name", id))
		}
	}
	for id, kind := range w.ItemKinds {
		if kind.Singular == "" || kind.Plural == "" {
			v.errors = append(v.errors, fmt.Sprintf("item kind %q needs both singular and plural names", id))
		}
	}
	mainQuests := 0
	for id, q := range w.Quests {
		if q.IsMain {
			mainQuests++
		}
		// A require-all quest with no required objective completes on the
		// first turn.
		if q.RequireAll && len(q.Objectives) > 0 {
			required := false
			for _, obj := range q.Objectives {
				if obj.Required {
					required = true
					break
				}
			}
			if !required {
				v.errors = append(v.errors, fmt.Sprintf("quest %q requires all objectives but marks none as required", id))
			}
		}
	}
	if mainQuests > 1 {
		v.errors = append(v.errors, fmt.Sprintf("world declares %d main quests, expected at most one", mainQuests))
	}
}

var worldFilenamePattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

func isValidWorldFilename(name string) bool {
	return worldFilenamePattern.MatchString(name)
}
