package main

import (
	"strings"
	"testing"

	"github.com/questline/questline/pkg/world"
)

func lintErrors(w *world.World) []string {
	v := &WorldValidator{}
	v.lint(w)
	return v.errors
}

func hasError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestLintRequireAllWithoutRequiredObjective(t *testing.T) {
	w := &world.World{
		Quests: map[string]*world.Quest{
			"side": {
				ID: "side", Name: "Side", RequireAll: true,
				Objectives: []world.Objective{{ID: "a"}, {ID: "b"}},
			},
		},
	}
	errs := lintErrors(w)
	if !hasError(errs, "marks none as required") {
		t.Errorf("lint missed require-all quest without required objectives: %v", errs)
	}

	w.Quests["side"].Objectives[0].Required = true
	if errs := lintErrors(w); hasError(errs, "marks none as required") {
		t.Errorf("lint fired with a required objective present: %v", errs)
	}
}

func TestLintMultipleMainQuests(t *testing.T) {
	w := &world.World{
		Quests: map[string]*world.Quest{
			"a": {ID: "a", Name: "A", IsMain: true},
			"b": {ID: "b", Name: "B", IsMain: true},
		},
	}
	if errs := lintErrors(w); !hasError(errs, "main quests") {
		t.Errorf("lint missed duplicate main quests: %v", errs)
	}
}

func TestWorldFilenamePattern(t *testing.T) {
	valid := []string{"gatehouse_hollow", "keep", "world_2"}
	for _, name := range valid {
		if !isValidWorldFilename(name) {
			t.Errorf("%q should be a valid world filename", name)
		}
	}
	invalid := []string{"Gatehouse", "gate-house", "_keep", "keep_", ""}
	for _, name := range invalid {
		if isValidWorldFilename(name) {
			t.Errorf("%q should be rejected", name)
		}
	}
}
