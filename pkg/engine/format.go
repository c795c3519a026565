package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

var titleCaser = cases.Title(language.English)

const darkDescription = "It is pitch black. You can't see a thing."

// describeLocation renders the full look response for a player's current
// location, honoring darkness gating.
func (e *Engine) describeLocation(p *state.Player) string {
	loc := e.world.Location(p.Location)
	if loc == nil {
		return fmt.Sprintf("error: player %s has no valid location", p.ID)
	}
	if e.locationDark(loc) {
		return darkDescription
	}

	var b strings.Builder
	b.WriteString(titleCaser.String(loc.Name))
	if loc.Description != "" {
		b.WriteString("\n")
		b.WriteString(loc.Description)
	}

	var things []string
	for _, itemID := range e.store.ItemsAt(state.PlaceID(loc.ID)) {
		item := e.world.Item(itemID)
		if item != nil && e.itemDiscoverable(item) {
			things = append(things, item.Name)
		}
	}
	for _, st := range e.store.StacksAt(state.PlaceID(loc.ID)) {
		if kind := e.world.ItemKind(st.Kind); kind != nil {
			things = append(things, stackLabel(kind, st.Quantity))
		}
	}
	if len(things) > 0 {
		b.WriteString("\nYou see: ")
		b.WriteString(strings.Join(things, ", "))
		b.WriteString(".")
	}

	if exits := e.visibleExits(loc); len(exits) > 0 {
		b.WriteString("\nExits: ")
		b.WriteString(strings.Join(exits, ", "))
		b.WriteString(".")
	}
	return b.String()
}

// visibleExits lists exit directions, skipping hidden exits whose reveal
// condition does not hold.
func (e *Engine) visibleExits(loc *world.Location) []string {
	var dirs []string
	for _, exit := range loc.Exits {
		if exit.Hidden && !exit.RevealWhen.Eval(e.store) {
			continue
		}
		dirs = append(dirs, exit.Direction)
	}
	return dirs
}

// stackLabel renders a quantity of a generic item kind: "3 gold coins".
func stackLabel(kind *world.GenericItem, quantity int) string {
	return fmt.Sprintf("%d %s", quantity, kind.DisplayName(quantity))
}

// itemMessage returns an item's message override or a formatted default.
func itemMessage(override, format string, args ...any) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf(format, args...)
}
