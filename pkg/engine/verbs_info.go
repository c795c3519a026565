package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/questline/questline/pkg/command"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

func (e *Engine) handleLook(p *state.Player, cmd command.Command) string {
	return e.describeLocation(p)
}

func (e *Engine) handleExamine(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Examine what?"
	}
	loc := e.world.Location(p.Location)
	if e.locationDark(loc) {
		return darkDescription
	}

	here := state.PlaceID(p.Location)
	inv := p.Inventory()
	if item, _, ok := e.findUnique(cmd.DirectObject, here, inv); ok {
		var b strings.Builder
		if item.Description != "" {
			b.WriteString(item.Description)
		} else {
			b.WriteString(fmt.Sprintf("You see nothing special about the %s.", item.Name))
		}
		if item.IsContainer {
			b.WriteString("\n")
			b.WriteString(e.describeContainer(item))
		}
		return b.String()
	}
	if kind, place, ok := e.findKind(cmd.DirectObject, here, inv); ok {
		qty := e.store.StackQuantity(place, kind.ID)
		if kind.Description != "" {
			return fmt.Sprintf("%s (%s)", kind.Description, stackLabel(kind, qty))
		}
		return fmt.Sprintf("You count %s.", stackLabel(kind, qty))
	}
	return fmt.Sprintf("You don't see any %s here.", cmd.DirectObject)
}

// describeContainer renders a container's open/closed state and contents.
func (e *Engine) describeContainer(item *world.UniqueItem) string {
	cs, ok := e.store.Container(item.ID)
	if !ok {
		return fmt.Sprintf("The %s is closed.", item.Name)
	}
	if cs.Locked {
		return fmt.Sprintf("The %s is locked.", item.Name)
	}
	if !cs.Open {
		return fmt.Sprintf("The %s is closed.", item.Name)
	}
	stacks := e.store.StacksAt(state.PlaceID(item.ID))
	if len(stacks) == 0 {
		return fmt.Sprintf("The %s is empty.", item.Name)
	}
	var parts []string
	for _, st := range stacks {
		if kind := e.world.ItemKind(st.Kind); kind != nil {
			parts = append(parts, stackLabel(kind, st.Quantity))
		}
	}
	return fmt.Sprintf("The %s contains: %s.", item.Name, strings.Join(parts, ", "))
}

func (e *Engine) handleInventory(p *state.Player, cmd command.Command) string {
	inv := p.Inventory()
	var lines []string
	for _, itemID := range e.store.ItemsAt(inv) {
		if item := e.world.Item(itemID); item != nil {
			lines = append(lines, item.Name)
		}
	}
	for _, st := range e.store.StacksAt(inv) {
		if kind := e.world.ItemKind(st.Kind); kind != nil {
			lines = append(lines, stackLabel(kind, st.Quantity))
		}
	}
	if len(lines) == 0 {
		return "You aren't carrying anything."
	}
	return "You are carrying:\n- " + strings.Join(lines, "\n- ")
}

func (e *Engine) handleQuests(p *state.Player, cmd command.Command) string {
	statuses := e.store.QuestStatuses()
	ids := make([]string, 0, len(statuses))
	for id := range statuses {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var active, completed []string
	for _, questID := range ids {
		status := statuses[questID]
		q := e.world.Quest(questID)
		if q == nil {
			continue
		}
		switch status {
		case world.QuestActive:
			var b strings.Builder
			b.WriteString(q.Name)
			for _, obj := range q.Objectives {
				mark := " "
				if e.store.FlagSet(world.ObjectiveFlag(q.ID, obj.ID)) {
					mark = "x"
				}
				b.WriteString(fmt.Sprintf("\n  [%s] %s", mark, obj.Description))
			}
			active = append(active, b.String())
		case world.QuestCompleted:
			completed = append(completed, q.Name)
		}
	}
	if len(active) == 0 && len(completed) == 0 {
		return "You have no quests."
	}
	var b strings.Builder
	if len(active) > 0 {
		b.WriteString("Active quests:\n")
		b.WriteString(strings.Join(active, "\n"))
	}
	if len(completed) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Completed: ")
		b.WriteString(strings.Join(completed, ", "))
	}
	return b.String()
}

func (e *Engine) handleScore(p *state.Player, cmd command.Command) string {
	return fmt.Sprintf("Score: %d points in %d turns.", p.Score, p.TurnCount)
}

func (e *Engine) handleHelp(p *state.Player, cmd command.Command) string {
	return strings.Join([]string{
		"Some things you can try:",
		"  go <direction>, or just north / south / east / west / up / down",
		"  look, examine <thing>, inventory, quests, score",
		"  take <thing>, drop <thing>, put <thing> in <container>",
		"  open / close / lock / unlock <container> [with <key>]",
		"  use <thing>",
	}, "\n")
}
