package engine

import (
	"fmt"

	"github.com/questline/questline/pkg/command"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

const noKeyFitsMessage = "None of your keys fit."

func (e *Engine) handleOpen(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Open what?"
	}
	item, msg := e.resolveContainer(p, cmd.DirectObject)
	if item == nil {
		return msg
	}
	cs, _ := e.store.Container(item.ID)
	if cs.Open {
		return fmt.Sprintf("The %s is already open.", item.Name)
	}
	if cs.Locked {
		return fmt.Sprintf("The %s is locked.", item.Name)
	}
	cs.Open = true
	e.store.SetContainer(item.ID, cs)
	opened := itemMessage(item.Messages.Open, "You open the %s.", item.Name)
	return opened + "\n" + e.describeContainer(item)
}

func (e *Engine) handleClose(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Close what?"
	}
	item, msg := e.resolveContainer(p, cmd.DirectObject)
	if item == nil {
		return msg
	}
	cs, _ := e.store.Container(item.ID)
	if !cs.Open {
		return fmt.Sprintf("The %s is already closed.", item.Name)
	}
	cs.Open = false
	e.store.SetContainer(item.ID, cs)
	return fmt.Sprintf("You close the %s.", item.Name)
}

func (e *Engine) handleLock(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Lock what?"
	}
	// Exits first: "lock north" keys on (location, direction).
	if dir, ok := command.CanonicalDirection(cmd.DirectObject); ok {
		return e.lockExit(p, cmd, dir, true)
	}

	item, msg := e.resolveContainer(p, cmd.DirectObject)
	if item == nil {
		return msg
	}
	cs, _ := e.store.Container(item.ID)
	if cs.Locked {
		return fmt.Sprintf("The %s is already locked.", item.Name)
	}
	// Locking requires the container to be closed.
	if cs.Open {
		return fmt.Sprintf("You'll have to close the %s first.", item.Name)
	}
	if failed := e.requireKey(p, cmd, item.Container.RequiredKey); failed != "" {
		return failed
	}
	cs.Locked = true
	e.store.SetContainer(item.ID, cs)
	return fmt.Sprintf("You lock the %s.", item.Name)
}

func (e *Engine) handleUnlock(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Unlock what?"
	}
	if dir, ok := command.CanonicalDirection(cmd.DirectObject); ok {
		return e.lockExit(p, cmd, dir, false)
	}

	item, msg := e.resolveContainer(p, cmd.DirectObject)
	if item == nil {
		return msg
	}
	cs, _ := e.store.Container(item.ID)
	if !cs.Locked {
		return fmt.Sprintf("The %s isn't locked.", item.Name)
	}
	if failed := e.requireKey(p, cmd, item.Container.RequiredKey); failed != "" {
		return failed
	}
	cs.Locked = false
	e.store.SetContainer(item.ID, cs)
	return fmt.Sprintf("You unlock the %s.", item.Name)
}

// lockExit applies the container key logic to a locked exit, keyed by
// (location, direction) rather than item id.
func (e *Engine) lockExit(p *state.Player, cmd command.Command, direction string, lock bool) string {
	loc := e.world.Location(p.Location)
	exit := e.findExit(loc, direction)
	if exit == nil {
		return fmt.Sprintf("There is no way %s from here.", direction)
	}
	locked := e.store.ExitLocked(loc.ID, exit.Direction)
	if lock && locked {
		return fmt.Sprintf("The way %s is already locked.", exit.Direction)
	}
	if !lock && !locked {
		return fmt.Sprintf("The way %s isn't locked.", exit.Direction)
	}
	if failed := e.requireKey(p, cmd, exit.RequiredItem); failed != "" {
		return failed
	}
	e.store.SetExitLocked(loc.ID, exit.Direction, lock)
	if lock {
		return fmt.Sprintf("You lock the way %s.", exit.Direction)
	}
	return fmt.Sprintf("You unlock the way %s.", exit.Direction)
}

// requireKey applies the dual-mode key logic: an explicit "with <key>"
// clause is resolved against matching inventory items and filtered by the
// declared required key; absent an explicit key, inventory is silently
// searched for the required key. Returns the failure message, or "" when
// the lock may be worked.
func (e *Engine) requireKey(p *state.Player, cmd command.Command, requiredKey string) string {
	inv := p.Inventory()

	if cmd.Preposition == "with" && cmd.IndirectObject != "" {
		matched := false
		for _, itemID := range e.store.ItemsAt(inv) {
			item := e.world.Item(itemID)
			if item == nil || !MatchesName(cmd.IndirectObject, item.Name) {
				continue
			}
			matched = true
			if requiredKey == "" || item.ID == requiredKey {
				return ""
			}
		}
		if !matched {
			// A carried generic item can be named as the key, but a
			// generic kind can never work a lock.
			for _, st := range e.store.StacksAt(inv) {
				if kind := e.world.ItemKind(st.Kind); kind != nil && matchesKind(cmd.IndirectObject, kind) {
					matched = true
					break
				}
			}
		}
		if matched {
			return noKeyFitsMessage
		}
		return fmt.Sprintf("You don't have any %s.", cmd.IndirectObject)
	}

	if requiredKey == "" {
		return ""
	}
	for _, itemID := range e.store.ItemsAt(inv) {
		if itemID == requiredKey {
			return ""
		}
	}
	key := e.world.Item(requiredKey)
	if key != nil {
		return fmt.Sprintf("You need the %s for that.", key.Name)
	}
	return "You don't have the right key."
}

// resolveContainer finds a named container at the player's location or in
// inventory, in any lock/open state. Returns the container, or nil and the
// failure message.
func (e *Engine) resolveContainer(p *state.Player, name string) (*world.UniqueItem, string) {
	here := state.PlaceID(p.Location)
	inv := p.Inventory()
	item, _, ok := e.findUnique(name, here, inv)
	if !ok {
		return nil, fmt.Sprintf("You don't see any %s here.", name)
	}
	if !item.IsContainer || item.Container == nil {
		return nil, fmt.Sprintf("The %s isn't something you can open.", item.Name)
	}
	return item, ""
}
