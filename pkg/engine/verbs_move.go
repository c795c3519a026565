package engine

import (
	"fmt"
	"strings"

	"github.com/questline/questline/pkg/command"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

func (e *Engine) handleGo(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Go where?"
	}
	loc := e.world.Location(p.Location)
	exit := e.findExit(loc, cmd.DirectObject)
	if exit == nil {
		return fmt.Sprintf("You can't go %s from here.", cmd.DirectObject)
	}

	if e.store.ExitLocked(loc.ID, exit.Direction) {
		// Holding the required item unlocks the way in passing.
		if exit.RequiredItem != "" && e.store.ActivePlayerHasItem(exit.RequiredItem) {
			e.store.SetExitLocked(loc.ID, exit.Direction, false)
		} else {
			if exit.LockedMessage != "" {
				return exit.LockedMessage
			}
			return fmt.Sprintf("The way %s is locked.", exit.Direction)
		}
	}

	p.MoveTo(exit.Destination)
	if dest := e.world.Location(exit.Destination); dest != nil {
		for _, flag := range dest.OnEnterSetFlags {
			e.store.SetFlag(flag, true)
		}
	}
	if e.logger != nil {
		e.logger.Info("player moved",
			"player", p.ID,
			"from", loc.ID,
			"to", exit.Destination,
			"direction", exit.Direction)
	}
	return e.describeLocation(p)
}

// findExit looks up an exit whose direction equals, or is a prefix of, the
// requested direction. Hidden exits are skipped unless revealed.
func (e *Engine) findExit(loc *world.Location, direction string) *world.Exit {
	for i := range loc.Exits {
		exit := &loc.Exits[i]
		if exit.Hidden && !exit.RevealWhen.Eval(e.store) {
			continue
		}
		if exit.Direction == direction || strings.HasPrefix(direction, exit.Direction) {
			return exit
		}
	}
	return nil
}
