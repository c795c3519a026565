package engine

import (
	"fmt"

	"github.com/questline/questline/pkg/command"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

func (e *Engine) handleTake(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Take what?"
	}
	loc := e.world.Location(p.Location)
	if e.locationDark(loc) {
		return darkDescription
	}
	here := state.PlaceID(p.Location)
	inv := p.Inventory()

	// Unique items first; identity matters, quantity does not apply.
	if item, _, ok := e.findUnique(cmd.DirectObject, here); ok {
		if !item.Takeable {
			return itemMessage(item.Messages.CantTake, "You can't take the %s.", item.Name)
		}
		e.store.MoveItem(item.ID, inv)
		for _, flag := range item.OnTakeSetFlags {
			e.store.SetFlag(flag, true)
		}
		return itemMessage(item.Messages.Take, "You take the %s.", item.Name)
	}

	// Generic stacks: a named open container, or the location and any open
	// container in reach.
	var sources []state.PlaceID
	if cmd.IndirectObject != "" && cmd.Preposition == "from" {
		container, msg := e.resolveOpenContainer(p, cmd.IndirectObject)
		if container == nil {
			return msg
		}
		sources = []state.PlaceID{state.PlaceID(container.ID)}
	} else {
		sources = append([]state.PlaceID{here}, e.openContainersAt(here, inv)...)
	}
	kind, source, ok := e.findKind(cmd.DirectObject, sources...)
	if !ok {
		return fmt.Sprintf("You don't see any %s here.", cmd.DirectObject)
	}
	available := e.store.StackQuantity(source, kind.ID)
	quantity := cmd.Quantity
	if quantity == 0 || quantity == command.QuantityAll {
		quantity = available
	}
	if quantity > available {
		return fmt.Sprintf("There are only %s here.", stackLabel(kind, available))
	}
	if err := e.store.TransferStack(source, inv, kind.ID, quantity); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return fmt.Sprintf("You take %s.", stackLabel(kind, quantity))
}

func (e *Engine) handleDrop(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Drop what?"
	}
	here := state.PlaceID(p.Location)
	inv := p.Inventory()

	if item, _, ok := e.findUnique(cmd.DirectObject, inv); ok {
		e.store.MoveItem(item.ID, here)
		return itemMessage(item.Messages.Drop, "You drop the %s.", item.Name)
	}

	kind, _, ok := e.findKind(cmd.DirectObject, inv)
	if !ok {
		return fmt.Sprintf("You don't have any %s.", cmd.DirectObject)
	}
	available := e.store.StackQuantity(inv, kind.ID)
	quantity := cmd.Quantity
	if quantity == 0 || quantity == command.QuantityAll {
		quantity = available
	}
	if quantity > available {
		return fmt.Sprintf("You only have %s.", stackLabel(kind, available))
	}
	if err := e.store.TransferStack(inv, here, kind.ID, quantity); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return fmt.Sprintf("You drop %s.", stackLabel(kind, quantity))
}

func (e *Engine) handlePut(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" || cmd.IndirectObject == "" {
		return "Put what where?"
	}
	container, msg := e.resolveOpenContainer(p, cmd.IndirectObject)
	if container == nil {
		return msg
	}
	inv := p.Inventory()
	target := state.PlaceID(container.ID)

	if item, _, ok := e.findUnique(cmd.DirectObject, inv); ok {
		return fmt.Sprintf("The %s won't fit in the %s.", item.Name, container.Name)
	}

	kind, _, ok := e.findKind(cmd.DirectObject, inv)
	if !ok {
		return fmt.Sprintf("You don't have any %s.", cmd.DirectObject)
	}
	available := e.store.StackQuantity(inv, kind.ID)
	quantity := cmd.Quantity
	if quantity == 0 || quantity == command.QuantityAll {
		quantity = available
	}
	if quantity > available {
		return fmt.Sprintf("You only have %s.", stackLabel(kind, available))
	}
	if cap := container.Container.Capacity; cap > 0 {
		held := 0
		for _, st := range e.store.StacksAt(target) {
			held += st.Quantity
		}
		if held+quantity > cap {
			return fmt.Sprintf("The %s is full.", container.Name)
		}
	}
	if err := e.store.TransferStack(inv, target, kind.ID, quantity); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return fmt.Sprintf("You put %s in the %s.", stackLabel(kind, quantity), container.Name)
}

func (e *Engine) handleUse(p *state.Player, cmd command.Command) string {
	if cmd.DirectObject == "" {
		return "Use what?"
	}
	here := state.PlaceID(p.Location)
	inv := p.Inventory()
	item, _, ok := e.findUnique(cmd.DirectObject, here, inv)
	if !ok {
		return fmt.Sprintf("You don't see any %s here.", cmd.DirectObject)
	}
	if !item.Usable {
		return fmt.Sprintf("You can't think of a way to use the %s.", item.Name)
	}
	text := itemMessage(item.Messages.Use, "You use the %s. Nothing obvious happens.", item.Name)
	for _, flag := range item.OnUseSetFlags {
		e.store.SetFlag(flag, true)
	}
	if item.Consumable {
		e.store.RemoveItem(item.ID)
	}
	return text
}

// resolveOpenContainer finds a named container at the player's location or
// in inventory and requires it to be open. Returns the container, or nil
// and the failure message.
func (e *Engine) resolveOpenContainer(p *state.Player, name string) (*world.UniqueItem, string) {
	here := state.PlaceID(p.Location)
	inv := p.Inventory()
	item, _, ok := e.findUnique(name, here, inv)
	if !ok || !item.IsContainer {
		return nil, fmt.Sprintf("You don't see any %s here.", name)
	}
	cs, ok := e.store.Container(item.ID)
	if !ok {
		return nil, fmt.Sprintf("The %s is closed.", item.Name)
	}
	if cs.Locked {
		return nil, fmt.Sprintf("The %s is locked.", item.Name)
	}
	if !cs.Open {
		return nil, fmt.Sprintf("The %s is closed.", item.Name)
	}
	return item, ""
}
