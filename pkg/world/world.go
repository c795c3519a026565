package world

import "fmt"

// World is the static definition of a game: locations, items, and quests.
// It is loaded once per session and never mutated; all runtime facts live
// in the state store and reference these definitions by id.
type World struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	StartLocation string                  `json:"start_location"`
	Locations     map[string]*Location    `json:"locations"`
	Items         map[string]*UniqueItem  `json:"items,omitempty"`
	ItemKinds     map[string]*GenericItem `json:"item_kinds,omitempty"`
	Quests        map[string]*Quest       `json:"quests,omitempty"`
}

// Location returns the location definition for id, or nil.
func (w *World) Location(id string) *Location {
	return w.Locations[id]
}

// Item returns the unique item definition for id, or nil.
func (w *World) Item(id string) *UniqueItem {
	return w.Items[id]
}

// ItemKind returns the generic item definition for id, or nil.
func (w *World) ItemKind(id string) *GenericItem {
	return w.ItemKinds[id]
}

// Quest returns the quest definition for id, or nil.
func (w *World) Quest(id string) *Quest {
	return w.Quests[id]
}

// MainQuest returns the designated main quest, or nil if the world
// has none.
func (w *World) MainQuest() *Quest {
	for _, q := range w.Quests {
		if q.IsMain {
			return q
		}
	}
	return nil
}

// FillIDs copies map keys onto entity id fields left empty in the source
// file, so authors don't have to repeat ids. Called by loaders before
// Validate.
func (w *World) FillIDs() {
	for id, loc := range w.Locations {
		if loc.ID == "" {
			loc.ID = id
		}
	}
	for id, item := range w.Items {
		if item.ID == "" {
			item.ID = id
		}
	}
	for id, kind := range w.ItemKinds {
		if kind.ID == "" {
			kind.ID = id
		}
	}
	for id, q := range w.Quests {
		if q.ID == "" {
			q.ID = id
		}
	}
}

// Validate checks referential integrity of the world definition: every exit
// destination, required item, container key, and reward kind must resolve.
// The engine assumes a validated world and does not re-check these.
func (w *World) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("world has no id")
	}
	if _, ok := w.Locations[w.StartLocation]; !ok {
		return fmt.Errorf("start location %q is not defined", w.StartLocation)
	}
	for locID, loc := range w.Locations {
		for _, exit := range loc.Exits {
			if exit.Direction == "" {
				return fmt.Errorf("location %q has an exit with no direction", locID)
			}
			if _, ok := w.Locations[exit.Destination]; !ok {
				return fmt.Errorf("location %q exit %q leads to undefined location %q", locID, exit.Direction, exit.Destination)
			}
			if exit.RequiredItem != "" {
				if _, ok := w.Items[exit.RequiredItem]; !ok {
					return fmt.Errorf("location %q exit %q requires undefined item %q", locID, exit.Direction, exit.RequiredItem)
				}
			}
		}
		for _, itemID := range loc.Items {
			if _, ok := w.Items[itemID]; !ok {
				return fmt.Errorf("location %q places undefined item %q", locID, itemID)
			}
		}
		for _, st := range loc.Stacks {
			if _, ok := w.ItemKinds[st.Kind]; !ok {
				return fmt.Errorf("location %q places undefined item kind %q", locID, st.Kind)
			}
		}
	}
	for itemID, item := range w.Items {
		if item.Container == nil {
			continue
		}
		if !item.IsContainer {
			return fmt.Errorf("item %q has container fields but is not flagged as a container", itemID)
		}
		if key := item.Container.RequiredKey; key != "" {
			if _, ok := w.Items[key]; !ok {
				return fmt.Errorf("container %q requires undefined key item %q", itemID, key)
			}
		}
		for _, st := range item.Container.Contents {
			if _, ok := w.ItemKinds[st.Kind]; !ok {
				return fmt.Errorf("container %q holds undefined item kind %q", itemID, st.Kind)
			}
		}
	}
	for questID, q := range w.Quests {
		for _, st := range q.StackRewards {
			if _, ok := w.ItemKinds[st.Kind]; !ok {
				return fmt.Errorf("quest %q rewards undefined item kind %q", questID, st.Kind)
			}
		}
		for _, itemID := range q.ItemRewards {
			if _, ok := w.Items[itemID]; !ok {
				return fmt.Errorf("quest %q rewards undefined item %q", questID, itemID)
			}
		}
		seen := make(map[string]bool, len(q.Objectives))
		for _, obj := range q.Objectives {
			if obj.ID == "" {
				return fmt.Errorf("quest %q has an objective with no id", questID)
			}
			if seen[obj.ID] {
				return fmt.Errorf("quest %q has duplicate objective id %q", questID, obj.ID)
			}
			seen[obj.ID] = true
		}
	}
	return nil
}
