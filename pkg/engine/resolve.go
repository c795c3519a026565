package engine

import (
	"strings"

	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

// MatchesName implements the deliberately tolerant name match: exact
// case-insensitive match, substring containment in either direction, or
// every word of the search string being a prefix of some word of the name.
// The asymmetric substring check is intentional and load-bearing; handlers
// rely on these exact semantics.
func MatchesName(search, name string) bool {
	s := strings.ToLower(strings.TrimSpace(search))
	n := strings.ToLower(name)
	if s == "" || n == "" {
		return false
	}
	if s == n {
		return true
	}
	if strings.Contains(n, s) || strings.Contains(s, n) {
		return true
	}
	nameWords := strings.Fields(n)
	for _, w := range strings.Fields(s) {
		matched := false
		for _, nw := range nameWords {
			if strings.HasPrefix(nw, w) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// matchesKind matches a search string against a generic item's singular or
// plural display name.
func matchesKind(search string, kind *world.GenericItem) bool {
	return MatchesName(search, kind.Singular) || MatchesName(search, kind.Plural)
}

// findUnique resolves a name to a unique item, searching places in order
// and honoring discoverability (static visible flag plus any visibility
// condition). Items in the player's own inventory are always discoverable.
func (e *Engine) findUnique(name string, places ...state.PlaceID) (*world.UniqueItem, state.PlaceID, bool) {
	for _, place := range places {
		inInventory := strings.HasPrefix(string(place), "inventory-")
		for _, itemID := range e.store.ItemsAt(place) {
			item := e.world.Item(itemID)
			if item == nil {
				continue
			}
			if !inInventory && !e.itemDiscoverable(item) {
				continue
			}
			if MatchesName(name, item.Name) {
				return item, place, true
			}
		}
	}
	return nil, "", false
}

// findKind resolves a name to a generic item stack, searching places in
// order. Returns the kind and the place where the stack was found.
func (e *Engine) findKind(name string, places ...state.PlaceID) (*world.GenericItem, state.PlaceID, bool) {
	for _, place := range places {
		for _, st := range e.store.StacksAt(place) {
			kind := e.world.ItemKind(st.Kind)
			if kind == nil {
				continue
			}
			if matchesKind(name, kind) {
				return kind, place, true
			}
		}
	}
	return nil, "", false
}

// itemDiscoverable reports whether an item can currently be found: both the
// static visible flag and the visibility condition must hold.
func (e *Engine) itemDiscoverable(item *world.UniqueItem) bool {
	if !item.Visible {
		return false
	}
	if item.VisibleWhen != nil && !item.VisibleWhen.Eval(e.store) {
		return false
	}
	return true
}

// locationDark reports whether a location's description is suppressed: it
// needs light and no player present carries a light source.
func (e *Engine) locationDark(loc *world.Location) bool {
	if !loc.NeedsLight {
		return false
	}
	for _, p := range e.store.PlayersAt(loc.ID) {
		for _, itemID := range e.store.ItemsAt(p.Inventory()) {
			if item := e.world.Item(itemID); item != nil && item.LightSource {
				return false
			}
		}
	}
	return true
}

// openContainersAt returns the place ids of open containers resolvable at a
// place (containers sitting at the location or carried by the player).
func (e *Engine) openContainersAt(places ...state.PlaceID) []state.PlaceID {
	var out []state.PlaceID
	for _, place := range places {
		for _, itemID := range e.store.ItemsAt(place) {
			item := e.world.Item(itemID)
			if item == nil || !item.IsContainer {
				continue
			}
			if cs, ok := e.store.Container(itemID); ok && cs.Open {
				out = append(out, state.PlaceID(itemID))
			}
		}
	}
	return out
}
