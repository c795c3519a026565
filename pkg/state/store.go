// Package state manages the mutable session state: item placements, stack
// quantities, container and exit lock state, quest progress, and per-player
// facts. The store is mutated one command at a time by the execution and
// quest engines; the turn-rotation discipline is the only synchronization.
package state

import (
	"fmt"
	"sort"

	"github.com/questline/questline/pkg/world"
)

// PlaceID identifies where things can be: a location id, a container item
// id, or a player-scoped inventory key.
type PlaceID string

const inventoryPrefix = "inventory-"

// InventoryPlace returns the place id for a player's inventory.
func InventoryPlace(playerID string) PlaceID {
	return PlaceID(inventoryPrefix + playerID)
}

// ContainerState is the 2x2 runtime sub-state of a container item.
type ContainerState struct {
	Locked bool `json:"locked"`
	Open   bool `json:"open"`
}

// InsufficientQuantityError reports a stack transfer that asked for more
// than the source holds. Available is the actual quantity present.
type InsufficientQuantityError struct {
	Kind      string
	Requested int
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("requested %d %s but only %d available", e.Requested, e.Kind, e.Available)
}

// Store holds all mutable world and player facts for one session.
type Store struct {
	worldID      string
	itemLocation map[string]PlaceID
	stacks       map[PlaceID][]world.Stack
	containers   map[string]ContainerState
	exitLocked   map[string]bool
	quests       map[string]world.QuestStatus
	players      map[string]*Player
	activePlayer string
	flags        map[string]bool
}

// exitKey builds the composite key for an exit's runtime lock state.
func exitKey(locationID, direction string) string {
	return locationID + "/" + direction
}

// NewStore builds a fresh session state from a world definition, placing
// items, containers, exits, and quests at their declared initial states.
// It has no players; add at least one and set it active before executing
// commands.
func NewStore(w *world.World) *Store {
	s := &Store{
		worldID:      w.ID,
		itemLocation: make(map[string]PlaceID),
		stacks:       make(map[PlaceID][]world.Stack),
		containers:   make(map[string]ContainerState),
		exitLocked:   make(map[string]bool),
		quests:       make(map[string]world.QuestStatus),
		players:      make(map[string]*Player),
		flags:        make(map[string]bool),
	}
	for locID, loc := range w.Locations {
		for _, itemID := range loc.Items {
			s.itemLocation[itemID] = PlaceID(locID)
		}
		for _, st := range loc.Stacks {
			s.addStack(PlaceID(locID), st.Kind, st.Quantity)
		}
		for _, exit := range loc.Exits {
			if exit.Locked {
				s.exitLocked[exitKey(locID, exit.Direction)] = true
			}
		}
	}
	for itemID, item := range w.Items {
		if item.Container == nil {
			continue
		}
		s.containers[itemID] = ContainerState{
			Locked: item.Container.Locked,
			Open:   !item.Container.Closed,
		}
		for _, st := range item.Container.Contents {
			s.addStack(PlaceID(itemID), st.Kind, st.Quantity)
		}
	}
	for questID, q := range w.Quests {
		// Quests without a discovery condition are active from the start.
		if q.DiscoverWhen == nil {
			s.quests[questID] = world.QuestActive
		} else {
			s.quests[questID] = world.QuestInactive
		}
	}
	return s
}

// WorldID returns the id of the world definition this state belongs to.
func (s *Store) WorldID() string {
	return s.worldID
}

// Item placement -------------------------------------------------------------

// ItemPlace returns the current place of a unique item. The second return
// is false if the item is not placed anywhere (e.g. consumed).
func (s *Store) ItemPlace(itemID string) (PlaceID, bool) {
	p, ok := s.itemLocation[itemID]
	return p, ok
}

// MoveItem transfers exclusive ownership of a unique item to a place.
func (s *Store) MoveItem(itemID string, to PlaceID) {
	s.itemLocation[itemID] = to
}

// RemoveItem removes a unique item from the world entirely (consumption).
func (s *Store) RemoveItem(itemID string) {
	delete(s.itemLocation, itemID)
}

// ItemsAt returns the ids of all unique items at a place, sorted so
// listings and name resolution are stable.
func (s *Store) ItemsAt(place PlaceID) []string {
	var ids []string
	for id, p := range s.itemLocation {
		if p == place {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Stacks ---------------------------------------------------------------------

// StackQuantity returns how many of a kind are at a place.
func (s *Store) StackQuantity(place PlaceID, kind string) int {
	for _, st := range s.stacks[place] {
		if st.Kind == kind {
			return st.Quantity
		}
	}
	return 0
}

// StacksAt returns a copy of the stack list at a place.
func (s *Store) StacksAt(place PlaceID) []world.Stack {
	src := s.stacks[place]
	if len(src) == 0 {
		return nil
	}
	out := make([]world.Stack, len(src))
	copy(out, src)
	return out
}

// addStack merges quantity into the place's stack for kind, unifying
// same-kind stacks into one counter.
func (s *Store) addStack(place PlaceID, kind string, quantity int) {
	if quantity <= 0 {
		return
	}
	for i, st := range s.stacks[place] {
		if st.Kind == kind {
			s.stacks[place][i].Quantity += quantity
			return
		}
	}
	s.stacks[place] = append(s.stacks[place], world.Stack{Kind: kind, Quantity: quantity})
}

// removeStack removes quantity of kind from a place, pruning the stack when
// it reaches zero. Fails without mutating if not enough is present.
func (s *Store) removeStack(place PlaceID, kind string, quantity int) error {
	for i, st := range s.stacks[place] {
		if st.Kind != kind {
			continue
		}
		if st.Quantity < quantity {
			return &InsufficientQuantityError{Kind: kind, Requested: quantity, Available: st.Quantity}
		}
		s.stacks[place][i].Quantity -= quantity
		if s.stacks[place][i].Quantity == 0 {
			s.stacks[place] = append(s.stacks[place][:i], s.stacks[place][i+1:]...)
			if len(s.stacks[place]) == 0 {
				delete(s.stacks, place)
			}
		}
		return nil
	}
	return &InsufficientQuantityError{Kind: kind, Requested: quantity, Available: 0}
}

// TransferStack atomically moves quantity of kind between two places.
// A failed removal performs no addition.
func (s *Store) TransferStack(from, to PlaceID, kind string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("transfer quantity must be positive, got %d", quantity)
	}
	if err := s.removeStack(from, kind, quantity); err != nil {
		return err
	}
	s.addStack(to, kind, quantity)
	return nil
}

// GrantStack adds quantity of kind to a place without a source. Used for
// quest rewards.
func (s *Store) GrantStack(place PlaceID, kind string, quantity int) {
	s.addStack(place, kind, quantity)
}

// Containers and exits -------------------------------------------------------

// Container returns the runtime state of a container item.
func (s *Store) Container(itemID string) (ContainerState, bool) {
	cs, ok := s.containers[itemID]
	return cs, ok
}

// SetContainer replaces the runtime state of a container item.
func (s *Store) SetContainer(itemID string, cs ContainerState) {
	s.containers[itemID] = cs
}

// ExitLocked reports the dynamic lock state of an exit.
func (s *Store) ExitLocked(locationID, direction string) bool {
	return s.exitLocked[exitKey(locationID, direction)]
}

// SetExitLocked updates the dynamic lock state of an exit.
func (s *Store) SetExitLocked(locationID, direction string, locked bool) {
	key := exitKey(locationID, direction)
	if locked {
		s.exitLocked[key] = true
	} else {
		delete(s.exitLocked, key)
	}
}

// Quests and flags -----------------------------------------------------------

// QuestStatus returns the lifecycle status of a quest. Unknown quests
// report inactive.
func (s *Store) QuestStatus(questID string) world.QuestStatus {
	if st, ok := s.quests[questID]; ok {
		return st
	}
	return world.QuestInactive
}

// SetQuestStatus updates a quest's lifecycle status.
func (s *Store) SetQuestStatus(questID string, status world.QuestStatus) {
	s.quests[questID] = status
}

// QuestStatuses returns a copy of the quest status map.
func (s *Store) QuestStatuses() map[string]world.QuestStatus {
	out := make(map[string]world.QuestStatus, len(s.quests))
	for k, v := range s.quests {
		out[k] = v
	}
	return out
}

// FlagSet reports whether a global flag is set.
func (s *Store) FlagSet(name string) bool {
	return s.flags[name]
}

// SetFlag sets or clears a global flag.
func (s *Store) SetFlag(name string, value bool) {
	if value {
		s.flags[name] = true
	} else {
		delete(s.flags, name)
	}
}

// Players --------------------------------------------------------------------

// AddPlayer registers a player at a starting location. The first player
// added becomes the active player.
func (s *Store) AddPlayer(id, locationID string) *Player {
	p := &Player{
		ID:       id,
		Location: locationID,
		Visited:  map[string]bool{locationID: true},
		Flags:    map[string]bool{},
	}
	s.players[id] = p
	if s.activePlayer == "" {
		s.activePlayer = id
	}
	return p
}

// Player returns a player record by id, or nil.
func (s *Store) Player(id string) *Player {
	return s.players[id]
}

// PlayerIDs returns the ids of all registered players.
func (s *Store) PlayerIDs() []string {
	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	return ids
}

// ActivePlayerID returns the id of the player whose turn is being
// interpreted.
func (s *Store) ActivePlayerID() string {
	return s.activePlayer
}

// ActivePlayer returns the active player record, or an error if the
// rotation pointer is unset or dangling.
func (s *Store) ActivePlayer() (*Player, error) {
	if s.activePlayer == "" {
		return nil, fmt.Errorf("no active player set")
	}
	p, ok := s.players[s.activePlayer]
	if !ok {
		return nil, fmt.Errorf("active player %q is not registered", s.activePlayer)
	}
	return p, nil
}

// SetActivePlayer moves the turn-rotation pointer. Called by the session
// driver between commands, never mid-command.
func (s *Store) SetActivePlayer(id string) error {
	if _, ok := s.players[id]; !ok {
		return fmt.Errorf("unknown player %q", id)
	}
	s.activePlayer = id
	return nil
}

// PlayersAt returns all players currently at a location.
func (s *Store) PlayersAt(locationID string) []*Player {
	var out []*Player
	for _, p := range s.players {
		if p.Location == locationID {
			out = append(out, p)
		}
	}
	return out
}

// StateView ------------------------------------------------------------------

var _ world.StateView = (*Store)(nil)

// ActivePlayerHasItem reports whether the active player carries a unique item.
func (s *Store) ActivePlayerHasItem(itemID string) bool {
	if s.activePlayer == "" {
		return false
	}
	return s.itemLocation[itemID] == InventoryPlace(s.activePlayer)
}

// ActivePlayerVisited reports whether the active player has visited a location.
func (s *Store) ActivePlayerVisited(locationID string) bool {
	p := s.players[s.activePlayer]
	return p != nil && p.Visited[locationID]
}

// ItemAt reports whether a unique item is at a given place.
func (s *Store) ItemAt(itemID, placeID string) bool {
	return s.itemLocation[itemID] == PlaceID(placeID)
}
