package state

import (
	"fmt"

	"github.com/questline/questline/pkg/world"
)

// SnapshotVersion is the current snapshot format. Version 1 predates
// multiplayer and stores a single implicit actor.
const SnapshotVersion = 2

// DefaultPlayerID is the player synthesized when upgrading a version-1
// snapshot.
const DefaultPlayerID = "player-1"

// legacyInventory is the bare inventory place key used by version-1
// snapshots, remapped to a player-scoped key on upgrade.
const legacyInventory = PlaceID("inventory")

// Snapshot is the serializable form of a session state, produced and
// consumed verbatim by the persistence layer.
type Snapshot struct {
	Version      int                          `json:"version"`
	WorldID      string                       `json:"world_id"`
	Players      map[string]*Player           `json:"players,omitempty"`
	ActivePlayer string                       `json:"active_player,omitempty"`
	ItemLocation map[string]PlaceID           `json:"item_location,omitempty"`
	Stacks       map[PlaceID][]world.Stack    `json:"stacks,omitempty"`
	Containers   map[string]ContainerState    `json:"containers,omitempty"`
	ExitLocks    map[string]bool              `json:"exit_locks,omitempty"`
	Flags        map[string]bool              `json:"flags,omitempty"`
	Quests       map[string]world.QuestStatus `json:"quests,omitempty"`

	// Version-1 single-actor fields, consumed only by Upgrade.
	Location  string   `json:"location,omitempty"`
	Score     int      `json:"score,omitempty"`
	TurnCount int      `json:"turn_count,omitempty"`
	Visited   []string `json:"visited,omitempty"`
}

// Snapshot produces a deep-copied serializable snapshot of the store.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:      SnapshotVersion,
		WorldID:      s.worldID,
		Players:      make(map[string]*Player, len(s.players)),
		ActivePlayer: s.activePlayer,
		ItemLocation: make(map[string]PlaceID, len(s.itemLocation)),
		Stacks:       make(map[PlaceID][]world.Stack, len(s.stacks)),
		Containers:   make(map[string]ContainerState, len(s.containers)),
		ExitLocks:    make(map[string]bool, len(s.exitLocked)),
		Flags:        make(map[string]bool, len(s.flags)),
		Quests:       make(map[string]world.QuestStatus, len(s.quests)),
	}
	for id, p := range s.players {
		snap.Players[id] = p.clone()
	}
	for k, v := range s.itemLocation {
		snap.ItemLocation[k] = v
	}
	for place, stacks := range s.stacks {
		cp := make([]world.Stack, len(stacks))
		copy(cp, stacks)
		snap.Stacks[place] = cp
	}
	for k, v := range s.containers {
		snap.Containers[k] = v
	}
	for k, v := range s.exitLocked {
		snap.ExitLocks[k] = v
	}
	for k, v := range s.flags {
		snap.Flags[k] = v
	}
	for k, v := range s.quests {
		snap.Quests[k] = v
	}
	return snap
}

// FromSnapshot builds a store from a snapshot, fully replacing (never
// merging) any prior state. Version-1 snapshots are upgraded first.
func FromSnapshot(snap *Snapshot) (*Store, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	snap = Upgrade(snap)
	if snap.WorldID == "" {
		return nil, fmt.Errorf("snapshot has no world id")
	}
	s := &Store{
		worldID:      snap.WorldID,
		itemLocation: make(map[string]PlaceID, len(snap.ItemLocation)),
		stacks:       make(map[PlaceID][]world.Stack, len(snap.Stacks)),
		containers:   make(map[string]ContainerState, len(snap.Containers)),
		exitLocked:   make(map[string]bool, len(snap.ExitLocks)),
		quests:       make(map[string]world.QuestStatus, len(snap.Quests)),
		players:      make(map[string]*Player, len(snap.Players)),
		activePlayer: snap.ActivePlayer,
		flags:        make(map[string]bool, len(snap.Flags)),
	}
	for id, p := range snap.Players {
		cp := p.clone()
		cp.ID = id
		if cp.Visited == nil {
			cp.Visited = map[string]bool{}
		}
		if cp.Flags == nil {
			cp.Flags = map[string]bool{}
		}
		s.players[id] = cp
	}
	if s.activePlayer == "" {
		return nil, fmt.Errorf("snapshot has no active player")
	}
	if _, ok := s.players[s.activePlayer]; !ok {
		return nil, fmt.Errorf("snapshot active player %q is not in player map", s.activePlayer)
	}
	for k, v := range snap.ItemLocation {
		s.itemLocation[k] = v
	}
	for place, stacks := range snap.Stacks {
		for _, st := range stacks {
			s.addStack(place, st.Kind, st.Quantity)
		}
	}
	for k, v := range snap.Containers {
		s.containers[k] = v
	}
	for k, v := range snap.ExitLocks {
		if v {
			s.exitLocked[k] = true
		}
	}
	for k, v := range snap.Flags {
		if v {
			s.flags[k] = true
		}
	}
	for k, v := range snap.Quests {
		s.quests[k] = v
	}
	return s, nil
}

// Upgrade converts a snapshot to the current version. Version-1 snapshots
// carry no player map: a single default player is synthesized from the
// top-level actor fields and bare "inventory" place references are remapped
// to that player's scoped inventory key. Current-version snapshots are
// returned unchanged.
func Upgrade(snap *Snapshot) *Snapshot {
	if snap.Version >= SnapshotVersion && len(snap.Players) > 0 {
		return snap
	}
	if len(snap.Players) > 0 {
		// Player map present but version stale; just stamp the version.
		up := *snap
		up.Version = SnapshotVersion
		return &up
	}

	up := *snap
	up.Version = SnapshotVersion

	visited := make(map[string]bool, len(snap.Visited))
	for _, loc := range snap.Visited {
		visited[loc] = true
	}
	up.Players = map[string]*Player{
		DefaultPlayerID: {
			ID:        DefaultPlayerID,
			Location:  snap.Location,
			Score:     snap.Score,
			TurnCount: snap.TurnCount,
			Visited:   visited,
			Flags:     map[string]bool{},
		},
	}
	up.ActivePlayer = DefaultPlayerID

	scoped := InventoryPlace(DefaultPlayerID)
	if len(snap.ItemLocation) > 0 {
		up.ItemLocation = make(map[string]PlaceID, len(snap.ItemLocation))
		for item, place := range snap.ItemLocation {
			if place == legacyInventory {
				place = scoped
			}
			up.ItemLocation[item] = place
		}
	}
	if len(snap.Stacks) > 0 {
		up.Stacks = make(map[PlaceID][]world.Stack, len(snap.Stacks))
		for place, stacks := range snap.Stacks {
			if place == legacyInventory {
				place = scoped
			}
			cp := make([]world.Stack, len(stacks))
			copy(cp, stacks)
			up.Stacks[place] = cp
		}
	}

	up.Location = ""
	up.Score = 0
	up.TurnCount = 0
	up.Visited = nil
	return &up
}

func (p *Player) clone() *Player {
	cp := *p
	cp.Visited = make(map[string]bool, len(p.Visited))
	for k, v := range p.Visited {
		cp.Visited[k] = v
	}
	cp.Flags = make(map[string]bool, len(p.Flags))
	for k, v := range p.Flags {
		cp.Flags[k] = v
	}
	return &cp
}
