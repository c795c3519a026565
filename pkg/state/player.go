package state

// Player holds the per-player partition of session state. Shared world
// facts (item placements, locks, quest progress, global flags) live on the
// store itself.
type Player struct {
	ID        string          `json:"id"`
	Location  string          `json:"location"`
	Score     int             `json:"score"`
	TurnCount int             `json:"turn_count"`
	Visited   map[string]bool `json:"visited,omitempty"`
	Flags     map[string]bool `json:"flags,omitempty"`
}

// Inventory returns the place id for this player's inventory.
func (p *Player) Inventory() PlaceID {
	return InventoryPlace(p.ID)
}

// MoveTo updates the player's location and visited set. The turn counter
// is advanced by the engine, not here, since failed moves still consume
// a turn.
func (p *Player) MoveTo(locationID string) {
	p.Location = locationID
	if p.Visited == nil {
		p.Visited = map[string]bool{}
	}
	p.Visited[locationID] = true
}
