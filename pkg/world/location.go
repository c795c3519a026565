package world

// Location represents a place in the game world with exits and entry logic.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Exits       []Exit `json:"exits,omitempty"`       // Order matters for listing exits
	NeedsLight  bool   `json:"needs_light,omitempty"` // Description suppressed without a light source

	// Initial placements, applied when a fresh session state is built.
	Items  []string `json:"items,omitempty"`  // Unique items starting here
	Stacks []Stack  `json:"stacks,omitempty"` // Generic item quantities starting here

	// Flags set when a player enters, used for quest objectives and
	// discovery gates.
	OnEnterSetFlags []string `json:"on_enter_set_flags,omitempty"`
}

// Exit is a single direction out of a location.
type Exit struct {
	Direction     string     `json:"direction"`
	Destination   string     `json:"destination"`
	Hidden        bool       `json:"hidden,omitempty"`
	RevealWhen    *Condition `json:"reveal_when,omitempty"`    // Condition to reveal a hidden exit
	RequiredItem  string     `json:"required_item,omitempty"`  // Item that unlocks the exit
	Locked        bool       `json:"locked,omitempty"`         // Initial lock state; runtime state overrides
	LockedMessage string     `json:"locked_message,omitempty"` // Shown when passage is refused
}
