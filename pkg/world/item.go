package world

// UniqueItem is an individually tracked world object. The state store maps
// each unique item id to exactly one place at a time; unique items are never
// merged or duplicated.
type UniqueItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Takeable    bool `json:"takeable,omitempty"`
	Visible     bool `json:"visible"`
	Usable      bool `json:"usable,omitempty"`
	Consumable  bool `json:"consumable,omitempty"`
	IsContainer bool `json:"is_container,omitempty"`
	LightSource bool `json:"light_source,omitempty"`

	// VisibleWhen gates discoverability on world state, independent of the
	// static Visible flag. Both must hold for the item to be found.
	VisibleWhen *Condition `json:"visible_when,omitempty"`

	Container *ContainerSpec `json:"container,omitempty"`
	Messages  ItemMessages   `json:"messages,omitempty"`

	// Flag hooks, the data-driven way items mark quest objectives and
	// discovery gates.
	OnTakeSetFlags []string `json:"on_take_set_flags,omitempty"`
	OnUseSetFlags  []string `json:"on_use_set_flags,omitempty"`
}

// ContainerSpec declares the initial container sub-state for a container item.
type ContainerSpec struct {
	Capacity    int     `json:"capacity,omitempty"`
	RequiredKey string  `json:"required_key,omitempty"`
	Locked      bool    `json:"locked,omitempty"`
	Closed      bool    `json:"closed,omitempty"`
	Contents    []Stack `json:"contents,omitempty"`
}

// ItemMessages holds per-item narrative overrides. Empty fields fall back
// to the engine's defaults.
type ItemMessages struct {
	Take     string `json:"take,omitempty"`
	Drop     string `json:"drop,omitempty"`
	Use      string `json:"use,omitempty"`
	Open     string `json:"open,omitempty"`
	CantTake string `json:"cant_take,omitempty"`
}

// GenericItem describes a fungible kind of item. Quantities of a kind are
// tracked per place as stacks, never as individual instances.
type GenericItem struct {
	ID          string `json:"id"`
	Singular    string `json:"singular"`
	Plural      string `json:"plural"`
	Description string `json:"description,omitempty"`
}

// DisplayName returns the singular or plural form for a quantity.
func (g *GenericItem) DisplayName(quantity int) string {
	if quantity == 1 {
		return g.Singular
	}
	return g.Plural
}

// Stack is a quantity of one generic item kind at a place.
type Stack struct {
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
}
