package world

// StateView provides the minimal interface needed to evaluate conditions.
// This avoids an import cycle with the state package.
type StateView interface {
	FlagSet(name string) bool
	QuestStatus(questID string) QuestStatus
	ActivePlayerHasItem(itemID string) bool
	ActivePlayerVisited(locationID string) bool
	ItemAt(itemID, placeID string) bool
}

// ConditionType discriminates the condition union.
type ConditionType string

const (
	CondFlag        ConditionType = "flag"         // A global flag has a given value
	CondHasItem     ConditionType = "has_item"     // Active player carries a unique item
	CondQuestStatus ConditionType = "quest_status" // A quest is in a given status
	CondVisited     ConditionType = "visited"      // Active player has visited a location
	CondItemAt      ConditionType = "item_at"      // A unique item is at a given place
	CondAll         ConditionType = "all"          // Every sub-condition holds
	CondAny         ConditionType = "any"          // At least one sub-condition holds
	CondCustom      ConditionType = "custom"       // Externally supplied pure predicate
)

// Condition is a data-driven world predicate: a closed tagged union
// interpreted by Eval. Which fields are meaningful depends on Type.
// Custom conditions wrap a caller-supplied pure predicate and cannot be
// expressed in world-definition files.
type Condition struct {
	Type ConditionType `json:"type"`

	Flag     string      `json:"flag,omitempty"`     // flag
	Value    *bool       `json:"value,omitempty"`    // flag; nil means true
	Item     string      `json:"item,omitempty"`     // has_item, item_at
	Place    string      `json:"place,omitempty"`    // item_at
	Quest    string      `json:"quest,omitempty"`    // quest_status
	Status   QuestStatus `json:"status,omitempty"`   // quest_status
	Location string      `json:"location,omitempty"` // visited
	Subs     []Condition `json:"conditions,omitempty"`

	Predicate func(StateView) bool `json:"-"`
}

// Eval interprets the condition against a state view. Unknown or malformed
// conditions evaluate to false rather than triggering.
func (c *Condition) Eval(v StateView) bool {
	if c == nil {
		return false
	}
	switch c.Type {
	case CondFlag:
		want := true
		if c.Value != nil {
			want = *c.Value
		}
		return v.FlagSet(c.Flag) == want
	case CondHasItem:
		return v.ActivePlayerHasItem(c.Item)
	case CondQuestStatus:
		return v.QuestStatus(c.Quest) == c.Status
	case CondVisited:
		return v.ActivePlayerVisited(c.Location)
	case CondItemAt:
		return v.ItemAt(c.Item, c.Place)
	case CondAll:
		if len(c.Subs) == 0 {
			return false
		}
		for i := range c.Subs {
			if !c.Subs[i].Eval(v) {
				return false
			}
		}
		return true
	case CondAny:
		for i := range c.Subs {
			if c.Subs[i].Eval(v) {
				return true
			}
		}
		return false
	case CondCustom:
		return c.Predicate != nil && c.Predicate(v)
	}
	return false
}
