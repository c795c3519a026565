package world

import "testing"

// fakeView is a canned StateView for condition tests.
type fakeView struct {
	flags   map[string]bool
	quests  map[string]QuestStatus
	held    map[string]bool
	visited map[string]bool
	places  map[string]string // item id -> place id
}

func (f *fakeView) FlagSet(name string) bool                   { return f.flags[name] }
func (f *fakeView) QuestStatus(questID string) QuestStatus     { return f.quests[questID] }
func (f *fakeView) ActivePlayerHasItem(itemID string) bool     { return f.held[itemID] }
func (f *fakeView) ActivePlayerVisited(locationID string) bool { return f.visited[locationID] }
func (f *fakeView) ItemAt(itemID, placeID string) bool         { return f.places[itemID] == placeID }

func boolPtr(b bool) *bool { return &b }

func TestConditionEval(t *testing.T) {
	view := &fakeView{
		flags:   map[string]bool{"door-open": true},
		quests:  map[string]QuestStatus{"main": QuestActive},
		held:    map[string]bool{"lantern": true},
		visited: map[string]bool{"cellar": true},
		places:  map[string]string{"crown": "vault"},
	}

	tests := []struct {
		name     string
		cond     *Condition
		expected bool
	}{
		{
			name:     "nil condition never holds",
			cond:     nil,
			expected: false,
		},
		{
			name:     "flag set",
			cond:     &Condition{Type: CondFlag, Flag: "door-open"},
			expected: true,
		},
		{
			name:     "flag unset",
			cond:     &Condition{Type: CondFlag, Flag: "missing"},
			expected: false,
		},
		{
			name:     "flag explicitly false",
			cond:     &Condition{Type: CondFlag, Flag: "missing", Value: boolPtr(false)},
			expected: true,
		},
		{
			name:     "has item",
			cond:     &Condition{Type: CondHasItem, Item: "lantern"},
			expected: true,
		},
		{
			name:     "missing item",
			cond:     &Condition{Type: CondHasItem, Item: "crown"},
			expected: false,
		},
		{
			name:     "quest status match",
			cond:     &Condition{Type: CondQuestStatus, Quest: "main", Status: QuestActive},
			expected: true,
		},
		{
			name:     "quest status mismatch",
			cond:     &Condition{Type: CondQuestStatus, Quest: "main", Status: QuestCompleted},
			expected: false,
		},
		{
			name:     "visited",
			cond:     &Condition{Type: CondVisited, Location: "cellar"},
			expected: true,
		},
		{
			name:     "item at place",
			cond:     &Condition{Type: CondItemAt, Item: "crown", Place: "vault"},
			expected: true,
		},
		{
			name: "all requires every sub",
			cond: &Condition{Type: CondAll, Subs: []Condition{
				{Type: CondFlag, Flag: "door-open"},
				{Type: CondHasItem, Item: "lantern"},
			}},
			expected: true,
		},
		{
			name: "all fails on one miss",
			cond: &Condition{Type: CondAll, Subs: []Condition{
				{Type: CondFlag, Flag: "door-open"},
				{Type: CondHasItem, Item: "crown"},
			}},
			expected: false,
		},
		{
			name:     "empty all never holds",
			cond:     &Condition{Type: CondAll},
			expected: false,
		},
		{
			name: "any needs one",
			cond: &Condition{Type: CondAny, Subs: []Condition{
				{Type: CondFlag, Flag: "missing"},
				{Type: CondVisited, Location: "cellar"},
			}},
			expected: true,
		},
		{
			name:     "custom predicate",
			cond:     &Condition{Type: CondCustom, Predicate: func(v StateView) bool { return v.FlagSet("door-open") }},
			expected: true,
		},
		{
			name:     "custom without predicate",
			cond:     &Condition{Type: CondCustom},
			expected: false,
		},
		{
			name:     "unknown type never holds",
			cond:     &Condition{Type: "bogus"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Eval(view); got != tt.expected {
				t.Errorf("Eval() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestObjectiveFlag(t *testing.T) {
	got := ObjectiveFlag("the-toll", "find-key")
	if got != "quest-the-toll-objective-find-key" {
		t.Errorf("ObjectiveFlag = %q", got)
	}
}
