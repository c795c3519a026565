package quest

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func questWorld() *world.World {
	w := &world.World{
		ID:            "keep",
		Name:          "The Keep",
		StartLocation: "yard",
		Locations: map[string]*world.Location{
			"yard": {Name: "the yard", Exits: []world.Exit{{Direction: "north", Destination: "hall"}}},
			"hall": {Name: "the hall", Exits: []world.Exit{{Direction: "south", Destination: "yard"}}},
		},
		Items: map[string]*world.UniqueItem{
			"medal": {Name: "medal", Takeable: true, Visible: true},
		},
		ItemKinds: map[string]*world.GenericItem{
			"coin": {Singular: "coin", Plural: "coins"},
		},
		Quests: map[string]*world.Quest{
			"main": {
				Name: "The Toll", IsMain: true,
				Objectives: []world.Objective{
					{ID: "first", Required: true},
					{ID: "second", Required: true},
					{ID: "bonus", Required: false},
				},
				RequireAll:   true,
				ScoreReward:  50,
				ItemRewards:  []string{"medal"},
				StackRewards: []world.Stack{{Kind: "coin", Quantity: 10}},
			},
			"rumor": {
				Name:         "The Rumor",
				Description:  "Someone left word at the hall.",
				DiscoverWhen: &world.Condition{Type: world.CondVisited, Location: "hall"},
				Objectives:   []world.Objective{{ID: "hear", Required: true}},
				RequireAll:   true,
			},
		},
	}
	w.FillIDs()
	return w
}

func setup(t *testing.T) (*Engine, *state.Store) {
	t.Helper()
	w := questWorld()
	s := state.NewStore(w)
	s.AddPlayer("p1", "yard")
	return New(w, s, testLogger()), s
}

func TestCheckDiscovery(t *testing.T) {
	e, s := setup(t)

	// Condition not met yet.
	assert.Empty(t, e.CheckDiscovery())
	assert.Equal(t, world.QuestInactive, s.QuestStatus("rumor"))

	s.Player("p1").MoveTo("hall")
	lines := e.CheckDiscovery()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "New quest: The Rumor")
	assert.Equal(t, world.QuestActive, s.QuestStatus("rumor"))

	// Idempotent: the condition still holds but nothing re-fires.
	assert.Empty(t, e.CheckDiscovery())
}

func TestCheckCompletionRequireAll(t *testing.T) {
	e, s := setup(t)

	s.SetFlag(world.ObjectiveFlag("main", "first"), true)
	lines, done := e.CheckCompletion("p1")
	assert.Empty(t, lines)
	assert.False(t, done)
	assert.Equal(t, world.QuestActive, s.QuestStatus("main"))

	// The optional objective does not gate completion.
	s.SetFlag(world.ObjectiveFlag("main", "second"), true)
	lines, done = e.CheckCompletion("p1")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Quest completed: The Toll!")
	assert.True(t, done, "main quest completion completes the game")
	assert.Equal(t, world.QuestCompleted, s.QuestStatus("main"))

	// Terminal: a completed quest is never re-evaluated.
	lines, done = e.CheckCompletion("p1")
	assert.Empty(t, lines)
	assert.False(t, done)
}

func TestCheckCompletionAnyObjective(t *testing.T) {
	w := questWorld()
	w.Quests["main"].RequireAll = false
	s := state.NewStore(w)
	s.AddPlayer("p1", "yard")
	e := New(w, s, testLogger())

	s.SetFlag(world.ObjectiveFlag("main", "bonus"), true)
	lines, done := e.CheckCompletion("p1")
	require.Len(t, lines, 1)
	assert.True(t, done)
}

func TestCheckCompletionCustomCondition(t *testing.T) {
	w := questWorld()
	w.Quests["main"].Objectives = nil
	w.Quests["main"].CompleteWhen = &world.Condition{Type: world.CondHasItem, Item: "medal"}
	s := state.NewStore(w)
	s.AddPlayer("p1", "yard")
	e := New(w, s, testLogger())

	_, done := e.CheckCompletion("p1")
	assert.False(t, done)

	s.MoveItem("medal", state.InventoryPlace("p1"))
	_, done = e.CheckCompletion("p1")
	assert.True(t, done)
}

func TestRewardsGoToActingPlayer(t *testing.T) {
	e, s := setup(t)
	s.AddPlayer("p2", "hall")

	s.SetFlag(world.ObjectiveFlag("main", "first"), true)
	s.SetFlag(world.ObjectiveFlag("main", "second"), true)

	// p2 acts on the completing turn even though p1 joined first.
	_, done := e.CheckCompletion("p2")
	require.True(t, done)

	assert.Equal(t, 50, s.Player("p2").Score)
	assert.Zero(t, s.Player("p1").Score)

	inv := state.InventoryPlace("p2")
	place, ok := s.ItemPlace("medal")
	assert.True(t, ok)
	assert.Equal(t, inv, place)
	assert.Equal(t, 10, s.StackQuantity(inv, "coin"))
}

func TestQuestWithoutObjectivesOrConditionStaysActive(t *testing.T) {
	w := questWorld()
	w.Quests["main"].Objectives = nil
	s := state.NewStore(w)
	s.AddPlayer("p1", "yard")
	e := New(w, s, testLogger())

	_, done := e.CheckCompletion("p1")
	assert.False(t, done)
	assert.Equal(t, world.QuestActive, s.QuestStatus("main"))
}
