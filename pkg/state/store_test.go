package state

import (
	"errors"
	"testing"

	"github.com/questline/questline/pkg/world"
)

func testWorld() *world.World {
	w := &world.World{
		ID:            "keep",
		Name:          "The Keep",
		StartLocation: "yard",
		Locations: map[string]*world.Location{
			"yard": {
				Name:   "the yard",
				Items:  []string{"key"},
				Stacks: []world.Stack{{Kind: "coin", Quantity: 3}},
				Exits: []world.Exit{
					{Direction: "north", Destination: "hall", RequiredItem: "key", Locked: true},
				},
			},
			"hall": {
				Name:  "the hall",
				Exits: []world.Exit{{Direction: "south", Destination: "yard"}},
			},
		},
		Items: map[string]*world.UniqueItem{
			"key": {Name: "iron key", Takeable: true, Visible: true},
			"chest": {
				Name: "chest", Visible: true, IsContainer: true,
				Container: &world.ContainerSpec{
					RequiredKey: "key",
					Locked:      true,
					Closed:      true,
					Contents:    []world.Stack{{Kind: "coin", Quantity: 5}},
				},
			},
		},
		ItemKinds: map[string]*world.GenericItem{
			"coin": {Singular: "coin", Plural: "coins"},
		},
		Quests: map[string]*world.Quest{
			"main": {Name: "Main", IsMain: true},
			"side": {
				Name:         "Side",
				DiscoverWhen: &world.Condition{Type: world.CondVisited, Location: "hall"},
			},
		},
	}
	w.FillIDs()
	return w
}

func TestNewStoreSeedsInitialState(t *testing.T) {
	s := NewStore(testWorld())

	if place, ok := s.ItemPlace("key"); !ok || place != PlaceID("yard") {
		t.Errorf("key placed at %q, %v", place, ok)
	}
	if got := s.StackQuantity(PlaceID("yard"), "coin"); got != 3 {
		t.Errorf("yard coins = %d, want 3", got)
	}
	if got := s.StackQuantity(PlaceID("chest"), "coin"); got != 5 {
		t.Errorf("chest coins = %d, want 5", got)
	}
	cs, ok := s.Container("chest")
	if !ok || !cs.Locked || cs.Open {
		t.Errorf("chest state = %+v, %v", cs, ok)
	}
	if !s.ExitLocked("yard", "north") {
		t.Error("yard/north should start locked")
	}
	if got := s.QuestStatus("main"); got != world.QuestActive {
		t.Errorf("quest without discovery condition should start active, got %s", got)
	}
	if got := s.QuestStatus("side"); got != world.QuestInactive {
		t.Errorf("quest with discovery condition should start inactive, got %s", got)
	}
}

func TestMoveItemIsExclusive(t *testing.T) {
	s := NewStore(testWorld())
	s.AddPlayer("p1", "yard")

	inv := InventoryPlace("p1")
	s.MoveItem("key", inv)

	if place, _ := s.ItemPlace("key"); place != inv {
		t.Errorf("key at %q, want %q", place, inv)
	}
	for _, id := range s.ItemsAt(PlaceID("yard")) {
		if id == "key" {
			t.Error("key still listed at old place after move")
		}
	}
}

func TestItemsAtSorted(t *testing.T) {
	s := NewStore(testWorld())
	s.MoveItem("chest", PlaceID("yard"))

	ids := s.ItemsAt(PlaceID("yard"))
	if len(ids) != 2 || ids[0] != "chest" || ids[1] != "key" {
		t.Errorf("ItemsAt(yard) = %v, want sorted [chest key]", ids)
	}
}

func TestRemoveItem(t *testing.T) {
	s := NewStore(testWorld())
	s.RemoveItem("key")
	if _, ok := s.ItemPlace("key"); ok {
		t.Error("removed item should have no place")
	}
}

func TestStackUnification(t *testing.T) {
	s := NewStore(testWorld())
	place := PlaceID("yard")

	s.GrantStack(place, "coin", 2)

	stacks := s.StacksAt(place)
	if len(stacks) != 1 {
		t.Fatalf("expected a single unified stack, got %d", len(stacks))
	}
	if stacks[0].Quantity != 5 {
		t.Errorf("unified quantity = %d, want 5", stacks[0].Quantity)
	}
}

func TestTransferStack(t *testing.T) {
	s := NewStore(testWorld())
	s.AddPlayer("p1", "yard")
	yard := PlaceID("yard")
	inv := InventoryPlace("p1")

	if err := s.TransferStack(yard, inv, "coin", 2); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if got := s.StackQuantity(yard, "coin"); got != 1 {
		t.Errorf("source = %d, want 1", got)
	}
	if got := s.StackQuantity(inv, "coin"); got != 2 {
		t.Errorf("destination = %d, want 2", got)
	}
}

func TestTransferStackInsufficient(t *testing.T) {
	s := NewStore(testWorld())
	s.AddPlayer("p1", "yard")
	yard := PlaceID("yard")
	inv := InventoryPlace("p1")

	err := s.TransferStack(yard, inv, "coin", 10)
	var insufficient *InsufficientQuantityError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientQuantityError, got %v", err)
	}
	if insufficient.Available != 3 || insufficient.Requested != 10 {
		t.Errorf("error = %+v", insufficient)
	}

	// Failed transfer must not mutate either place.
	if got := s.StackQuantity(yard, "coin"); got != 3 {
		t.Errorf("source changed on failed transfer: %d", got)
	}
	if got := s.StackQuantity(inv, "coin"); got != 0 {
		t.Errorf("destination changed on failed transfer: %d", got)
	}
}

func TestStackPrunedAtZero(t *testing.T) {
	s := NewStore(testWorld())
	yard := PlaceID("yard")

	if err := s.TransferStack(yard, PlaceID("hall"), "coin", 3); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if stacks := s.StacksAt(yard); stacks != nil {
		t.Errorf("empty stack not pruned: %+v", stacks)
	}
}

func TestTransferStackRejectsNonPositive(t *testing.T) {
	s := NewStore(testWorld())
	if err := s.TransferStack(PlaceID("yard"), PlaceID("hall"), "coin", 0); err == nil {
		t.Error("zero quantity should be rejected")
	}
	if err := s.TransferStack(PlaceID("yard"), PlaceID("hall"), "coin", -1); err == nil {
		t.Error("negative quantity should be rejected")
	}
}

func TestExitLocks(t *testing.T) {
	s := NewStore(testWorld())

	s.SetExitLocked("yard", "north", false)
	if s.ExitLocked("yard", "north") {
		t.Error("exit should be unlocked")
	}
	s.SetExitLocked("yard", "north", true)
	if !s.ExitLocked("yard", "north") {
		t.Error("exit should be locked again")
	}
	// Lock state is per (location, direction).
	if s.ExitLocked("hall", "south") {
		t.Error("unrelated exit should not be locked")
	}
}

func TestPlayers(t *testing.T) {
	s := NewStore(testWorld())

	if _, err := s.ActivePlayer(); err == nil {
		t.Error("expected error with no players")
	}

	p1 := s.AddPlayer("p1", "yard")
	s.AddPlayer("p2", "hall")

	active, err := s.ActivePlayer()
	if err != nil {
		t.Fatalf("ActivePlayer: %v", err)
	}
	if active.ID != "p1" {
		t.Errorf("first added player should be active, got %s", active.ID)
	}
	if !p1.Visited["yard"] {
		t.Error("starting location should be marked visited")
	}

	if err := s.SetActivePlayer("p2"); err != nil {
		t.Fatalf("SetActivePlayer: %v", err)
	}
	if s.ActivePlayerID() != "p2" {
		t.Errorf("active = %s, want p2", s.ActivePlayerID())
	}
	if err := s.SetActivePlayer("ghost"); err == nil {
		t.Error("unknown player should be rejected")
	}

	at := s.PlayersAt("yard")
	if len(at) != 1 || at[0].ID != "p1" {
		t.Errorf("PlayersAt(yard) = %v", at)
	}
}

func TestStateView(t *testing.T) {
	s := NewStore(testWorld())
	s.AddPlayer("p1", "yard")

	if s.ActivePlayerHasItem("key") {
		t.Error("key is on the ground, not held")
	}
	s.MoveItem("key", InventoryPlace("p1"))
	if !s.ActivePlayerHasItem("key") {
		t.Error("key should be held")
	}
	if !s.ActivePlayerVisited("yard") {
		t.Error("yard should be visited")
	}
	if s.ActivePlayerVisited("hall") {
		t.Error("hall should not be visited")
	}
	if !s.ItemAt("key", "inventory-p1") {
		t.Error("ItemAt should see the key in the player inventory")
	}
	if s.ItemAt("key", "yard") {
		t.Error("ItemAt should not see the key at its old place")
	}
}

func TestFlags(t *testing.T) {
	s := NewStore(testWorld())
	if s.FlagSet("lit") {
		t.Error("flag should start unset")
	}
	s.SetFlag("lit", true)
	if !s.FlagSet("lit") {
		t.Error("flag should be set")
	}
	s.SetFlag("lit", false)
	if s.FlagSet("lit") {
		t.Error("flag should be cleared")
	}
}
