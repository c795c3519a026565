// Package quest evaluates quest discovery and completion against session
// state. Quest definitions are immutable; all progress is recorded in the
// state store as quest statuses and objective flags.
package quest

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

// Engine re-evaluates quest state after each turn.
type Engine struct {
	world  *world.World
	store  *state.Store
	logger *slog.Logger
}

// New creates a quest engine over a world definition and session state.
func New(w *world.World, s *state.Store, logger *slog.Logger) *Engine {
	return &Engine{world: w, store: s, logger: logger}
}

// CheckDiscovery promotes inactive quests whose discovery condition now
// holds. It is idempotent: a quest already promoted stays active, so
// re-entering the same location does not re-trigger. Returns one narrative
// line per newly discovered quest.
func (e *Engine) CheckDiscovery() []string {
	var narrative []string
	for _, questID := range e.sortedQuestIDs() {
		q := e.world.Quests[questID]
		if e.store.QuestStatus(questID) != world.QuestInactive {
			continue
		}
		if q.DiscoverWhen == nil || !q.DiscoverWhen.Eval(e.store) {
			continue
		}
		e.store.SetQuestStatus(questID, world.QuestActive)
		if e.logger != nil {
			e.logger.Info("quest discovered", "quest", questID)
		}
		msg := q.Messages.Discovered
		if msg == "" {
			msg = fmt.Sprintf("New quest: %s. %s", q.Name, q.Description)
		}
		narrative = append(narrative, msg)
	}
	return narrative
}

// CheckCompletion evaluates every active quest once, after a command has
// executed. Rewards always go to the acting player, identified explicitly
// so mid-resolution rotation cannot misdirect a grant. Returns narrative
// lines and whether the main quest completed (game completion).
func (e *Engine) CheckCompletion(actingPlayerID string) ([]string, bool) {
	var narrative []string
	gameComplete := false
	for _, questID := range e.sortedQuestIDs() {
		q := e.world.Quests[questID]
		if e.store.QuestStatus(questID) != world.QuestActive {
			continue
		}
		if !e.isComplete(q) {
			continue
		}
		e.store.SetQuestStatus(questID, world.QuestCompleted)
		e.grantRewards(q, actingPlayerID)
		if e.logger != nil {
			e.logger.Info("quest completed", "quest", questID, "player", actingPlayerID)
		}
		msg := q.Messages.Completed
		if msg == "" {
			msg = fmt.Sprintf("Quest completed: %s!", q.Name)
		}
		narrative = append(narrative, msg)
		if q.IsMain {
			gameComplete = true
		}
	}
	return narrative, gameComplete
}

// isComplete checks a quest's completion: objective flags under the
// quest's policy, or the custom completion predicate.
func (e *Engine) isComplete(q *world.Quest) bool {
	if len(q.Objectives) > 0 {
		if q.RequireAll {
			for _, obj := range q.Objectives {
				if !obj.Required {
					continue
				}
				if !e.store.FlagSet(world.ObjectiveFlag(q.ID, obj.ID)) {
					return false
				}
			}
			return true
		}
		for _, obj := range q.Objectives {
			if e.store.FlagSet(world.ObjectiveFlag(q.ID, obj.ID)) {
				return true
			}
		}
		return false
	}
	if q.CompleteWhen != nil {
		return q.CompleteWhen.Eval(e.store)
	}
	return false
}

// grantRewards applies score and item rewards to the acting player.
func (e *Engine) grantRewards(q *world.Quest, playerID string) {
	p := e.store.Player(playerID)
	if p == nil {
		if e.logger != nil {
			e.logger.Warn("quest reward target not found", "quest", q.ID, "player", playerID)
		}
		return
	}
	p.Score += q.ScoreReward
	inv := p.Inventory()
	for _, itemID := range q.ItemRewards {
		e.store.MoveItem(itemID, inv)
	}
	for _, st := range q.StackRewards {
		e.store.GrantStack(inv, st.Kind, st.Quantity)
	}
}

// sortedQuestIDs gives deterministic evaluation order over the quest map.
func (e *Engine) sortedQuestIDs() []string {
	ids := make([]string, 0, len(e.world.Quests))
	for id := range e.world.Quests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
