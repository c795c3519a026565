package world

// QuestStatus is the lifecycle state of a quest in a session.
// Transitions: inactive → active → completed or failed. Completed and
// failed are terminal.
type QuestStatus string

const (
	QuestInactive  QuestStatus = "inactive"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// Quest is the immutable definition of a quest. Quest progress lives in the
// state store, keyed by quest id.
type Quest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsMain      bool   `json:"is_main,omitempty"` // Completing the main quest completes the game

	Objectives []Objective `json:"objectives,omitempty"`
	RequireAll bool        `json:"require_all,omitempty"` // All required objectives vs. any objective

	// DiscoverWhen promotes the quest from inactive to active when met.
	// Evaluated on location entry and other world events, idempotently.
	DiscoverWhen *Condition `json:"discover_when,omitempty"`

	// CompleteWhen is an alternative to the objective list: a predicate over
	// world state checked once per turn while the quest is active.
	CompleteWhen *Condition `json:"complete_when,omitempty"`

	ScoreReward  int      `json:"score_reward,omitempty"`
	ItemRewards  []string `json:"item_rewards,omitempty"`  // Unique items granted on completion
	StackRewards []Stack  `json:"stack_rewards,omitempty"` // Generic item quantities granted on completion

	Messages QuestMessages `json:"messages,omitempty"`
}

// Objective is one named sub-goal of a quest, completed by setting the flag
// returned by ObjectiveFlag.
type Objective struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// QuestMessages holds per-quest narrative overrides.
type QuestMessages struct {
	Discovered string `json:"discovered,omitempty"`
	Completed  string `json:"completed,omitempty"`
	Failed     string `json:"failed,omitempty"`
}

// ObjectiveFlag returns the global flag name that records completion of one
// quest objective.
func ObjectiveFlag(questID, objectiveID string) string {
	return "quest-" + questID + "-objective-" + objectiveID
}
