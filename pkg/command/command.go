// Package command converts raw player input into structured commands.
// Intentionally dumb: no NLP, just fixed verb, number, and preposition
// tables.
package command

// Verb is the canonical action identifier a raw verb phrase resolves to.
type Verb string

const (
	VerbGo        Verb = "go"
	VerbLook      Verb = "look"
	VerbExamine   Verb = "examine"
	VerbInventory Verb = "inventory"
	VerbTake      Verb = "take"
	VerbDrop      Verb = "drop"
	VerbPut       Verb = "put"
	VerbOpen      Verb = "open"
	VerbClose     Verb = "close"
	VerbLock      Verb = "lock"
	VerbUnlock    Verb = "unlock"
	VerbUse       Verb = "use"
	VerbQuests    Verb = "quests"
	VerbScore     Verb = "score"
	VerbHelp      Verb = "help"
)

// QuantityAll is the sentinel quantity for "all"/"everything".
const QuantityAll = -1

// Command is the structured form of one player input line.
type Command struct {
	Verb           Verb
	Quantity       int // 0 when unspecified, QuantityAll for "all"
	DirectObject   string
	Preposition    string
	IndirectObject string
}

// ConsumesTurn reports whether the verb advances the acting player's turn
// counter. Informational verbs never consume a turn; every other verb does,
// even when the attempt fails.
func (v Verb) ConsumesTurn() bool {
	switch v {
	case VerbLook, VerbExamine, VerbInventory, VerbQuests, VerbScore, VerbHelp:
		return false
	}
	return true
}
