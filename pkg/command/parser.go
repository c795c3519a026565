package command

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxInputLength bounds one line of player input.
const MaxInputLength = 200

// ErrEmptyInput is returned for blank or article-only input.
var ErrEmptyInput = fmt.Errorf("empty input")

// ErrInputTooLong is returned when input exceeds MaxInputLength.
var ErrInputTooLong = fmt.Errorf("input exceeds %d characters", MaxInputLength)

// UnknownWordError is a parse rejection for an unrecognized verb phrase.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("I don't know the word %q.", e.Word)
}

// verbSynonyms maps each canonical verb to the phrases that resolve to it.
// Multi-word phrases win over shorter ones via the greedy 3-2-1 token
// lookup in Parse.
var verbSynonyms = map[Verb][]string{
	VerbGo:        {"go", "walk", "move", "head", "travel", "run", "enter"},
	VerbLook:      {"look", "l", "look around"},
	VerbExamine:   {"examine", "x", "inspect", "check", "study", "look at", "look in", "read"},
	VerbInventory: {"inventory", "inv", "i"},
	VerbTake:      {"take", "get", "grab", "pick up", "collect"},
	VerbDrop:      {"drop", "discard", "put down", "set down"},
	VerbPut:       {"put", "place", "insert", "store"},
	VerbOpen:      {"open"},
	VerbClose:     {"close", "shut"},
	VerbLock:      {"lock"},
	VerbUnlock:    {"unlock"},
	VerbUse:       {"use", "apply", "activate"},
	VerbQuests:    {"quests", "quest", "journal", "quest log", "missions"},
	VerbScore:     {"score"},
	VerbHelp:      {"help", "?"},
}

// phraseTable is the inverted synonym lookup, built once at init.
var phraseTable = func() map[string]Verb {
	table := make(map[string]Verb)
	for verb, phrases := range verbSynonyms {
		for _, p := range phrases {
			table[p] = verb
		}
	}
	return table
}()

var articles = map[string]bool{
	"a": true, "an": true, "the": true, "some": true, "my": true,
}

var directions = map[string]string{
	"north": "north", "n": "north",
	"south": "south", "s": "south",
	"east": "east", "e": "east",
	"west": "west", "w": "west",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
}

var prepositions = map[string]bool{
	"from": true, "in": true, "into": true, "inside": true,
	"on": true, "onto": true, "with": true, "to": true,
	"at": true, "under": true,
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"all": QuantityAll, "everything": QuantityAll,
}

// Parse converts one raw line of input into a Command. Parse rejections
// never touch game state.
func Parse(input string) (Command, error) {
	if len(input) > MaxInputLength {
		return Command{}, ErrInputTooLong
	}
	raw := strings.Fields(strings.ToLower(strings.TrimSpace(input)))

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if !articles[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return Command{}, ErrEmptyInput
	}

	// Bare direction shortcut: "north", "n" → go north.
	if len(words) == 1 {
		if dir, ok := directions[words[0]]; ok {
			return Command{Verb: VerbGo, DirectObject: dir}, nil
		}
	}

	// Greedy verb resolution: longest phrase wins so "pick up" beats "pick".
	verb, rest, ok := resolveVerb(words)
	if !ok {
		return Command{}, &UnknownWordError{Word: words[0]}
	}

	cmd := Command{Verb: verb}

	// Optional leading quantity: digits or a number word.
	if len(rest) > 0 {
		if qty, ok := parseQuantity(rest[0]); ok {
			cmd.Quantity = qty
			rest = rest[1:]
		}
	}

	// Split on the first preposition: before it the direct object, after it
	// the indirect object.
	for i, w := range rest {
		if prepositions[w] {
			cmd.DirectObject = strings.Join(rest[:i], " ")
			cmd.Preposition = w
			cmd.IndirectObject = strings.Join(rest[i+1:], " ")
			return cmd, nil
		}
	}
	cmd.DirectObject = strings.Join(rest, " ")

	// Normalize direction abbreviations for movement.
	if cmd.Verb == VerbGo {
		if dir, ok := directions[cmd.DirectObject]; ok {
			cmd.DirectObject = dir
		}
	}
	return cmd, nil
}

// resolveVerb attempts a 3-token, then 2-token, then 1-token phrase lookup.
func resolveVerb(words []string) (Verb, []string, bool) {
	for n := 3; n >= 1; n-- {
		if len(words) < n {
			continue
		}
		phrase := strings.Join(words[:n], " ")
		if verb, ok := phraseTable[phrase]; ok {
			return verb, words[n:], true
		}
	}
	return "", nil, false
}

// CanonicalDirection resolves a token to a canonical direction name, if it
// is one ("n" → "north").
func CanonicalDirection(word string) (string, bool) {
	dir, ok := directions[strings.ToLower(word)]
	return dir, ok
}

func parseQuantity(word string) (int, bool) {
	if n, err := strconv.Atoi(word); err == nil && n > 0 {
		return n, true
	}
	if n, ok := numberWords[word]; ok {
		return n, true
	}
	return 0, false
}
