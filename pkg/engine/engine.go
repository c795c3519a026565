// Package engine executes parsed commands against the world definition and
// session state: one handler per canonical verb, turn-serialized, with quest
// re-evaluation after every turn-consuming command.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/questline/questline/pkg/command"
	"github.com/questline/questline/pkg/quest"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

// Result is the outcome of interpreting one line of input.
type Result struct {
	Text           string // Narrative response, plain text
	ConsumedTurn   bool
	QuestNarrative string // Quest progress block, empty most turns
	GameComplete   bool   // Main quest completed this turn
}

// Engine interprets commands for the store's active player.
type Engine struct {
	world  *world.World
	store  *state.Store
	quests *quest.Engine
	logger *slog.Logger
}

// New creates an engine over a validated world and a session state.
func New(w *world.World, s *state.Store, logger *slog.Logger) *Engine {
	return &Engine{
		world:  w,
		store:  s,
		quests: quest.New(w, s, logger),
		logger: logger,
	}
}

// Store exposes the session state for drivers (persistence, rotation).
func (e *Engine) Store() *state.Store {
	return e.store
}

// handler executes one canonical verb for a player. It returns the response
// text; any state mutation happens before the text is returned.
type handler func(p *state.Player, cmd command.Command) string

// Execute parses and runs one command for the active player. Parse
// rejections return immediately with no state change and no turn consumed.
// Precondition failures still consume a turn when the verb normally does.
func (e *Engine) Execute(input string) Result {
	cmd, err := command.Parse(input)
	if err != nil {
		return Result{Text: parseRejection(err)}
	}

	p, err := e.store.ActivePlayer()
	if err != nil {
		// Invariant violation: report, never panic, so the session can go on.
		return Result{Text: fmt.Sprintf("error: %v", err)}
	}
	if e.world.Location(p.Location) == nil {
		return Result{Text: fmt.Sprintf("error: player %s has no valid location", p.ID)}
	}

	handlers := map[command.Verb]handler{
		command.VerbGo:        e.handleGo,
		command.VerbLook:      e.handleLook,
		command.VerbExamine:   e.handleExamine,
		command.VerbInventory: e.handleInventory,
		command.VerbTake:      e.handleTake,
		command.VerbDrop:      e.handleDrop,
		command.VerbPut:       e.handlePut,
		command.VerbOpen:      e.handleOpen,
		command.VerbClose:     e.handleClose,
		command.VerbLock:      e.handleLock,
		command.VerbUnlock:    e.handleUnlock,
		command.VerbUse:       e.handleUse,
		command.VerbQuests:    e.handleQuests,
		command.VerbScore:     e.handleScore,
		command.VerbHelp:      e.handleHelp,
	}

	h, ok := handlers[cmd.Verb]
	if !ok {
		return Result{Text: fmt.Sprintf("You can't %s here.", cmd.Verb)}
	}

	text := h(p, cmd)
	result := Result{Text: text, ConsumedTurn: cmd.Verb.ConsumesTurn()}

	if result.ConsumedTurn {
		p.TurnCount++

		var lines []string
		lines = append(lines, e.quests.CheckDiscovery()...)
		completed, gameComplete := e.quests.CheckCompletion(p.ID)
		lines = append(lines, completed...)
		result.QuestNarrative = strings.Join(lines, "\n")
		result.GameComplete = gameComplete
	}

	if e.logger != nil {
		e.logger.Debug("command executed",
			"player", p.ID,
			"verb", cmd.Verb,
			"consumed_turn", result.ConsumedTurn)
	}
	return result
}

func parseRejection(err error) string {
	var unknown *command.UnknownWordError
	switch {
	case errors.Is(err, command.ErrEmptyInput):
		return "What do you want to do?"
	case errors.Is(err, command.ErrInputTooLong):
		return "That's too much to say at once."
	case errors.As(err, &unknown):
		return unknown.Error()
	}
	return err.Error()
}
