package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/questline/questline/internal/storage"
	"github.com/questline/questline/pkg/engine"
	"github.com/questline/questline/pkg/state"
	"github.com/questline/questline/pkg/world"
)

const placeholderText = "What do you do?"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	questStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// transcriptEntry is one exchange in the session transcript.
type transcriptEntry struct {
	Input string // empty for system lines
	Text  string
	Quest string
	Error bool
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine    *engine.Engine
	store     storage.Storage
	sessionID uuid.UUID
	world     *world.World

	viewport   viewport.Model
	textarea   textarea.Model
	transcript []transcriptEntry
	ready      bool
	width      int
	height     int
	ended      bool

	showQuitModal bool
}

type persistenceMsg struct {
	text string
	err  error
	snap *state.Snapshot
}

func NewConsoleUI(eng *engine.Engine, store storage.Storage, sessionID uuid.UUID, w *world.World) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	ui := ConsoleUI{
		engine:    eng,
		store:     store,
		sessionID: sessionID,
		world:     w,
		textarea:  ta,
		viewport:  vp,
	}
	// Opening look, so the player starts with their surroundings.
	opening := eng.Execute("look")
	ui.transcript = append(ui.transcript, transcriptEntry{Text: opening.Text})
	return ui
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height - 5
		m.textarea.SetWidth(m.width - 6)
		m.ready = true
		m.writeTranscript()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			_ = clipboard.WriteAll(m.plainTranscript())
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			if strings.HasPrefix(input, "/") {
				return m.handleSlashCommand(input)
			}
			if m.ended {
				m.transcript = append(m.transcript, transcriptEntry{
					Text: "The story is over. Use /quit to exit or /load to restore a save.",
				})
				m.writeTranscript()
				return m, nil
			}

			result := m.engine.Execute(input)
			entry := transcriptEntry{Input: input, Text: result.Text, Quest: result.QuestNarrative}
			m.transcript = append(m.transcript, entry)
			if result.GameComplete {
				m.ended = true
				endText := "You have completed the main quest. The story is over."
				if q := m.world.MainQuest(); q != nil {
					endText = fmt.Sprintf("You have completed %q. The story is over.", q.Name)
				}
				m.transcript = append(m.transcript, transcriptEntry{Quest: endText})
			}
			m.writeTranscript()
			return m, nil
		}

	case persistenceMsg:
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{Text: msg.err.Error(), Error: true})
		} else {
			if msg.snap != nil {
				// Restore fully replaces the live store.
				restored, err := state.FromSnapshot(msg.snap)
				if err != nil {
					m.transcript = append(m.transcript, transcriptEntry{Text: err.Error(), Error: true})
					m.writeTranscript()
					return m, nil
				}
				m.engine = engine.New(m.world, restored, nil)
				m.ended = false
			}
			m.transcript = append(m.transcript, transcriptEntry{Text: msg.text})
		}
		m.writeTranscript()
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			return m, tea.Quit
		case "n", "N", "esc":
			m.showQuitModal = false
			return m, nil
		}
	}
	return m, nil
}

func (m ConsoleUI) handleSlashCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/quit":
		m.showQuitModal = true
		return m, nil
	case "/save":
		snap := m.engine.Store().Snapshot()
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.store.SaveSnapshot(ctx, m.sessionID, snap); err != nil {
				return persistenceMsg{err: fmt.Errorf("save failed: %w", err)}
			}
			return persistenceMsg{text: "Game saved."}
		}
	case "/load":
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			snap, err := m.store.LoadSnapshot(ctx, m.sessionID)
			if err != nil {
				return persistenceMsg{err: fmt.Errorf("load failed: %w", err)}
			}
			if snap == nil {
				return persistenceMsg{err: fmt.Errorf("no saved game for this session")}
			}
			if snap.WorldID != m.world.ID {
				return persistenceMsg{err: fmt.Errorf("saved game is for world %q, not %q", snap.WorldID, m.world.ID)}
			}
			return persistenceMsg{text: "Game restored.", snap: snap}
		}
	case "/help":
		m.transcript = append(m.transcript, transcriptEntry{
			Text: "Slash commands: /save, /load, /quit. Ctrl+Y copies the transcript.",
		})
		m.writeTranscript()
		return m, nil
	default:
		m.transcript = append(m.transcript, transcriptEntry{Text: "Unknown command. Try /help.", Error: true})
		m.writeTranscript()
		return m, nil
	}
}

// writeTranscript reformats the full transcript for the current width.
func (m *ConsoleUI) writeTranscript() {
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(m.world.Name)) + "\n\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, entry := range m.transcript {
		if entry.Input != "" {
			b.WriteString(userStyle.Render("> "+entry.Input) + "\n")
		}
		if entry.Text != "" {
			style := narratorStyle
			if entry.Error {
				style = errorStyle
			}
			b.WriteString(style.Render(wordwrap.String(entry.Text, width)) + "\n")
		}
		if entry.Quest != "" {
			b.WriteString(questStyle.Render(wordwrap.String(entry.Quest, width)) + "\n")
		}
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// plainTranscript renders the transcript without styling, for the clipboard.
func (m *ConsoleUI) plainTranscript() string {
	var b strings.Builder
	for _, entry := range m.transcript {
		if entry.Input != "" {
			b.WriteString("> " + entry.Input + "\n")
		}
		if entry.Text != "" {
			b.WriteString(entry.Text + "\n")
		}
		if entry.Quest != "" {
			b.WriteString(entry.Quest + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showQuitModal {
		modal := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Render("Quit the game? (y/n)")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return fmt.Sprintf("%s\n%s", m.viewport.View(), m.textarea.View())
}
