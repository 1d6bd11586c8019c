package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/matchday/internal/cli/formatter"
	"github.com/alexanderramin/matchday/internal/contract"
)

// exitWords end the shell.
var exitWords = map[string]bool{"sair": true, "exit": true, "quit": true}

// askDoneMsg carries the pipeline result back into the update loop.
type askDoneMsg struct {
	question string
	result   *contract.AskResult
	err      error
}

// commandDoneMsg carries the captured output of a slash command.
type commandDoneMsg struct {
	output   string
	canceled bool
}

// shellModel is the bubbletea Model for the interactive question REPL.
type shellModel struct {
	ctx     context.Context
	app     *App
	input   textinput.Model
	spinner spinner.Model
	width   int

	// in-flight question or slash command
	busy    bool
	pending string
	cancel  context.CancelFunc

	// history
	history    []string
	historyIdx int

	// lastOutput is the most recent block printed above the prompt.
	lastOutput string
	quitting   bool
}

func newShellModel(ctx context.Context, app *App) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Como está o Flamengo?"
	ti.CharLimit = 500
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	hist := loadShellHistory(ctx, app.History)

	return shellModel{
		ctx:        ctx,
		app:        app,
		input:      ti,
		spinner:    sp,
		history:    hist,
		historyIdx: len(hist),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m shellModel) Init() tea.Cmd {
	return tea.Println(formatter.FormatShellWelcome())
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len("matchday ❯ ") - 1
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.busy {
				m.cancel()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.updatePrompt(msg)

	case askDoneMsg:
		m.finishBusy()
		cmd := m.println(renderAskDone(msg))
		return m, cmd

	case commandDoneMsg:
		m.finishBusy()
		out := msg.output
		if msg.canceled {
			out = formatter.Dim("Cancelled.")
		}
		cmd := m.println(out)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.FormatGoodbye()
	}
	if m.busy {
		verb := "Analysing"
		if strings.HasPrefix(m.pending, "/") {
			verb = "Running"
		}
		return m.spinner.View() + " " +
			formatter.Dim(verb+" “"+formatter.Truncate(m.pending, 50)+"”  (ctrl+c cancels)")
	}
	return m.promptPrefix() + m.input.View()
}

func (m *shellModel) promptPrefix() string {
	return formatter.StylePurple.Render("matchday") + " " + formatter.Dim("❯") + " "
}

// ── prompt ───────────────────────────────────────────────────────────────────

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		return m.execute(line)

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// execute handles one submitted line: an exit word, a built-in, a slash
// command for direct data access, or a question.
func (m shellModel) execute(line string) (tea.Model, tea.Cmd) {
	lower := strings.ToLower(line)
	switch {
	case exitWords[lower]:
		m.quitting = true
		return m, tea.Quit
	case lower == "help":
		cmd := m.println(formatter.FormatShellWelcome())
		return m, cmd
	case lower == "clear":
		return m, tea.ClearScreen
	case strings.HasPrefix(line, "/"):
		m.addHistory(line)
		app := m.app
		ctx := m.startBusy(line)
		return m, tea.Batch(
			tea.Println(echoLine(line)),
			m.spinner.Tick,
			func() tea.Msg {
				out := captureCobraOutput(ctx, app, line)
				return commandDoneMsg{output: out, canceled: errors.Is(ctx.Err(), context.Canceled)}
			},
		)
	}

	m.addHistory(line)
	svc, err := m.app.askService()
	if err != nil {
		cmd := m.println(shellError(err))
		return m, cmd
	}

	ctx := m.startBusy(line)
	return m, tea.Batch(
		tea.Println(echoLine(line)),
		m.spinner.Tick,
		func() tea.Msg {
			res, err := svc.Ask(ctx, contract.NewAskRequest(line, "shell"))
			return askDoneMsg{question: line, result: res, err: err}
		},
	)
}

// startBusy marks line as in flight and returns the context ctrl+c cancels.
func (m *shellModel) startBusy(line string) context.Context {
	ctx, cancel := context.WithCancel(m.ctx)
	m.busy = true
	m.pending = line
	m.cancel = cancel
	return ctx
}

func (m *shellModel) finishBusy() {
	m.busy = false
	m.pending = ""
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func echoLine(line string) string {
	return formatter.Dim("❯ ") + line
}

func (m *shellModel) println(s string) tea.Cmd {
	m.lastOutput = s
	return tea.Println(s)
}

func renderAskDone(msg askDoneMsg) string {
	switch {
	case errors.Is(msg.err, context.Canceled):
		return formatter.Dim("Cancelled.")
	case msg.err != nil:
		return shellError(msg.err)
	default:
		return formatter.FormatAskResult(msg.result)
	}
}

// ── history ──────────────────────────────────────────────────────────────────

func (m *shellModel) addHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	m.historyIdx = len(m.history)
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	} else {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
	}
}
