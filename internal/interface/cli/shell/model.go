// Package shell is the interactive front end: a full-screen bubbletea model
// for terminals and a plain line reader for pipes.
//
// The bubbletea model is single-threaded like any tea.Model. Commands run in
// tea.Cmd goroutines, so the Executor must be safe for concurrent use.
package shell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/interface/cli/parser"
)

// =============================================================================
// Ports
// =============================================================================

// Executor runs command lines and exposes the displayed list.
// *logic.Logic is the production implementation.
type Executor interface {
	Execute(ctx context.Context, line string) (command.Result, error)
	FilteredPersons() []*person.Person
	Filter(keywords ...string) int
	ShowAll()
}

// =============================================================================
// Config
// =============================================================================

// Config configures the shell.
type Config struct {
	// Debounce is how long typing must pause before a live search runs.
	Debounce time.Duration

	// LiveSearch filters the list while a search command is typed.
	LiveSearch bool

	// Prompt precedes the input line.
	Prompt string

	// MaxHistory bounds the number of remembered command lines.
	MaxHistory int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Debounce:   300 * time.Millisecond,
		LiveSearch: true,
		Prompt:     "> ",
		MaxHistory: 100,
	}
}

// =============================================================================
// Messages
// =============================================================================

// searchTickMsg fires when a debounce delay ends. Only the tick carrying the
// latest sequence number runs a search.
type searchTickMsg struct {
	seq int
}

// executedMsg carries the outcome of a command line.
type executedMsg struct {
	line   string
	result command.Result
	err    error
}

// =============================================================================
// Model
// =============================================================================

// Model is the bubbletea model of the interactive shell.
type Model struct {
	ctx    context.Context
	exec   Executor
	config Config

	input   textinput.Model
	persons []*person.Person

	feedback string
	isError  bool

	// searchSeq identifies the newest scheduled live search.
	searchSeq int

	history      []string
	historyIndex int
	currentInput string

	width    int
	height   int
	quitting bool
}

// New creates the shell model showing every person.
func New(ctx context.Context, exec Executor, config Config) Model {
	if config.Debounce <= 0 {
		config.Debounce = DefaultConfig().Debounce
	}
	if config.MaxHistory <= 0 {
		config.MaxHistory = DefaultConfig().MaxHistory
	}

	ti := textinput.New()
	ti.Prompt = config.Prompt
	ti.Placeholder = "Type a command, e.g. help"
	ti.CharLimit = 4096
	ti.Width = 80
	ti.Focus()

	return Model{
		ctx:          ctx,
		exec:         exec,
		config:       config,
		input:        ti,
		persons:      exec.FilteredPersons(),
		historyIndex: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.config.Prompt)-1, 10)
		return m, nil

	case searchTickMsg:
		return m.handleSearchTick(msg), nil

	case executedMsg:
		return m.handleExecuted(msg)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEsc:
			return m.reset(), nil

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyUp:
			return m.historyPrev(), nil

		case tea.KeyDown:
			return m.historyNext(), nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if tick := m.scheduleSearch(after); tick != nil {
			cmd = tea.Batch(cmd, tick)
		}
	}
	return m, cmd
}

// scheduleSearch supersedes any pending search and starts a new debounce
// delay when line is a search being typed.
func (m *Model) scheduleSearch(line string) tea.Cmd {
	m.searchSeq++
	if !m.config.LiveSearch || !parser.IsSearchLine(line) {
		return nil
	}
	seq := m.searchSeq
	return tea.Tick(m.config.Debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m Model) handleSearchTick(msg searchTickMsg) Model {
	if msg.seq != m.searchSeq {
		return m
	}
	keywords, ok := searchKeywords(m.input.Value())
	if !ok {
		return m
	}
	n := m.exec.Filter(keywords...)
	m.persons = m.exec.FilteredPersons()
	m.feedback = fmt.Sprintf(command.MessagePersonsListed, n)
	m.isError = false
	return m
}

// searchKeywords extracts the keywords of a search line.
func searchKeywords(line string) ([]string, bool) {
	word, args := parser.SplitCommandWord(line)
	if word != command.WordSearch && word != command.WordSearchSlash {
		return nil, false
	}
	return strings.Fields(args), true
}

// submit runs the input line. With live search on, a search line is applied
// as a filter immediately instead of being executed.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.addToHistory(line)
	m.historyIndex = -1

	if m.config.LiveSearch && parser.IsSearchLine(line) {
		m.searchSeq++
		return m.handleSearchTick(searchTickMsg{seq: m.searchSeq}), nil
	}

	ctx, exec := m.ctx, m.exec
	return m, func() tea.Msg {
		res, err := exec.Execute(ctx, line)
		return executedMsg{line: line, result: res, err: err}
	}
}

func (m Model) handleExecuted(msg executedMsg) (tea.Model, tea.Cmd) {
	m.persons = m.exec.FilteredPersons()

	if msg.err != nil {
		m.feedback = shared.UserMessage(msg.err)
		m.isError = true
		// A save failure still applied the command; the input is done with.
		if !shared.IsUserError(msg.err) && msg.result.Feedback != "" {
			m.feedback = msg.result.Feedback + "\n" + m.feedback
			m.clearInputIf(msg.line)
		}
		return m, nil
	}

	m.feedback = msg.result.Feedback
	m.isError = false
	m.clearInputIf(msg.line)

	if msg.result.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// clearInputIf clears the input unless the user has typed something else
// since line was submitted.
func (m *Model) clearInputIf(line string) {
	if m.input.Value() == line {
		m.input.SetValue("")
	}
}

// reset clears the input and shows every person.
func (m Model) reset() Model {
	m.searchSeq++
	m.input.SetValue("")
	m.exec.ShowAll()
	m.persons = m.exec.FilteredPersons()
	m.feedback = ""
	m.isError = false
	m.historyIndex = -1
	return m
}

func (m *Model) addToHistory(line string) {
	if n := len(m.history); n > 0 && m.history[n-1] == line {
		return
	}
	m.history = append(m.history, line)
	if len(m.history) > m.config.MaxHistory {
		m.history = m.history[1:]
	}
}

func (m Model) historyPrev() Model {
	if len(m.history) == 0 {
		return m
	}
	if m.historyIndex == -1 {
		m.currentInput = m.input.Value()
		m.historyIndex = len(m.history) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.input.SetValue(m.history[m.historyIndex])
	m.input.CursorEnd()
	return m
}

func (m Model) historyNext() Model {
	if m.historyIndex == -1 {
		return m
	}
	if m.historyIndex < len(m.history)-1 {
		m.historyIndex++
		m.input.SetValue(m.history[m.historyIndex])
	} else {
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
	}
	m.input.CursorEnd()
	return m
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Student Book"))
	b.WriteString(" ")
	b.WriteString(statsStyle.Render(fmt.Sprintf("%d shown", len(m.persons))))
	b.WriteString("\n\n")

	b.WriteString(m.renderList())
	b.WriteString("\n")

	if m.feedback != "" {
		style := feedbackStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.feedback))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("enter run · esc clear · ↑/↓ history · ctrl+c quit"))
	return b.String()
}

func (m Model) renderList() string {
	if len(m.persons) == 0 {
		return statsStyle.Render("No persons to show.") + "\n"
	}

	limit := len(m.persons)
	if m.height > 0 {
		// Room for title, feedback, input and footer.
		if room := (m.height - 8) / 2; room > 0 && room < limit {
			limit = room
		}
	}

	var b strings.Builder
	for i, p := range m.persons[:limit] {
		b.WriteString(indexStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(nameStyle.Render(p.Name().String()))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(personDetails(p)))
		b.WriteString("\n")
	}
	if limit < len(m.persons) {
		b.WriteString(statsStyle.Render(fmt.Sprintf("… %d more", len(m.persons)-limit)))
		b.WriteString("\n")
	}
	return b.String()
}

// personDetails renders everything but the name on one line.
func personDetails(p *person.Person) string {
	s := p.String()
	return strings.TrimPrefix(s, p.Name().String()+"; ")
}

// =============================================================================
// Styles
// =============================================================================

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	indexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	nameStyle     = lipgloss.NewStyle().Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(3)
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// =============================================================================
// Run
// =============================================================================

// Run starts the full-screen shell and blocks until the user exits.
func Run(ctx context.Context, exec Executor, config Config) error {
	p := tea.NewProgram(New(ctx, exec, config), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
