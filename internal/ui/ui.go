package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/session"
)

var (
	echoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model drives a session from a single-line text input. Prompts, messages
// and tables are printed above the input so they scroll like ordinary
// terminal output.
type Model struct {
	sess  *session.Session
	input textinput.Model
	quit  bool
}

func Run(sess *session.Session) error {
	program := tea.NewProgram(NewModel(sess))
	_, err := program.Run()
	return err
}

func NewModel(sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()
	return Model{sess: sess, input: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, printLines(m.sess.Start()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quit = true
		return m, tea.Quit
	case tea.KeyEnter:
		line := m.input.Value()
		m.input.SetValue("")
		out := m.sess.Handle(line)
		echo := printLines(append([]string{echoStyle.Render(m.input.Prompt + line)}, out...))
		if m.sess.Done() {
			m.quit = true
			return m, tea.Sequence(echo, tea.Quit)
		}
		return m, echo
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter submit • ctrl+c quit"))
	return b.String()
}

func printLines(lines []string) tea.Cmd {
	if len(lines) == 0 {
		return nil
	}
	return tea.Println(strings.Join(lines, "\n"))
}
