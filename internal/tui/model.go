// Package tui is the interactive front end: a question box, retrieval
// controls and an answer viewport over the query pipeline.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vendorrag/internal/config"
	"vendorrag/internal/pipeline"
)

// QueryPort is the TUI-facing subset of the pipeline.
type QueryPort interface {
	Ask(ctx context.Context, question string, opts pipeline.Options) (pipeline.Result, error)
}

// Model is the Bubble Tea model for the vendor search app.
type Model struct {
	service  QueryPort
	input    textinput.Model
	viewport viewport.Model
	opts     pipeline.Options
	status   string
	ready    bool
}

// New creates a TUI model with the given starting options.
func New(service QueryPort, opts pipeline.Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about vendors and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		opts:     opts,
		status:   "Index loaded. Type a question.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question != "" {
				m = m.runQuery(question)
				return m, nil
			}
		case "up":
			if m.opts.K < 10 {
				m.opts.K++
			}
			return m, nil
		case "down":
			if m.opts.K > 1 {
				m.opts.K--
			}
			return m, nil
		case "tab":
			m.opts.UseMMR = !m.opts.UseMMR
			return m, nil
		case "ctrl+g":
			if m.opts.Model == config.ModelFast {
				m.opts.Model = config.ModelQuality
			} else {
				m.opts.Model = config.ModelFast
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runQuery(question string) Model {
	res, err := m.service.Ask(context.Background(), question, m.opts)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.viewport.SetContent(res.Answer)
	m.viewport.GotoTop()
	switch res.Status {
	case pipeline.StatusDone:
		if res.Usage != nil {
			u := res.Usage
			m.status = fmt.Sprintf("Done. %d vendors, tokens q=%d ctx=%d resp=%d total=%d",
				u.DocumentsRetrieved, u.QuestionTokens, u.ContextTokens, u.ResponseTokens, u.TotalTokens)
		} else {
			m.status = "Done."
		}
	case pipeline.StatusEmptyIndex:
		m.status = "Index is empty."
	case pipeline.StatusNoResults:
		m.status = "No matching vendors."
	}
	return m
}

// View renders the layout: header, answer viewport, input, status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	search := "similarity"
	if m.opts.UseMMR {
		search = "MMR"
	}
	header := headerStyle.Render("Vendor Search") +
		settingStyle.Render(fmt.Sprintf("  k=%d (↑/↓)  search=%s (tab)  model=%s (ctrl+g)", m.opts.K, search, m.opts.Model))
	body := answerBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + body + "\n" + input + "\n" + status
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	settingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
