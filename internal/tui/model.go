// Package tui is an interactive pager over a table engine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roboco-io/eventdesk/internal/render"
	"github.com/roboco-io/eventdesk/internal/table"
)

// PageSizeStep is the page size change per +/- key press.
const PageSizeStep = 5

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Model is the browser state.
type Model struct {
	title   string
	engine  *table.Engine
	rows    []table.Row
	state   table.State
	result  table.Result
	keys    KeyMap
	input   textinput.Model
	editing bool
	err     error
}

// New creates a browser showing rows under state.
func New(title string, engine *table.Engine, rows []table.Row, state table.State) Model {
	ti := textinput.New()
	ti.Prompt = "검색: "
	ti.Placeholder = "포함할 텍스트"
	ti.CharLimit = 200

	m := Model{
		title:  title,
		engine: engine,
		rows:   rows,
		state:  state,
		keys:   DefaultKeyMap(),
		input:  ti,
	}
	m.derive()
	return m
}

// State returns the current view state.
func (m Model) State() table.State { return m.state }

// Result returns the current derived page.
func (m Model) Result() table.Result { return m.result }

// Err returns the last rejected transition, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.editing {
		return m.handleFilterKeys(keyMsg)
	}
	return m.handleKeyMsg(keyMsg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.apply(m.engine.GotoPage(m.state, m.result.PageIndex+1, m.result.TotalPages))

	case key.Matches(msg, m.keys.Prev):
		m.apply(m.engine.GotoPage(m.state, m.result.PageIndex-1, m.result.TotalPages))

	case key.Matches(msg, m.keys.Grow):
		m.apply(m.engine.SetPageSize(m.state, m.state.PageSize+PageSizeStep))

	case key.Matches(msg, m.keys.Shrink):
		m.apply(m.engine.SetPageSize(m.state, m.state.PageSize-PageSizeStep))

	case key.Matches(msg, m.keys.Reset):
		m.state = m.engine.DefaultState()
		m.input.SetValue("")
		m.derive()

	case key.Matches(msg, m.keys.Filter):
		m.editing = true
		m.input.SetValue(m.state.GlobalFilter)
		m.input.CursorEnd()
		return m, m.input.Focus()

	default:
		for i, binding := range m.keys.SortKeys {
			if !key.Matches(msg, binding) {
				continue
			}
			cols := m.engine.Columns()
			if i < len(cols) {
				m.apply(m.engine.SetSort(m.state, cols[i].Accessor))
			}
			break
		}
	}
	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		m.editing = false
		m.input.Blur()
		m.state = m.engine.SetGlobalFilter(m.state, m.input.Value())
		m.derive()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply stores a transition result; rejected transitions keep the state.
func (m *Model) apply(s table.State, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.state = s
	m.derive()
}

func (m *Model) derive() {
	m.result = m.engine.Derive(m.rows, m.state)
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	if m.title != "" {
		sb.WriteString(titleStyle.Render(m.title) + "\n")
	}
	if err := render.TableView(&sb, m.engine.Columns(), m.result, m.state); err != nil {
		sb.WriteString(errorStyle.Render(err.Error()) + "\n")
	}
	if m.state.GlobalFilter != "" && !m.editing {
		sb.WriteString(fmt.Sprintf("검색어: %q\n", m.state.GlobalFilter))
	}
	if m.editing {
		sb.WriteString(m.input.View() + "\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	help := make([]string, 0, len(m.keys.ShortHelp())+1)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	help = append(help, "1-9 정렬")
	sb.WriteString(helpStyle.Render(strings.Join(help, " • ")) + "\n")

	return sb.String()
}

// Run starts the browser on the terminal and blocks until it exits.
func Run(ctx context.Context, m Model) (table.State, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return m.state, fmt.Errorf("interactive view failed: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.state, nil
	}
	return m.state, nil
}
