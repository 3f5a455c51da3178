package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/eventdesk/internal/table"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, n int) Model {
	t.Helper()
	cols := []table.Column{
		{Header: "Name", Accessor: "name", Sortable: true},
		{Header: "City", Accessor: "city", Sortable: true},
	}
	e, err := table.New(cols, table.Config{PageSize: 10, Sortable: true, Searchable: true})
	require.NoError(t, err)

	rows := make([]table.Row, n)
	for i := range rows {
		city := "Seoul"
		if i%2 == 1 {
			city = "Busan"
		}
		rows[i] = table.Row{
			"name": table.Text(fmt.Sprintf("event-%02d", i+1)),
			"city": table.Text(city),
		}
	}
	return New("events", e, rows, e.DefaultState())
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_Paging(t *testing.T) {
	m := newModel(t, 23)
	assert.Equal(t, 3, m.Result().TotalPages)

	m = send(m, runes("n"), runes("n"), runes("n"))
	assert.Equal(t, 2, m.State().PageIndex)
	assert.Equal(t, "Showing 21 to 23 of 23 entries", m.Result().Summary())

	m = send(m, runes("p"))
	assert.Equal(t, 1, m.State().PageIndex)

	m = send(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.State().PageIndex)
}

func TestModel_SortByNumberKey(t *testing.T) {
	m := newModel(t, 4)

	m = send(m, runes("2"))
	assert.Equal(t, "city", m.State().SortColumn)
	assert.Equal(t, table.SortAsc, m.State().SortDirection)
	assert.Equal(t, "Busan", m.Result().PageRows[0].Get("city").String())

	m = send(m, runes("2"), runes("2"))
	assert.False(t, m.State().Sorted())

	// no third column: ignored
	m = send(m, runes("3"))
	assert.False(t, m.State().Sorted())
	assert.NoError(t, m.Err())
}

func TestModel_Filter(t *testing.T) {
	m := newModel(t, 23)
	m = send(m, runes("n"))
	require.Equal(t, 1, m.State().PageIndex)

	m = send(m, runes("/"), runes("B"), runes("usan"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Busan", m.State().GlobalFilter)
	assert.Equal(t, 0, m.State().PageIndex)
	assert.Equal(t, 11, m.Result().TotalFilteredCount)
	assert.Contains(t, m.View(), "검색어")
}

func TestModel_FilterCancel(t *testing.T) {
	m := newModel(t, 5)
	m = send(m, runes("/"), runes("zzz"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.State().GlobalFilter)
	assert.Equal(t, 5, m.Result().TotalFilteredCount)

	// keys typed while editing do not page
	m = send(m, runes("/"), runes("n"))
	assert.Equal(t, 0, m.State().PageIndex)
}

func TestModel_PageSize(t *testing.T) {
	m := newModel(t, 23)

	m = send(m, runes("+"))
	assert.Equal(t, 15, m.State().PageSize)
	assert.Equal(t, 2, m.Result().TotalPages)

	m = send(m, runes("-"), runes("-"), runes("-"))
	assert.Equal(t, 5, m.State().PageSize)
	assert.True(t, errors.Is(m.Err(), table.ErrInvalidArgument))

	m = send(m, runes("n"))
	assert.NoError(t, m.Err())
}

func TestModel_Reset(t *testing.T) {
	m := newModel(t, 23)
	m = send(m, runes("1"), runes("n"), runes("+"))
	m = send(m, runes("r"))
	assert.Equal(t, table.State{PageSize: 10}, m.State())
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, 1)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m := newModel(t, 3)
	view := m.View()
	assert.Contains(t, view, "events")
	assert.Contains(t, view, "event-01")
	assert.Contains(t, view, "Showing 1 to 3 of 3 entries")
	assert.Contains(t, view, "1-9 정렬")
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m := newModel(t, 3)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, m.State(), next.(Model).State())
}
