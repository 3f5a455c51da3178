package table

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventColumns() []Column {
	return []Column{
		{Header: "Name", Accessor: "name", Sortable: true},
		{Header: "City", Accessor: "city", Sortable: true},
		{Header: "Seats", Accessor: "seats", Align: AlignRight, Sortable: true},
		{Header: "Notes", Accessor: "notes"},
	}
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(eventColumns(), cfg)
	require.NoError(t, err)
	return e
}

func numberedRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			"name":  Text(fmt.Sprintf("event-%02d", i+1)),
			"seats": Number(float64(i + 1)),
		}
	}
	return rows
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get("name").String()
	}
	return out
}

func TestNew_RejectsBadColumns(t *testing.T) {
	_, err := New([]Column{{Header: "x"}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New([]Column{{Accessor: "a"}, {Accessor: "a"}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(eventColumns(), Config{PageSize: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_ZeroPageSizeUsesDefault(t *testing.T) {
	e := newEngine(t, Config{})
	assert.Equal(t, DefaultPageSize, e.DefaultState().PageSize)
}

func TestDefaultState(t *testing.T) {
	e := newEngine(t, Config{PageSize: 25, Sortable: true, Searchable: true})
	assert.Equal(t, State{PageSize: 25}, e.DefaultState())
}

func TestSetSort_ToggleCycle(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()

	var err error
	s, err = e.SetSort(s, "name")
	require.NoError(t, err)
	assert.Equal(t, "name", s.SortColumn)
	assert.Equal(t, SortAsc, s.SortDirection)

	s, err = e.SetSort(s, "name")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, s.SortDirection)

	s, err = e.SetSort(s, "name")
	require.NoError(t, err)
	assert.False(t, s.Sorted())
	assert.Equal(t, e.DefaultState(), s)
}

func TestSetSort_OtherColumnStartsAscending(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s, _ := e.SetSort(e.DefaultState(), "name")
	s, _ = e.SetSort(s, "name")
	require.Equal(t, SortDesc, s.SortDirection)

	s, err := e.SetSort(s, "city")
	require.NoError(t, err)
	assert.Equal(t, "city", s.SortColumn)
	assert.Equal(t, SortAsc, s.SortDirection)
}

func TestSetSort_NotSortable(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()

	got, err := e.SetSort(s, "notes")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	locked := newEngine(t, Config{PageSize: 10, Searchable: true})
	got, err = locked.SetSort(s, "name")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSetSort_UnknownColumn(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()
	got, err := e.SetSort(s, "missing")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, s, got)
}

func TestSetGlobalFilter(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()
	s.PageIndex = 3

	s = e.SetGlobalFilter(s, "  Seoul ")
	assert.Equal(t, "Seoul", s.GlobalFilter)
	assert.Equal(t, 0, s.PageIndex)
}

func TestSetGlobalFilter_NotSearchable(t *testing.T) {
	e := newEngine(t, Config{PageSize: 10, Sortable: true})
	s := e.DefaultState()
	assert.Equal(t, s, e.SetGlobalFilter(s, "x"))
}

func TestSetPageSize(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()
	s.PageIndex = 2

	got, err := e.SetPageSize(s, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, s, got)

	got, err = e.SetPageSize(s, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, got.PageSize)
	assert.Equal(t, 0, got.PageIndex)
}

func TestGotoPage(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()

	tests := []struct {
		name       string
		index      int
		totalPages int
		want       int
	}{
		{"inside range", 1, 3, 1},
		{"past the end", 7, 3, 2},
		{"negative index", -4, 3, 0},
		{"no pages", 5, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.GotoPage(s, tc.index, tc.totalPages)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.PageIndex)
		})
	}

	_, err := e.GotoPage(s, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDerive_PaginationArithmetic(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	rows := numberedRows(23)

	s, err := e.GotoPage(e.DefaultState(), 2, 3)
	require.NoError(t, err)

	res := e.Derive(rows, s)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 23, res.TotalFilteredCount)
	assert.Equal(t, 2, res.PageIndex)
	assert.Equal(t, 21, res.RangeStart)
	assert.Equal(t, 23, res.RangeEnd)
	assert.Len(t, res.PageRows, 3)
	assert.Equal(t, "Showing 21 to 23 of 23 entries", res.Summary())
	assert.False(t, res.HasNext())
	assert.True(t, res.HasPrev())
}

func TestDerive_FirstPage(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	res := e.Derive(numberedRows(23), e.DefaultState())
	assert.Equal(t, 1, res.RangeStart)
	assert.Equal(t, 10, res.RangeEnd)
	assert.Equal(t, "event-01", names(res.PageRows)[0])
	assert.True(t, res.HasNext())
}

func TestDerive_Empty(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	res := e.Derive(nil, e.DefaultState())

	assert.Empty(t, res.PageRows)
	assert.Equal(t, 0, res.TotalPages)
	assert.Equal(t, 0, res.TotalFilteredCount)
	assert.Equal(t, "Showing 0 to 0 of 0 entries", res.Summary())
}

func TestDerive_PageSizeLargerThanData(t *testing.T) {
	e := newEngine(t, Config{PageSize: 100, Sortable: true, Searchable: true})
	res := e.Derive(numberedRows(7), e.DefaultState())
	assert.Equal(t, 1, res.TotalPages)
	assert.Len(t, res.PageRows, 7)
	assert.Equal(t, "Showing 1 to 7 of 7 entries", res.Summary())
}

func TestDerive_StaleIndexClamped(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	s := e.DefaultState()
	s.PageIndex = 9

	res := e.Derive(numberedRows(15), s)
	assert.Equal(t, 1, res.PageIndex)
	assert.Equal(t, 11, res.RangeStart)
	assert.Equal(t, 15, res.RangeEnd)
}

func TestDerive_StableSort(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	rows := []Row{
		{"name": Text("a"), "city": Text("Busan")},
		{"name": Text("b"), "city": Text("Seoul")},
		{"name": Text("c"), "city": Text("Busan")},
		{"name": Text("d"), "city": Text("Seoul")},
		{"name": Text("e"), "city": Text("Busan")},
	}

	s, err := e.SetSort(e.DefaultState(), "city")
	require.NoError(t, err)
	res := e.Derive(rows, s)
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, names(res.PageRows))

	s, err = e.SetSort(s, "city")
	require.NoError(t, err)
	res = e.Derive(rows, s)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names(res.PageRows))
}

func TestDerive_SortNumbersNaturally(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	rows := []Row{
		{"name": Text("big"), "seats": Number(100)},
		{"name": Text("none")},
		{"name": Text("small"), "seats": Number(9)},
	}

	s, _ := e.SetSort(e.DefaultState(), "seats")
	res := e.Derive(rows, s)
	assert.Equal(t, []string{"none", "small", "big"}, names(res.PageRows))
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	rows := []Row{
		{"name": Text("b")},
		{"name": Text("a")},
	}
	s, _ := e.SetSort(e.DefaultState(), "name")
	_ = e.Derive(rows, s)
	assert.Equal(t, []string{"b", "a"}, names(rows))
}

func TestDerive_FilterIsCaseSensitiveSubstring(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	rows := []Row{
		{"name": Text("Spring Expo"), "city": Text("Seoul")},
		{"name": Text("spring gala"), "city": Text("Busan")},
		{"name": Text("Winter Fair"), "notes": Text("Spring follow-up")},
		{"name": Text("Summit"), "seats": Number(250)},
	}

	s := e.SetGlobalFilter(e.DefaultState(), "Spring")
	res := e.Derive(rows, s)
	assert.Equal(t, []string{"Spring Expo", "Winter Fair"}, names(res.PageRows))

	s = e.SetGlobalFilter(s, "25")
	res = e.Derive(rows, s)
	assert.Equal(t, []string{"Summit"}, names(res.PageRows))
}

func TestDerive_FilterIgnoresHiddenFields(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	rows := []Row{{"name": Text("x"), "secret": Text("needle")}}
	res := e.Derive(rows, e.SetGlobalFilter(e.DefaultState(), "needle"))
	assert.Equal(t, 0, res.TotalFilteredCount)
}

func TestDerive_Composition(t *testing.T) {
	e := newEngine(t, Config{PageSize: 2, Sortable: true, Searchable: true})
	rows := []Row{
		{"name": Text("e5"), "city": Text("Seoul")},
		{"name": Text("e1"), "city": Text("Seoul")},
		{"name": Text("x9"), "city": Text("Busan")},
		{"name": Text("e3"), "city": Text("Seoul")},
		{"name": Text("e2"), "city": Text("Seoul")},
	}

	s := e.SetGlobalFilter(e.DefaultState(), "Seoul")
	s, err := e.SetSort(s, "name")
	require.NoError(t, err)
	s, err = e.GotoPage(s, 1, 2)
	require.NoError(t, err)

	res := e.Derive(rows, s)

	// page 1 of sort(filter(rows)) with size 2
	assert.Equal(t, []string{"e3", "e5"}, names(res.PageRows))
	assert.Equal(t, 4, res.TotalFilteredCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, "Showing 3 to 4 of 4 entries", res.Summary())
}

func TestDerive_DateColumn(t *testing.T) {
	e, err := New([]Column{{Header: "When", Accessor: "when", Sortable: true}}, DefaultConfig())
	require.NoError(t, err)

	rows := []Row{
		{"when": Date(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))},
		{"when": Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))},
	}
	s, _ := e.SetSort(e.DefaultState(), "when")
	res := e.Derive(rows, s)
	assert.Equal(t, "2024-05-01", res.PageRows[0].Get("when").String())

	res = e.Derive(rows, e.SetGlobalFilter(e.DefaultState(), "2024-06"))
	assert.Equal(t, 1, res.TotalFilteredCount)
}

func TestDerive_MixedKindsSortByKind(t *testing.T) {
	e, err := New([]Column{{Header: "Seats", Accessor: "seats", Sortable: true}}, DefaultConfig())
	require.NoError(t, err)

	orders := [][]Value{
		{Number(10), Text("10"), Number(9)},
		{Number(9), Text("10"), Number(10)},
		{Text("10"), Number(10), Number(9)},
	}
	s, _ := e.SetSort(e.DefaultState(), "seats")
	for _, values := range orders {
		rows := make([]Row, len(values))
		for i, v := range values {
			rows[i] = Row{"seats": v}
		}
		res := e.Derive(rows, s)

		var got []string
		for _, r := range res.PageRows {
			v := r.Get("seats")
			got = append(got, v.Kind().String()+":"+v.String())
		}
		assert.Equal(t, []string{"number:9", "number:10", "text:10"}, got)
	}
}

func TestColumns_ReturnsCopy(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	cols := e.Columns()
	cols[0].Header = "changed"
	c, ok := e.Column("name")
	require.True(t, ok)
	assert.Equal(t, "Name", c.Header)
}
