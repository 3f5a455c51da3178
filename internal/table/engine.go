// Package table derives the visible window of a tabular data set: global
// substring filter, stable single-column sort, pagination and the
// "showing X to Y of Z" range. Engines are immutable after construction
// and every state transition returns a new State.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidArgument is returned for bad page sizes, negative page counts
// and unknown sort columns.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultPageSize is used when a Config leaves PageSize unset.
const DefaultPageSize = 10

// SortDirection is the direction of the active sort.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Config holds the engine options.
type Config struct {
	PageSize   int  `json:"page_size" yaml:"page_size"`
	Sortable   bool `json:"sortable" yaml:"sortable"`
	Searchable bool `json:"searchable" yaml:"searchable"`
}

// DefaultConfig returns a sortable, searchable config with 10 rows per page.
func DefaultConfig() Config {
	return Config{
		PageSize:   DefaultPageSize,
		Sortable:   true,
		Searchable: true,
	}
}

// State is the user-controlled view state.
type State struct {
	PageIndex     int           `json:"page_index"`
	PageSize      int           `json:"page_size"`
	SortColumn    string        `json:"sort_column,omitempty"`
	SortDirection SortDirection `json:"sort_direction,omitempty"`
	GlobalFilter  string        `json:"global_filter,omitempty"`
}

// Sorted reports whether a sort is active.
func (s State) Sorted() bool {
	return s.SortColumn != "" && s.SortDirection != SortNone
}

// Engine applies a State to rows for a fixed set of columns.
type Engine struct {
	columns []Column
	index   map[string]int
	config  Config
}

// New creates an engine. Accessors must be non-empty and unique.
func New(columns []Column, cfg Config) (*Engine, error) {
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("page size %d: %w", cfg.PageSize, ErrInvalidArgument)
	}

	e := &Engine{
		columns: slices.Clone(columns),
		index:   make(map[string]int, len(columns)),
		config:  cfg,
	}
	for i, col := range columns {
		if col.Accessor == "" {
			return nil, fmt.Errorf("column %d has no accessor: %w", i, ErrInvalidArgument)
		}
		if _, dup := e.index[col.Accessor]; dup {
			return nil, fmt.Errorf("duplicate column %q: %w", col.Accessor, ErrInvalidArgument)
		}
		e.index[col.Accessor] = i
	}
	return e, nil
}

// Columns returns a copy of the engine's columns.
func (e *Engine) Columns() []Column {
	return slices.Clone(e.columns)
}

// Column looks up a column by accessor.
func (e *Engine) Column(accessor string) (Column, bool) {
	i, ok := e.index[accessor]
	if !ok {
		return Column{}, false
	}
	return e.columns[i], true
}

// Config returns the engine options.
func (e *Engine) Config() Config {
	return e.config
}

// DefaultState returns the initial state: first page, configured size, no
// sort and no filter.
func (e *Engine) DefaultState() State {
	return State{PageSize: e.config.PageSize}
}

// SetGlobalFilter stores the trimmed query and returns to the first page.
func (e *Engine) SetGlobalFilter(s State, query string) State {
	if !e.config.Searchable {
		return s
	}
	s.GlobalFilter = strings.TrimSpace(query)
	s.PageIndex = 0
	return s
}

// SetSort cycles the sort of accessor through asc, desc and none. Another
// column always starts at asc.
func (e *Engine) SetSort(s State, accessor string) (State, error) {
	col, ok := e.Column(accessor)
	if !ok {
		return s, fmt.Errorf("sort column %q: %w", accessor, ErrInvalidArgument)
	}
	if !e.config.Sortable || !col.Sortable {
		return s, nil
	}

	if s.SortColumn != accessor {
		s.SortColumn = accessor
		s.SortDirection = SortAsc
		return s, nil
	}

	switch s.SortDirection {
	case SortAsc:
		s.SortDirection = SortDesc
	case SortDesc:
		s.SortColumn = ""
		s.SortDirection = SortNone
	default:
		s.SortDirection = SortAsc
	}
	return s, nil
}

// SetPageSize changes the page size and returns to the first page.
func (e *Engine) SetPageSize(s State, size int) (State, error) {
	if size <= 0 {
		return s, fmt.Errorf("page size %d: %w", size, ErrInvalidArgument)
	}
	s.PageSize = size
	s.PageIndex = 0
	return s, nil
}

// GotoPage moves to index clamped into [0, totalPages-1].
func (e *Engine) GotoPage(s State, index, totalPages int) (State, error) {
	if totalPages < 0 {
		return s, fmt.Errorf("total pages %d: %w", totalPages, ErrInvalidArgument)
	}
	s.PageIndex = clamp(index, 0, max(totalPages-1, 0))
	return s, nil
}

// Result is the derived view of a data set under a State.
type Result struct {
	PageRows           []Row
	TotalFilteredCount int
	TotalPages         int
	PageIndex          int
	RangeStart         int
	RangeEnd           int
}

// Summary renders the range text.
func (r Result) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d entries", r.RangeStart, r.RangeEnd, r.TotalFilteredCount)
}

// HasNext reports whether a page follows the current one.
func (r Result) HasNext() bool {
	return r.PageIndex+1 < r.TotalPages
}

// HasPrev reports whether a page precedes the current one.
func (r Result) HasPrev() bool {
	return r.PageIndex > 0
}

// Derive filters, sorts and paginates rows. The input slice is not
// modified.
func (e *Engine) Derive(rows []Row, s State) Result {
	filtered := e.filter(rows, s.GlobalFilter)
	if s.Sorted() {
		sortRows(filtered, s.SortColumn, s.SortDirection)
	}

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = e.config.PageSize
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	pageIndex := clamp(s.PageIndex, 0, max(totalPages-1, 0))

	start := min(pageIndex*pageSize, total)
	end := min(start+pageSize, total)

	res := Result{
		PageRows:           filtered[start:end:end],
		TotalFilteredCount: total,
		TotalPages:         totalPages,
		PageIndex:          pageIndex,
	}
	if total > 0 {
		res.RangeStart = start + 1
		res.RangeEnd = end
	}
	return res
}

func (e *Engine) filter(rows []Row, query string) []Row {
	if query == "" {
		return slices.Clone(rows)
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if e.matches(row, query) {
			out = append(out, row)
		}
	}
	return out
}

func (e *Engine) matches(row Row, query string) bool {
	for _, col := range e.columns {
		if strings.Contains(row.Get(col.Accessor).String(), query) {
			return true
		}
	}
	return false
}

func sortRows(rows []Row, accessor string, dir SortDirection) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := Compare(a.Get(accessor), b.Get(accessor))
		if dir == SortDesc {
			return -c
		}
		return c
	})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
