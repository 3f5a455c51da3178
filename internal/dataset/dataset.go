// Package dataset loads tabular records for the table engine from JSON,
// YAML and CSV documents, keeping the column order of the source.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roboco-io/eventdesk/internal/table"
)

var (
	// ErrUnsupportedFormat is returned for files that are not JSON, YAML or CSV.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrInvalidDocument is returned when the document has no recognizable row shape.
	ErrInvalidDocument = errors.New("invalid dataset document")
	// ErrUnknownColumn is returned when a column selection names a missing accessor.
	ErrUnknownColumn = errors.New("unknown column")
)

// Format identifies a dataset encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
	FormatCSV
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// DetectFormat detects the format from a file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// DetectFormatFromBytes sniffs the format from content. Anything that is
// not a JSON document is treated as YAML.
func DetectFormatFromBytes(data []byte) Format {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return FormatUnknown
	}
	if trimmed[0] == '[' || trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Dataset is a set of rows together with the columns that display them.
type Dataset struct {
	Columns []table.Column
	Rows    []table.Row
}

// Load reads and decodes the file at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupportedFormat)
	}
	return Decode(data, format)
}

// Decode decodes data in the given format.
func Decode(data []byte, format Format) (*Dataset, error) {
	switch format {
	case FormatJSON, FormatYAML:
		return decodeTree(data)
	case FormatCSV:
		return decodeCSV(data)
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
}

// Select narrows the dataset to the given accessors, in that order.
func (d *Dataset) Select(accessors []string) (*Dataset, error) {
	if len(accessors) == 0 {
		return d, nil
	}

	byAccessor := make(map[string]table.Column, len(d.Columns))
	for _, c := range d.Columns {
		byAccessor[c.Accessor] = c
	}

	cols := make([]table.Column, 0, len(accessors))
	for _, a := range accessors {
		c, ok := byAccessor[a]
		if !ok {
			return nil, fmt.Errorf("%q: %w", a, ErrUnknownColumn)
		}
		cols = append(cols, c)
	}
	return &Dataset{Columns: cols, Rows: d.Rows}, nil
}

// Header turns an accessor such as "start_date" into "Start Date".
func Header(accessor string) string {
	words := strings.FieldsFunc(accessor, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// columnSet collects inferred columns in first-seen order.
type columnSet struct {
	seen map[string]bool
	cols []table.Column
}

func newColumnSet() *columnSet {
	return &columnSet{seen: make(map[string]bool)}
}

func (s *columnSet) add(accessor string) {
	if s.seen[accessor] {
		return
	}
	s.seen[accessor] = true
	s.cols = append(s.cols, table.Column{
		Header:   Header(accessor),
		Accessor: accessor,
		Align:    table.AlignLeft,
		Sortable: true,
	})
}
