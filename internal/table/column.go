package table

// Align is the horizontal alignment of a column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Column describes one visible table column.
type Column struct {
	Header   string `json:"header" yaml:"header"`
	Accessor string `json:"accessor" yaml:"accessor"`
	Width    string `json:"width,omitempty" yaml:"width,omitempty"`
	Align    Align  `json:"align,omitempty" yaml:"align,omitempty"`
	Sortable bool   `json:"sortable" yaml:"sortable"`
}

// Row is a record keyed by column accessors.
type Row map[string]Value

// NewRow converts a decoded record into a Row.
func NewRow(fields map[string]any) Row {
	row := make(Row, len(fields))
	for k, v := range fields {
		row[k] = FromAny(v)
	}
	return row
}

// Get returns the value under accessor, or null when absent.
func (r Row) Get(accessor string) Value {
	return r[accessor]
}
