package ir

// TableBlock represents a pipe table. Rows may be ragged: each row keeps
// only the non-empty cells found in its source line.
type TableBlock struct {
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"` // widest row
	Cells     [][]Cell `json:"cells"`
	HeaderRow int      `json:"header_row"`
	HasHeader bool     `json:"has_header,omitempty"`
}

// Cell represents a single cell in a table.
type Cell struct {
	Text     string `json:"text"`
	IsHeader bool   `json:"is_header,omitempty"`
}

// NewTable creates an empty table.
func NewTable() *TableBlock {
	return &TableBlock{
		Cells: make([][]Cell, 0),
	}
}

// AddRow appends a row of cell texts.
func (t *TableBlock) AddRow(texts []string) {
	row := make([]Cell, len(texts))
	for i, text := range texts {
		row[i] = Cell{Text: text}
	}
	t.Cells = append(t.Cells, row)
	t.Rows = len(t.Cells)
	if len(row) > t.Cols {
		t.Cols = len(row)
	}
}

// SetHeaderRow marks the first row as a header row.
func (t *TableBlock) SetHeaderRow() {
	t.HeaderRow = 0
	t.HasHeader = true
	if len(t.Cells) > 0 {
		for j := range t.Cells[0] {
			t.Cells[0][j].IsHeader = true
		}
	}
}

// Header returns the header row texts, or nil if the table is empty.
func (t *TableBlock) Header() []string {
	if len(t.Cells) == 0 {
		return nil
	}
	return rowTexts(t.Cells[t.HeaderRow])
}

// DataRows returns the texts of every row after the header.
func (t *TableBlock) DataRows() [][]string {
	if len(t.Cells) <= 1 {
		return nil
	}
	rows := make([][]string, 0, len(t.Cells)-1)
	for _, row := range t.Cells[1:] {
		rows = append(rows, rowTexts(row))
	}
	return rows
}

func rowTexts(row []Cell) []string {
	texts := make([]string, len(row))
	for i, c := range row {
		texts[i] = c.Text
	}
	return texts
}
