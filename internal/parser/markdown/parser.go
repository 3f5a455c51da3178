// Package markdown parses the markdown subset used in assistant chat replies:
// headings (#, ##, ###), bullet and numbered lists, pipe tables, blank-line
// spacing and **bold** spans. Parsing is total: malformed input degrades to
// plain paragraphs and never returns an error.
package markdown

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roboco-io/eventdesk/internal/ir"
)

const bullet = "• "

var orderedMarkerPattern = regexp.MustCompile(`^(\d+)\.\s*`)

var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

type state int

const (
	stateDefault state = iota
	stateInList
	stateInTable
)

// Parser implements parser.Parser for the chat markdown subset.
type Parser struct{}

// New creates a new markdown parser.
func New() *Parser {
	return &Parser{}
}

// Parse implements the parser.Parser interface.
func (p *Parser) Parse(source string) *ir.Document {
	return Parse(source)
}

// Parse converts source into a block document.
func Parse(source string) *ir.Document {
	doc := ir.NewDocument()

	text := Preprocess(source)
	if text == "" {
		return doc
	}

	b := &builder{doc: doc}
	lines := strings.Split(text, "\n")
	last := len(lines) - 1
	for i, line := range lines {
		b.line(line, i == last)
	}
	b.flush()

	return doc
}

// ParseBlocks is Parse returning only the block slice.
func ParseBlocks(source string) []ir.Block {
	return Parse(source).Content
}

// builder carries the accumulation state across lines. At most one of
// list and table is open at a time.
type builder struct {
	doc   *ir.Document
	state state
	list  *ir.ListBlock
	table *ir.TableBlock
}

func (b *builder) line(line string, final bool) {
	if b.state == stateInTable {
		if isSeparatorRow(line) {
			return
		}
		if isTableRow(line) {
			b.addTableRow(line)
			return
		}
		b.flushTable()
	}

	switch {
	case isTableRow(line):
		b.flushList()
		b.table = ir.NewTable()
		b.state = stateInTable
		b.addTableRow(line)

	case strings.TrimSpace(line) == "":
		b.flushList()
		if !final && len(b.doc.Content) > 0 && b.doc.Last().Type != ir.BlockTypeSpacer {
			b.doc.AddSpacer()
		}

	case isListItem(line):
		b.addListItem(line)

	case isHeading(line):
		b.flushList()
		level, text := splitHeading(line)
		h := ir.NewHeading(level, text)
		h.Spans = ParseInline(text)
		b.doc.AddHeading(h)

	case b.state == stateInList:
		b.continueListItem(line)

	default:
		p := ir.NewParagraph(line)
		p.Spans = ParseInline(line)
		b.doc.AddParagraph(p)
	}
}

func (b *builder) flush() {
	b.flushTable()
	b.flushList()
}

func (b *builder) flushTable() {
	if b.table != nil && len(b.table.Cells) > 0 {
		b.table.SetHeaderRow()
		b.doc.AddTable(b.table)
	}
	b.table = nil
	if b.state == stateInTable {
		b.state = stateDefault
	}
}

func (b *builder) flushList() {
	if b.list != nil && !b.list.IsEmpty() {
		b.doc.AddList(b.list)
	}
	b.list = nil
	if b.state == stateInList {
		b.state = stateDefault
	}
}

func (b *builder) addTableRow(line string) {
	cells := splitCells(line)
	if len(cells) == 0 {
		return
	}
	b.table.AddRow(cells)
}

func (b *builder) addListItem(line string) {
	text, number, ordered := stripListMarker(line)
	if b.state != stateInList {
		if ordered {
			b.list = ir.NewOrderedList()
			b.list.Start = number
		} else {
			b.list = ir.NewUnorderedList()
		}
		b.state = stateInList
	}
	b.list.AddItem(text, ParseInline(text))
}

func (b *builder) continueListItem(line string) {
	item := &b.list.Items[len(b.list.Items)-1]
	extra := strings.TrimSpace(line)
	if item.Text == "" {
		item.Text = extra
	} else {
		item.Text += " " + extra
	}
	item.Spans = ParseInline(item.Text)
}

func isTableRow(line string) bool {
	return strings.Contains(line, "|") && !strings.Contains(line, "---")
}

func isSeparatorRow(line string) bool {
	return strings.Contains(line, "---")
}

func isListItem(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, bullet) {
		return true
	}
	return orderedMarkerPattern.MatchString(line) && utf8.RuneCountInString(line) > 2
}

func isHeading(line string) bool {
	level, _ := splitHeading(line)
	return level > 0
}

// splitHeading checks prefixes longest first so "### " never reads as "# ".
func splitHeading(line string) (int, string) {
	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			return h.level, strings.TrimSpace(line[len(h.prefix):])
		}
	}
	return 0, ""
}

func stripListMarker(line string) (text string, number int, ordered bool) {
	switch {
	case strings.HasPrefix(line, bullet):
		return strings.TrimPrefix(line, bullet), 0, false
	case strings.HasPrefix(line, "- "):
		return strings.TrimPrefix(line, "- "), 0, false
	}

	m := orderedMarkerPattern.FindStringSubmatch(line)
	if m == nil {
		return line, 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		n = 1
	}
	return line[len(m[0]):], n, true
}

func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		if cell := strings.TrimSpace(part); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
