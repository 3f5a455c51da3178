// Package ir defines the block representation of a parsed chat message.
// It is the output of the markdown parser and the input of every renderer.
package ir

import "strings"

// Document is an ordered sequence of content blocks.
type Document struct {
	Version string  `json:"version"`
	Content []Block `json:"content"`
}

// BlockType represents the type of content block.
type BlockType string

const (
	BlockTypeHeading   BlockType = "heading"
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeList      BlockType = "list"
	BlockTypeTable     BlockType = "table"
	BlockTypeSpacer    BlockType = "spacer"
)

// Block represents a content block in the document.
// Exactly one payload is set, matching Type; spacers carry none.
type Block struct {
	Type      BlockType   `json:"type"`
	Heading   *Heading    `json:"heading,omitempty"`
	Paragraph *Paragraph  `json:"paragraph,omitempty"`
	List      *ListBlock  `json:"list,omitempty"`
	Table     *TableBlock `json:"table,omitempty"`
}

// NewDocument creates a new document with the current version.
func NewDocument() *Document {
	return &Document{
		Version: "1.0",
		Content: make([]Block, 0),
	}
}

// AddHeading adds a heading block to the document.
func (d *Document) AddHeading(h *Heading) {
	d.Content = append(d.Content, Block{
		Type:    BlockTypeHeading,
		Heading: h,
	})
}

// AddParagraph adds a paragraph block to the document.
func (d *Document) AddParagraph(p *Paragraph) {
	d.Content = append(d.Content, Block{
		Type:      BlockTypeParagraph,
		Paragraph: p,
	})
}

// AddList adds a list block to the document.
func (d *Document) AddList(l *ListBlock) {
	d.Content = append(d.Content, Block{
		Type: BlockTypeList,
		List: l,
	})
}

// AddTable adds a table block to the document.
func (d *Document) AddTable(t *TableBlock) {
	d.Content = append(d.Content, Block{
		Type:  BlockTypeTable,
		Table: t,
	})
}

// AddSpacer adds a blank-line spacer to the document.
func (d *Document) AddSpacer() {
	d.Content = append(d.Content, Block{Type: BlockTypeSpacer})
}

// Last returns the most recently added block, or nil.
func (d *Document) Last() *Block {
	if len(d.Content) == 0 {
		return nil
	}
	return &d.Content[len(d.Content)-1]
}

// PlainText concatenates the text of every block with structural markers
// removed. Blocks are separated by a newline, table cells by a space.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for i, block := range d.Content {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch block.Type {
		case BlockTypeHeading:
			sb.WriteString(SpansText(block.Heading.Spans))
		case BlockTypeParagraph:
			sb.WriteString(SpansText(block.Paragraph.Spans))
		case BlockTypeList:
			for j, item := range block.List.Items {
				if j > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(SpansText(item.Spans))
			}
		case BlockTypeTable:
			for j, row := range block.Table.Cells {
				if j > 0 {
					sb.WriteString("\n")
				}
				for k, cell := range row {
					if k > 0 {
						sb.WriteString(" ")
					}
					sb.WriteString(cell.Text)
				}
			}
		}
	}
	return sb.String()
}
