package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/eventdesk/internal/ir"
)

func blockTypes(doc *ir.Document) []ir.BlockType {
	types := make([]ir.BlockType, 0, len(doc.Content))
	for _, b := range doc.Content {
		types = append(types, b.Type)
	}
	return types
}

func TestParse_HeadingPrecedence(t *testing.T) {
	tests := []struct {
		input string
		level int
	}{
		{"### Title", 3},
		{"## Title", 2},
		{"# Title", 1},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			doc := Parse(tc.input)
			require.Len(t, doc.Content, 1)
			block := doc.Content[0]
			require.Equal(t, ir.BlockTypeHeading, block.Type)
			assert.Equal(t, tc.level, block.Heading.Level)
			assert.Equal(t, "Title", ir.SpansText(block.Heading.Spans))
		})
	}
}

func TestParse_HeadingWithoutSpaceIsParagraph(t *testing.T) {
	doc := Parse("####Title")
	require.Len(t, doc.Content, 1)
	assert.Equal(t, ir.BlockTypeParagraph, doc.Content[0].Type)
}

func TestParse_ListGrouping(t *testing.T) {
	doc := Parse("- a\n- b\n- c")
	require.Len(t, doc.Content, 1)

	list := doc.Content[0].List
	require.NotNil(t, list)
	assert.False(t, list.Ordered)
	require.Len(t, list.Items, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, list.Items[i].Text)
		assert.Equal(t, want, ir.SpansText(list.Items[i].Spans))
	}
}

func TestParse_BulletCharacter(t *testing.T) {
	doc := Parse("• first\n• **second**")
	require.Len(t, doc.Content, 1)
	items := doc.Content[0].List.Items
	require.Len(t, items, 2)
	assert.Equal(t, []ir.Span{ir.Bold("second")}, items[1].Spans)
}

func TestParse_OrderedList(t *testing.T) {
	doc := Parse("3. three\n4. four")
	require.Len(t, doc.Content, 1)

	list := doc.Content[0].List
	assert.True(t, list.Ordered)
	assert.Equal(t, 3, list.Start)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "three", list.Items[0].Text)
	assert.Equal(t, "four", list.Items[1].Text)
}

func TestParse_ShortNumberedLineIsParagraph(t *testing.T) {
	doc := Parse("1.")
	require.Len(t, doc.Content, 1)
	assert.Equal(t, ir.BlockTypeParagraph, doc.Content[0].Type)
}

func TestParse_ListContinuation(t *testing.T) {
	doc := Parse("- venue booked\n  for **June**\n- catering")
	require.Len(t, doc.Content, 1)

	items := doc.Content[0].List.Items
	require.Len(t, items, 2)
	assert.Equal(t, "venue booked for **June**", items[0].Text)
	assert.Equal(t, []ir.Span{ir.Plain("venue booked for "), ir.Bold("June")}, items[0].Spans)
}

func TestParse_BlankLineClosesList(t *testing.T) {
	doc := Parse("- a\n\n- b")
	assert.Equal(t, []ir.BlockType{ir.BlockTypeList, ir.BlockTypeSpacer, ir.BlockTypeList}, blockTypes(doc))
}

func TestParse_HeadingClosesList(t *testing.T) {
	doc := Parse("- a\n## Next")
	assert.Equal(t, []ir.BlockType{ir.BlockTypeList, ir.BlockTypeHeading}, blockTypes(doc))
}

func TestParse_TableExtraction(t *testing.T) {
	doc := Parse("a|b\n---|---\n1|2")
	require.Len(t, doc.Content, 1)

	table := doc.Content[0].Table
	require.NotNil(t, table)
	assert.True(t, table.HasHeader)
	assert.Equal(t, 0, table.HeaderRow)
	assert.Equal(t, []string{"a", "b"}, table.Header())
	assert.Equal(t, [][]string{{"1", "2"}}, table.DataRows())
}

func TestParse_PipeTableWithBorders(t *testing.T) {
	input := "| Event | Date |\n| --- | --- |\n| Expo | 2024-05-01 |\n|  |  |\n| Gala | 2024-06-12 |\nDone."
	doc := Parse(input)
	require.Equal(t, []ir.BlockType{ir.BlockTypeTable, ir.BlockTypeParagraph}, blockTypes(doc))

	table := doc.Content[0].Table
	assert.Equal(t, []string{"Event", "Date"}, table.Header())
	assert.Equal(t, [][]string{{"Expo", "2024-05-01"}, {"Gala", "2024-06-12"}}, table.DataRows())
	assert.Equal(t, "Done.", doc.Content[1].Paragraph.Text)
}

func TestParse_TableClosesOpenList(t *testing.T) {
	doc := Parse("- a\nx|y")
	assert.Equal(t, []ir.BlockType{ir.BlockTypeList, ir.BlockTypeTable}, blockTypes(doc))
}

func TestParse_TableThenListLine(t *testing.T) {
	doc := Parse("x|y\n- a")
	assert.Equal(t, []ir.BlockType{ir.BlockTypeTable, ir.BlockTypeList}, blockTypes(doc))
}

func TestParse_ParagraphPerLine(t *testing.T) {
	doc := Parse("first line\nsecond line")
	require.Equal(t, []ir.BlockType{ir.BlockTypeParagraph, ir.BlockTypeParagraph}, blockTypes(doc))
	assert.Equal(t, "first line", doc.Content[0].Paragraph.Text)
	assert.Equal(t, "second line", doc.Content[1].Paragraph.Text)
}

func TestParse_Spacers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ir.BlockType
	}{
		{
			name:  "leading blank line emits nothing",
			input: "\nhello",
			want:  []ir.BlockType{ir.BlockTypeParagraph},
		},
		{
			name:  "blank between paragraphs",
			input: "a\n\nb",
			want:  []ir.BlockType{ir.BlockTypeParagraph, ir.BlockTypeSpacer, ir.BlockTypeParagraph},
		},
		{
			name:  "blank runs collapse to one spacer",
			input: "a\n\n\n\n\nb",
			want:  []ir.BlockType{ir.BlockTypeParagraph, ir.BlockTypeSpacer, ir.BlockTypeParagraph},
		},
		{
			name:  "whitespace-only lines do not stack spacers",
			input: "a\n\n   \n\nb",
			want:  []ir.BlockType{ir.BlockTypeParagraph, ir.BlockTypeSpacer, ir.BlockTypeParagraph},
		},
		{
			name:  "trailing newline is not a spacer",
			input: "a\n",
			want:  []ir.BlockType{ir.BlockTypeParagraph},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, blockTypes(Parse(tc.input)))
		})
	}
}

func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"",
		"**",
		"**unclosed",
		"|",
		"||||",
		"| | |\n|---|",
		"12345",
		"1.",
		"---",
		"#",
		"### ",
		"\n\n\n",
		"- ",
		"•",
		"\r\n\r\n",
		strings.Repeat("*", 101),
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() {
			doc := Parse(input)
			require.NotNil(t, doc)
			require.NotNil(t, doc.Content)
		}, "input %q", input)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse("").Content)
	assert.Empty(t, Parse("|||").Content)
}

func TestParse_ContentPreserved(t *testing.T) {
	input := "## Plan\n\n- book **venue**\n- send invites\n\nName|Seats\n---|---\nHall A|120"
	doc := Parse(input)

	plain := doc.PlainText()
	for _, want := range []string{"Plan", "book venue", "send invites", "Name Seats", "Hall A 120"} {
		assert.Contains(t, plain, want)
	}
	assert.NotContains(t, plain, "**")
}

func TestParser_ImplementsInterface(t *testing.T) {
	p := New()
	doc := p.Parse("# Hi")
	require.Len(t, doc.Content, 1)
	assert.Equal(t, ir.BlockTypeHeading, doc.Content[0].Type)
}
