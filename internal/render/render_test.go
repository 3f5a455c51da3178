package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/eventdesk/internal/ir"
	"github.com/roboco-io/eventdesk/internal/parser/markdown"
	"github.com/roboco-io/eventdesk/internal/table"
)

const planReply = "## Plan\n\n- book **venue**\n- send invites\n\nName|Seats\n---|---\nHall A|120"

func TestMarkdown(t *testing.T) {
	doc := markdown.Parse(planReply)
	want := "## Plan\n\n- book **venue**\n- send invites\n\n| Name | Seats |\n| --- | --- |\n| Hall A | 120 |\n"
	assert.Equal(t, want, Markdown(doc))
}

func TestMarkdown_ReparsesToSameBlocks(t *testing.T) {
	inputs := []string{
		planReply,
		"first line\nsecond line",
		"a\n\n",
		"3. three\n4. **four**",
		"- venue booked\n  for **June**\n- catering",
		"| Event | Date |\n| --- | --- |\n| Expo | 2024-05-01 |\nDone.",
		"# One\n## Two\n### Three",
		"open **bold and **closed**",
	}

	for _, input := range inputs {
		first := markdown.Parse(input)
		again := markdown.Parse(Markdown(first))
		assert.Equal(t, first.Content, again.Content, "input %q", input)
	}
}

func TestCommonMark_SeparatesBlocks(t *testing.T) {
	doc := markdown.Parse("a\nb")
	assert.Equal(t, "a\n\nb\n\n", CommonMark(doc))
}

func TestHTML(t *testing.T) {
	html, err := HTML(markdown.Parse(planReply))
	require.NoError(t, err)

	for _, want := range []string{
		"<h2>Plan</h2>",
		"<li>book <strong>venue</strong></li>",
		"<table>",
		"<th>Name</th>",
		"<td>Hall A</td>",
	} {
		assert.Contains(t, html, want)
	}
}

func TestHTML_ParagraphPerLine(t *testing.T) {
	html, err := HTML(markdown.Parse("a\nb"))
	require.NoError(t, err)
	assert.Equal(t, "<p>a</p>\n<p>b</p>\n", html)
}

func TestTerminal_Render(t *testing.T) {
	var buf bytes.Buffer
	out, err := NewTerminal(&buf, false).Render(markdown.Parse(planReply))
	require.NoError(t, err)

	for _, want := range []string{"Plan", "• book venue", "send invites", "Name", "Hall A", "120"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "**")
}

func TestTerminal_DarkOnlyChangesColours(t *testing.T) {
	doc := markdown.Parse(planReply + "\n\n1. **first**\n2. second")

	var buf bytes.Buffer
	light, err := NewTerminal(&buf, false).Render(doc)
	require.NoError(t, err)
	dark, err := NewTerminal(&buf, true).Render(doc)
	require.NoError(t, err)

	// plain writers get no colour at all, so both must be identical
	assert.Equal(t, light, dark)
	assert.Equal(t, strings.Count(light, "\n"), strings.Count(dark, "\n"))
}

func TestTerminal_OrderedListNumbers(t *testing.T) {
	var buf bytes.Buffer
	out, err := NewTerminal(&buf, false).Render(markdown.Parse("5. five\n6. six"))
	require.NoError(t, err)
	assert.Contains(t, out, "5. five")
	assert.Contains(t, out, "6. six")
}

func TestTerminal_ClampsHeadingLevel(t *testing.T) {
	doc := ir.NewDocument()
	doc.AddHeading(&ir.Heading{Level: 7, Text: "deep"})

	var buf bytes.Buffer
	out, err := NewTerminal(&buf, false).Render(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "deep")
}

func eventPage(t *testing.T) ([]table.Column, *table.Engine, []table.Row) {
	t.Helper()
	cols := []table.Column{
		{Header: "Name", Accessor: "name", Sortable: true},
		{Header: "Seats", Accessor: "seats", Align: table.AlignRight, Sortable: true},
	}
	e, err := table.New(cols, table.Config{PageSize: 2, Sortable: true, Searchable: true})
	require.NoError(t, err)

	rows := []table.Row{
		{"name": table.Text("Expo"), "seats": table.Number(120)},
		{"name": table.Text("Gala"), "seats": table.Number(80)},
		{"name": table.Text("Fair"), "seats": table.Number(45)},
	}
	return cols, e, rows
}

func TestTablePage(t *testing.T) {
	cols, e, rows := eventPage(t)

	var buf bytes.Buffer
	require.NoError(t, TablePage(&buf, cols, e.Derive(rows, e.DefaultState())))

	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Expo")
	assert.Contains(t, out, "120")
	assert.NotContains(t, out, "Fair")
	assert.Contains(t, out, "Showing 1 to 2 of 3 entries (page 1/2)")
}

func TestTableView_SortIndicator(t *testing.T) {
	cols, e, rows := eventPage(t)
	s, err := e.SetSort(e.DefaultState(), "seats")
	require.NoError(t, err)
	s, err = e.SetSort(s, "seats")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, TableView(&buf, cols, e.Derive(rows, s), s))
	assert.Contains(t, buf.String(), "Seats ▼")
	assert.NotContains(t, buf.String(), "Name ▲")
}

func TestTablePage_Empty(t *testing.T) {
	cols, e, _ := eventPage(t)

	var buf bytes.Buffer
	require.NoError(t, TablePage(&buf, cols, e.Derive(nil, e.DefaultState())))
	assert.Contains(t, buf.String(), "Showing 0 to 0 of 0 entries (page 0/0)")
}
