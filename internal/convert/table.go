package convert

import (
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/richtext"
	"github.com/goliatone/go-notion2wp/notion"
)

// Table converts table blocks, whose children are table_row blocks. A row
// reached on its own renders as a bare <tr>.
type Table struct{ base }

func (Table) Supports(block notion.Block) bool {
	return block.Type == notion.TypeTable || block.Type == notion.TypeTableRow
}

func (Table) Convert(_ *Context, block notion.Block) (string, error) {
	if block.Type == notion.TypeTableRow {
		return tableRow(block, false, false), nil
	}

	rows := block.Children
	rowHeader := block.Bool("has_row_header")

	var b strings.Builder
	b.WriteString(`<figure class="wp-block-table"><table>`)
	if block.Bool("has_column_header") && len(rows) > 0 {
		b.WriteString("<thead>" + tableRow(rows[0], true, false) + "</thead>")
		rows = rows[1:]
	}
	if len(rows) > 0 {
		b.WriteString("<tbody>")
		for _, row := range rows {
			b.WriteString(tableRow(row, false, rowHeader))
		}
		b.WriteString("</tbody>")
	}
	b.WriteString("</table></figure>")
	return gutenberg.Block("core/table", b.String(), nil), nil
}

func tableRow(row notion.Block, header, rowHeader bool) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for i, cell := range row.Cells() {
		tag := "td"
		if header || (rowHeader && i == 0) {
			tag = "th"
		}
		b.WriteString("<" + tag + ">" + richtext.Render(cell) + "</" + tag + ">")
	}
	b.WriteString("</tr>")
	return b.String()
}
