package reports

import (
	"html"
	"html/template"
	"strings"

	"foodcpi/internal/models"
)

// TableRenderer turns a PriceTable into HTML tables
type TableRenderer struct{}

// NewTableRenderer creates a table renderer
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

// Render returns a static table, or the no-data placeholder
func (r *TableRenderer) Render(table *models.PriceTable) template.HTML {
	return r.render(table, "cpi-table")
}

// RenderGrid returns a scrollable, sortable data grid
func (r *TableRenderer) RenderGrid(table *models.PriceTable) template.HTML {
	return r.render(table, "cpi-table data-grid")
}

func (r *TableRenderer) render(table *models.PriceTable, class string) template.HTML {
	if table.Empty() {
		return NoDataHTML()
	}

	var buf strings.Builder
	buf.WriteString(`<div class="table-wrap"><table class="`)
	buf.WriteString(class)
	buf.WriteString(`"><thead><tr>`)
	buf.WriteString(`<th>` + html.EscapeString(table.DateColumn) + `</th>`)
	for _, c := range table.Columns {
		buf.WriteString(`<th>` + html.EscapeString(c) + `</th>`)
	}
	buf.WriteString(`</tr></thead><tbody>`)

	for _, rec := range table.Records {
		buf.WriteString(`<tr><td>` + html.EscapeString(rec.Date) + `</td>`)
		for _, c := range table.Columns {
			buf.WriteString(`<td class="num">` + models.FormatValue(rec.Values[c]) + `</td>`)
		}
		buf.WriteString(`</tr>`)
	}

	buf.WriteString(`</tbody></table></div>`)
	return template.HTML(buf.String())
}

// NoDataHTML is the placeholder shown in place of a table or chart
func NoDataHTML() template.HTML {
	return template.HTML(`<p class="no-data">` + models.NoDataMessage + `</p>`)
}
