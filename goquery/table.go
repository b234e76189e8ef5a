package goquery

import (
	"github.com/PuerkitoBio/goquery"
)

// tableRows returns the rows that belong directly to table, skipping header
// rows made only of th cells. Rows of nested tables are not included.
func tableRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	collect := func(_ int, row *goquery.Selection) {
		cells := rowCells(row)
		if cells.Length() > 0 && cells.Length() == cells.Filter("th").Length() {
			return
		}
		rows = append(rows, row)
	}
	table.ChildrenFiltered("tr").Each(collect)
	table.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr").Each(collect)
	return rows
}

// rowCells returns the td and th cells of a row.
func rowCells(row *goquery.Selection) *goquery.Selection {
	return row.ChildrenFiltered("td, th")
}
