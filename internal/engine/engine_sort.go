package engine

import (
	"slices"

	"golang.org/x/text/collate"

	"goTableDB/internal/sql"
)

// sortRows stable-sorts rows by column. Null sorts first ascending and last
// descending; ties keep their emission order. Strings follow the table's
// collation.
func (t *Table) sortRows(rows []sql.Row, column string, desc bool) {
	coll := collate.New(t.collation)
	slices.SortStableFunc(rows, func(a, b sql.Row) int {
		c := sql.Compare(a[column], b[column], coll.CompareString)
		if desc {
			return -c
		}
		return c
	})
}
