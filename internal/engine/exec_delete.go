package engine

import (
	"goTableDB/internal/sql"
	"goTableDB/internal/storage"
)

// DeleteOptions selects the rows removed by Delete.
type DeleteOptions struct {
	// Limit caps the number of deleted rows; 0 or less means no cap.
	Limit int

	// Where selects rows; nil selects every row.
	Where func(row *RowAccessor) bool
}

// Delete removes matching rows, in scan order, and returns their values as
// they were before deletion.
func (t *Table) Delete(opts DeleteOptions) []sql.Row {
	n := t.store.Len()
	if n == 0 {
		return nil
	}

	drop := make([]bool, n)
	var removed []sql.Row
	acc := t.newAccessor()
	for i := 0; i < n; i++ {
		if opts.Limit > 0 && len(removed) >= opts.Limit {
			break
		}
		row := t.store.Row(i)
		acc.bind(row)
		if opts.Where != nil && !opts.Where(acc) {
			continue
		}
		removed = append(removed, t.hydrate(row, nil))
		drop[i] = true
	}
	if len(removed) == 0 {
		return nil
	}

	t.store.Compact(func(i int, row storage.EncodedRow) bool {
		if !drop[i] {
			return true
		}
		t.releaseStrings(row)
		return false
	})
	return removed
}
