package engine

import "goTableDB/internal/sql"

// Update applies payloads to stored rows and returns the post-update state
// of every changed row, in scan order.
//
// Rows are scanned in storage order. For each row the first payload (in
// argument order) not yet used and accepted by where is applied, after
// being reshaped by mapFn when mapFn is non-nil. Each payload updates at
// most one row; scanning stops once every payload is used. A nil where
// accepts any row.
//
// Only keys present in a payload are written; a key holding sql.Null()
// clears the column.
func (t *Table) Update(
	payloads []sql.Row,
	where func(payload sql.Row, row *RowAccessor) bool,
	mapFn func(payload sql.Row, row *RowAccessor) sql.Row,
) []sql.Row {
	changed, _ := t.applyPayloads(payloads, func(_ int, p sql.Row, row *RowAccessor) bool {
		return where == nil || where(p, row)
	}, mapFn)
	return changed
}

// applyPayloads is the matching loop shared by Update and InsertOnConflict.
// consumed[i] reports whether payloads[i] was applied to some row.
func (t *Table) applyPayloads(
	payloads []sql.Row,
	match func(i int, payload sql.Row, row *RowAccessor) bool,
	mapFn func(payload sql.Row, row *RowAccessor) sql.Row,
) (changed []sql.Row, consumed []bool) {
	consumed = make([]bool, len(payloads))
	pending := len(payloads)
	if pending == 0 {
		return nil, consumed
	}

	acc := t.newAccessor()
	for r := 0; r < t.store.Len() && pending > 0; r++ {
		row := t.store.Row(r)
		acc.bind(row)

		for i, payload := range payloads {
			if consumed[i] || !match(i, payload, acc) {
				continue
			}

			if mapFn != nil {
				payload = mapFn(payload, acc)
			}
			t.applyFields(row, payload)

			consumed[i] = true
			pending--
			changed = append(changed, t.hydrate(row, nil))
			break
		}
	}
	return changed, consumed
}
