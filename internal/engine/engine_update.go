package engine

import (
	"goTableDB/internal/sql"
	"goTableDB/internal/storage"
)

// applyFields writes payload into row in place, keeping string references
// and auto-increment counters consistent.
func (t *Table) applyFields(row storage.EncodedRow, payload sql.Row) {
	for idx, col := range t.cols {
		v, ok := payload[col.Name]
		if !ok {
			continue
		}
		old := row[idx]

		if v.Null {
			if col.Type == sql.TypeString && old.Valid {
				t.pool.Release(uint64(old.Num))
			}
			row[idx] = storage.NullSlot
			continue
		}
		if !t.typeMatches(col, v) {
			continue
		}

		switch col.Type {
		case sql.TypeString:
			if old.Valid {
				// unchanged strings keep their id and refcount
				if cur, found := t.pool.Resolve(uint64(old.Num)); found && cur == v.Str {
					continue
				}
				t.pool.Release(uint64(old.Num))
			}
			row[idx] = t.encode(col, v)
		case sql.TypeDatetime:
			row[idx] = t.encode(col, v)
		default:
			row[idx] = t.encode(col, v)
			t.bumpAutoInc(idx, v.Num)
		}
	}

	for name := range payload {
		if _, ok := t.colIndex[name]; !ok {
			t.logger.Debug().Str("column", name).Msg("update: unknown column ignored")
		}
	}
}
