package engine

import (
	"goTableDB/internal/sql"
	"goTableDB/internal/storage"
)

// Conflict configures InsertOnConflict.
type Conflict struct {
	// Key is the column matched against existing rows.
	Key string

	// OnConflict decides whether an existing row with an equal key is
	// updated with payload. Nil accepts every match.
	OnConflict func(payload sql.Row, existing *RowAccessor) bool

	// OnUpdateMap, if set, reshapes payload before it is applied to the
	// matched row.
	OnUpdateMap func(payload sql.Row, existing *RowAccessor) sql.Row

	// SkipRejected drops rows whose key matched an existing row that
	// OnConflict rejected, instead of inserting them.
	SkipRejected bool
}

// Insert stores rows and returns their hydrated form, in order.
//
// Missing or null values become null, except on AutoIncrease columns where
// the next counter value is generated. A value whose type does not match
// its column is logged and treated as missing.
func (t *Table) Insert(rows ...sql.Row) []sql.Row {
	out := make([]sql.Row, 0, len(rows))
	for _, in := range rows {
		out = append(out, t.insertRow(in))
	}
	return out
}

func (t *Table) insertRow(in sql.Row) sql.Row {
	raw := make(storage.EncodedRow, len(t.cols))
	hydrated := make(sql.Row, len(t.cols))

	for idx, col := range t.cols {
		v, present := in[col.Name]
		if present && !v.Null && !t.typeMatches(col, v) {
			present = false
		}

		if !present || v.Null {
			if col.AutoIncrease {
				t.autoInc[idx]++
				raw[idx] = storage.Set(t.autoInc[idx])
				hydrated[col.Name] = sql.Number(t.autoInc[idx])
				continue
			}
			raw[idx] = storage.NullSlot
			hydrated[col.Name] = sql.Null()
			continue
		}

		raw[idx] = t.encode(col, v)
		switch col.Type {
		case sql.TypeNumber:
			t.bumpAutoInc(idx, v.Num)
			hydrated[col.Name] = v
		case sql.TypeDatetime:
			hydrated[col.Name] = t.decode(idx, raw[idx])
		default:
			hydrated[col.Name] = v
		}
	}

	for name := range in {
		if _, ok := t.colIndex[name]; !ok {
			t.logger.Debug().Str("column", name).Msg("insert: unknown column ignored")
		}
	}

	t.store.Append(raw)
	return hydrated
}

// InsertOnConflict inserts rows, updating existing rows instead when their
// c.Key value equals the incoming one (upsert).
//
// Rows carrying a non-null key are first offered to the update path: each
// updates at most one existing row whose key is non-null, equal, and
// accepted by c.OnConflict. The remaining rows are inserted. The result
// lists updated rows in scan order followed by inserted rows in input order.
func (t *Table) InsertOnConflict(rows []sql.Row, c Conflict) []sql.Row {
	if c.Key == "" {
		return t.Insert(rows...)
	}
	if _, ok := t.colIndex[c.Key]; !ok {
		t.logger.Warn().Str("column", c.Key).Msg("conflict key is not a column, plain insert")
		return t.Insert(rows...)
	}

	// Partition: rows with a usable key are update candidates.
	keyCol := t.cols[t.colIndex[c.Key]]
	var candidates []sql.Row
	var candidateKeys []sql.Value
	var candidatePos []int
	isCandidate := make([]bool, len(rows))
	for i, r := range rows {
		if v, ok := r[c.Key]; ok && !v.Null {
			candidates = append(candidates, r)
			candidateKeys = append(candidateKeys, stored(keyCol, v))
			candidatePos = append(candidatePos, i)
			isCandidate[i] = true
		}
	}

	keyHit := make([]bool, len(candidates))
	updated, consumed := t.applyPayloads(candidates, func(i int, payload sql.Row, existing *RowAccessor) bool {
		cur := existing.Get(c.Key)
		if cur.Null || !cur.Equal(candidateKeys[i]) {
			return false
		}
		keyHit[i] = true
		return c.OnConflict == nil || c.OnConflict(payload, existing)
	}, c.OnUpdateMap)

	drop := make([]bool, len(rows))
	for i, pos := range candidatePos {
		if consumed[i] || (c.SkipRejected && keyHit[i]) {
			drop[pos] = true
		}
	}

	out := updated
	for i, r := range rows {
		if isCandidate[i] && drop[i] {
			continue
		}
		out = append(out, t.insertRow(r))
	}
	return out
}
