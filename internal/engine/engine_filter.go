package engine

import (
	"time"

	"goTableDB/internal/sql"
	"goTableDB/internal/storage"
)

// RowAccessor is a read-only view over one stored row. Fields are decoded on
// demand, so predicates only pay for the columns they look at.
//
// An accessor handed to a callback is only valid for the duration of that
// call; the engine rebinds it to the next row afterwards.
type RowAccessor struct {
	t   *Table
	row storage.EncodedRow
}

func (t *Table) newAccessor() *RowAccessor {
	return &RowAccessor{t: t}
}

func (a *RowAccessor) bind(row storage.EncodedRow) {
	a.row = row
}

// Lookup returns the value of column name. ok is false when the table has no
// such column.
func (a *RowAccessor) Lookup(name string) (sql.Value, bool) {
	idx, ok := a.t.colIndex[name]
	if !ok {
		return sql.Null(), false
	}
	return a.t.decode(idx, a.row[idx]), true
}

// Get returns the value of column name, or null when the column is unknown
// or the slot is null.
func (a *RowAccessor) Get(name string) sql.Value {
	v, _ := a.Lookup(name)
	return v
}

// IsNull reports whether column name is null (or unknown).
func (a *RowAccessor) IsNull(name string) bool {
	return a.Get(name).Null
}

// Num returns a Number column. ok is false for null, unknown or non-Number
// columns.
func (a *RowAccessor) Num(name string) (float64, bool) {
	v := a.Get(name)
	if v.Null || v.Type != sql.TypeNumber {
		return 0, false
	}
	return v.Num, true
}

// Str returns a String column. ok is false for null, unknown or non-String
// columns.
func (a *RowAccessor) Str(name string) (string, bool) {
	v := a.Get(name)
	if v.Null || v.Type != sql.TypeString {
		return "", false
	}
	return v.Str, true
}

// Time returns a Datetime column. ok is false for null, unknown or
// non-Datetime columns.
func (a *RowAccessor) Time(name string) (time.Time, bool) {
	v := a.Get(name)
	if v.Null || v.Type != sql.TypeDatetime {
		return time.Time{}, false
	}
	return v.Time, true
}

// Row hydrates every column of the current row.
func (a *RowAccessor) Row() sql.Row {
	return a.t.hydrate(a.row, nil)
}

// pickColumns builds the projection set for names. Names the table does not
// have are dropped. A nil result means "all columns".
func (t *Table) pickColumns(names []string) map[string]bool {
	if names == nil {
		return nil
	}
	pick := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := t.colIndex[n]; ok {
			pick[n] = true
		}
	}
	return pick
}
