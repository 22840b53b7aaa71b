package storage

// Slot is one encoded cell. Numbers are stored verbatim, strings as an
// interned id and datetimes as epoch milliseconds. Valid=false is null,
// whatever the column type.
type Slot struct {
	Num   float64
	Valid bool
}

// NullSlot is the encoding of a missing or null value.
var NullSlot = Slot{}

// Set returns a valid slot holding n.
func Set(n float64) Slot {
	return Slot{Num: n, Valid: true}
}

// EncodedRow is the compact physical form of a row: one slot per column,
// aligned with the table's column order.
type EncodedRow []Slot

// RowStore holds the encoded rows of one table in insertion order.
//
// Different implementations are possible:
//   - dense in-memory slice (memstore)
//   - paged or columnar layouts later
//
// Rows returned by Row alias storage: callers may mutate slots in place
// (this is how updates are applied) but must not retain them across
// Compact.
type RowStore interface {
	// Append adds a row at the end of the store.
	Append(row EncodedRow)

	// Len returns the number of stored rows.
	Len() int

	// Row returns the row at position i (0 <= i < Len()).
	Row(i int) EncodedRow

	// Compact removes every row for which keep returns false, preserving
	// the relative order of the rest. It returns the number of rows removed.
	Compact(keep func(i int, row EncodedRow) bool) int
}
