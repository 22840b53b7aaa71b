package memstore

import (
	"fmt"

	"goTableDB/internal/storage"
)

// rowStore is a dense slice of encoded rows. Deletes compact the slice, so
// there are never holes between rows.
type rowStore struct {
	width int
	rows  []storage.EncodedRow
}

// New creates an empty in-memory row store for rows of the given width
// (number of columns).
func New(width int) storage.RowStore {
	return &rowStore{
		width: width,
		rows:  make([]storage.EncodedRow, 0),
	}
}

// Append adds a row. Rows of the wrong width indicate a programming error
// in the caller, not bad user data, so this panics.
func (s *rowStore) Append(row storage.EncodedRow) {
	if len(row) != s.width {
		panic(fmt.Sprintf("memstore: row width mismatch: expected %d, got %d", s.width, len(row)))
	}
	s.rows = append(s.rows, row)
}

func (s *rowStore) Len() int {
	return len(s.rows)
}

func (s *rowStore) Row(i int) storage.EncodedRow {
	return s.rows[i]
}

// Compact keeps rows in place, reusing the backing array.
func (s *rowStore) Compact(keep func(i int, row storage.EncodedRow) bool) int {
	kept := s.rows[:0]
	removed := 0
	for i, r := range s.rows {
		if keep(i, r) {
			kept = append(kept, r)
			continue
		}
		removed++
	}

	// drop references held past the new end
	for i := len(kept); i < len(s.rows); i++ {
		s.rows[i] = nil
	}
	s.rows = kept
	return removed
}
