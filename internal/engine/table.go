package engine

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"goTableDB/internal/logging"
	"goTableDB/internal/sql"
	"goTableDB/internal/storage"
	"goTableDB/internal/storage/memstore"
	"goTableDB/internal/storage/strpool"
)

// Table is an in-memory table holding rows in encoded form.
//
// A Table is not safe for concurrent use. Tables that should share string
// ids must be created with the same *strpool.Pool.
type Table struct {
	name     string
	cols     []sql.Column
	colIndex map[string]int

	store    storage.RowStore
	autoInc  []float64 // one counter per column, used for AutoIncrease columns
	siblings map[string]*Table

	pool      *strpool.Pool
	logger    zerolog.Logger
	collation language.Tag
}

// TableOption configures a Table at construction.
type TableOption func(*Table)

// WithLogger sets the logger used for "log and continue" events.
func WithLogger(l zerolog.Logger) TableOption {
	return func(t *Table) {
		t.logger = l
	}
}

// WithCollation sets the language used to order strings in sorted queries.
func WithCollation(tag language.Tag) TableOption {
	return func(t *Table) {
		t.collation = tag
	}
}

// ColumnInfo is the introspection view of one column.
type ColumnInfo struct {
	Type         string `json:"type" yaml:"type"`
	AutoIncrease bool   `json:"autoIncrease,omitempty" yaml:"autoIncrease,omitempty"`
}

// NewTable creates an empty table. Column order fixes the storage layout.
// Columns without a name, or repeating an earlier name, are logged and
// skipped. A nil pool gives the table a private pool.
func NewTable(name string, columns []sql.Column, pool *strpool.Pool, opts ...TableOption) *Table {
	t := &Table{
		name:      name,
		colIndex:  make(map[string]int, len(columns)),
		siblings:  make(map[string]*Table),
		pool:      pool,
		logger:    logging.Default(),
		collation: language.Und,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With().Str("table", name).Logger()

	if t.pool == nil {
		t.logger.Warn().Msg("no string pool given, table gets a private pool")
		t.pool = strpool.New()
	}

	for i, col := range columns {
		if col.Name == "" {
			t.logger.Error().Int("position", i).Msg("column has no name, skipped")
			continue
		}
		if _, dup := t.colIndex[col.Name]; dup {
			t.logger.Error().Str("column", col.Name).Msg("duplicate column name, skipped")
			continue
		}
		if col.AutoIncrease && col.Type != sql.TypeNumber {
			t.logger.Warn().Str("column", col.Name).Stringer("type", col.Type).
				Msg("autoIncrease is only valid on Number columns, ignored")
			col.AutoIncrease = false
		}
		t.colIndex[col.Name] = len(t.cols)
		t.cols = append(t.cols, col)
	}

	t.autoInc = make([]float64, len(t.cols))
	t.store = memstore.New(len(t.cols))
	return t
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the column names in storage order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// RowCount returns the number of rows currently stored.
func (t *Table) RowCount() int {
	return t.store.Len()
}

// Schema describes every column by name.
func (t *Table) Schema() map[string]ColumnInfo {
	out := make(map[string]ColumnInfo, len(t.cols))
	for _, c := range t.cols {
		out[c.Name] = ColumnInfo{Type: c.Type.String(), AutoIncrease: c.AutoIncrease}
	}
	return out
}

// Connect registers tables usable as join targets. The table itself is
// skipped.
func (t *Table) Connect(tables ...*Table) {
	for _, other := range tables {
		if other == nil || other.name == t.name {
			continue
		}
		t.siblings[other.name] = other
	}
}

// encode converts a non-null value into its slot. The value type must match
// the column type.
func (t *Table) encode(col sql.Column, v sql.Value) storage.Slot {
	switch col.Type {
	case sql.TypeString:
		return storage.Set(float64(t.pool.Intern(v.Str)))
	case sql.TypeDatetime:
		return storage.Set(float64(v.Time.UnixMilli()))
	default:
		return storage.Set(v.Num)
	}
}

// decode converts the slot of column idx back into a value.
func (t *Table) decode(idx int, s storage.Slot) sql.Value {
	if !s.Valid {
		return sql.Null()
	}
	switch t.cols[idx].Type {
	case sql.TypeString:
		str, ok := t.pool.Resolve(uint64(s.Num))
		if !ok {
			return sql.Null()
		}
		return sql.String(str)
	case sql.TypeDatetime:
		return sql.Value{Type: sql.TypeDatetime, Time: time.UnixMilli(int64(s.Num)).UTC()}
	default:
		return sql.Number(s.Num)
	}
}

// stored returns v at the precision col keeps it, so it compares equal to
// its own decoded slot.
func stored(col sql.Column, v sql.Value) sql.Value {
	if col.Type == sql.TypeDatetime && v.Type == sql.TypeDatetime && !v.Null {
		return sql.Datetime(v.Time)
	}
	return v
}

// bumpAutoInc raises the counter of column idx to at least n.
func (t *Table) bumpAutoInc(idx int, n float64) {
	if t.cols[idx].AutoIncrease && n > t.autoInc[idx] {
		t.autoInc[idx] = n
	}
}

// releaseStrings drops the pool references held by row.
func (t *Table) releaseStrings(row storage.EncodedRow) {
	for idx, col := range t.cols {
		if col.Type == sql.TypeString && row[idx].Valid {
			t.pool.Release(uint64(row[idx].Num))
		}
	}
}

// hydrate decodes the picked columns of row; a nil pick means all columns.
func (t *Table) hydrate(row storage.EncodedRow, pick map[string]bool) sql.Row {
	out := make(sql.Row, len(t.cols))
	for idx, col := range t.cols {
		if pick != nil && !pick[col.Name] {
			continue
		}
		out[col.Name] = t.decode(idx, row[idx])
	}
	return out
}

// typeMatches reports whether a non-null value can be stored in col,
// logging when it cannot.
func (t *Table) typeMatches(col sql.Column, v sql.Value) bool {
	if v.Type == col.Type {
		return true
	}
	t.logger.Warn().Str("column", col.Name).
		Stringer("want", col.Type).Stringer("got", v.Type).
		Msg("value type does not match column, ignored")
	return false
}
