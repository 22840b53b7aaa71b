package engine

import (
	"github.com/rs/zerolog"

	"goTableDB/internal/logging"
)

// Database is a named registry of tables. Creating it connects every table
// to every other one so they can be joined.
type Database struct {
	name   string
	tables map[string]*Table
	order  []string
	logger zerolog.Logger
}

// DatabaseOption configures a Database at construction.
type DatabaseOption func(*Database)

// WithDatabaseLogger sets the logger used for registry events.
func WithDatabaseLogger(l zerolog.Logger) DatabaseOption {
	return func(db *Database) {
		db.logger = l
	}
}

// NewDatabase registers tables by name. A later table with an already
// registered name replaces the earlier one.
func NewDatabase(name string, tables []*Table, opts ...DatabaseOption) *Database {
	db := &Database{
		name:   name,
		tables: make(map[string]*Table, len(tables)),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	db.logger = db.logger.With().Str("database", name).Logger()

	for _, t := range tables {
		if t == nil {
			continue
		}
		if _, dup := db.tables[t.name]; dup {
			db.logger.Warn().Str("table", t.name).Msg("duplicate table name, replacing earlier table")
		} else {
			db.order = append(db.order, t.name)
		}
		db.tables[t.name] = t
	}

	registered := make([]*Table, 0, len(db.order))
	for _, n := range db.order {
		registered = append(registered, db.tables[n])
	}
	for _, t := range registered {
		t.Connect(registered...)
	}
	return db
}

// Name returns the database name.
func (db *Database) Name() string {
	return db.name
}

// TableNames returns table names in registration order.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// Table returns the table registered under name.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}
