// Package fixture loads YAML descriptions of tables, rows and declarative
// queries, builds them into an engine.Database and runs the queries.
//
// A fixture looks like:
//
//	name: shop
//	tables:
//	  - name: users
//	    columns:
//	      - {name: id, type: number, autoIncrease: true}
//	      - {name: username, type: string}
//	    rows:
//	      - {username: Alice}
//	queries:
//	  - name: everyone
//	    from: users
//	    orderBy: username
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTable is returned when a query or join names a table the
	// fixture does not define.
	ErrUnknownTable = errors.New("unknown table")

	// ErrBadValue is returned when a YAML value cannot be converted to its
	// column type.
	ErrBadValue = errors.New("bad value")
)

// Fixture is the root of a fixture file.
type Fixture struct {
	Name    string     `yaml:"name"`
	Tables  []TableDef `yaml:"tables" validate:"required,unique=Name,dive"`
	Queries []QueryDef `yaml:"queries" validate:"unique=Name,dive"`
}

// TableDef declares one table and its initial content.
type TableDef struct {
	Name    string           `yaml:"name" validate:"required"`
	Columns []ColumnDef      `yaml:"columns" validate:"required,dive"`
	Rows    []map[string]any `yaml:"rows"`
	Upserts *UpsertDef       `yaml:"upserts,omitempty"`
}

// ColumnDef declares one column. A missing name is allowed here: the engine
// logs and skips such columns.
type ColumnDef struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type" validate:"oneof=number string datetime"`
	AutoIncrease bool   `yaml:"autoIncrease"`
}

// UpsertDef is a batch applied with InsertOnConflict after Rows.
type UpsertDef struct {
	ConflictKey  string           `yaml:"conflictKey" validate:"required"`
	SkipRejected bool             `yaml:"skipRejected"`
	Rows         []map[string]any `yaml:"rows"`
}

// QueryDef is a declarative query against one table.
type QueryDef struct {
	Name     string      `yaml:"name" validate:"required"`
	From     string      `yaml:"from" validate:"required"`
	Where    []Condition `yaml:"where" validate:"dive"`
	Columns  []string    `yaml:"columns"`
	Distinct []string    `yaml:"distinct"`
	Join     []JoinDef   `yaml:"join" validate:"dive"`
	OrderBy  string      `yaml:"orderBy"`
	Desc     bool        `yaml:"desc"`
	Limit    int         `yaml:"limit" validate:"gte=0"`
}

// Condition compares one column with a literal. Conditions of a query are
// ANDed.
type Condition struct {
	Column string `yaml:"column" validate:"required"`
	Op     string `yaml:"op" validate:"oneof=eq ne lt le gt ge null notnull"`
	Value  any    `yaml:"value"`
}

// JoinDef joins on equality of one column from each side.
type JoinDef struct {
	Table   string   `yaml:"table" validate:"required"`
	On      JoinOn   `yaml:"on"`
	Columns []string `yaml:"columns"`
}

// JoinOn names the compared columns: Left in the queried table, Right in the
// joined one.
type JoinOn struct {
	Left  string `yaml:"left" validate:"required"`
	Right string `yaml:"right" validate:"required"`
}

// Load reads and validates a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates fixture YAML. Unknown fields are rejected.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &f, nil
}
