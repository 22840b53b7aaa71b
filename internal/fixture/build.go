package fixture

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"goTableDB/internal/engine"
	"goTableDB/internal/sql"
	"goTableDB/internal/storage/strpool"
)

// Env is a fixture built into live tables.
type Env struct {
	DB   *engine.Database
	Pool *strpool.Pool

	columns   map[string][]sql.Column
	collation language.Tag
}

// Build creates every table on one shared string pool, inserts the rows and
// applies the upsert batches.
func (f *Fixture) Build(logger zerolog.Logger, collation language.Tag) (*Env, error) {
	env := &Env{
		Pool:      strpool.New(),
		columns:   make(map[string][]sql.Column, len(f.Tables)),
		collation: collation,
	}

	tables := make([]*engine.Table, 0, len(f.Tables))
	for _, td := range f.Tables {
		cols := make([]sql.Column, 0, len(td.Columns))
		for _, cd := range td.Columns {
			typ, err := parseType(cd.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", td.Name, err)
			}
			cols = append(cols, sql.Column{Name: cd.Name, Type: typ, AutoIncrease: cd.AutoIncrease})
		}
		env.columns[td.Name] = cols
		tables = append(tables, engine.NewTable(td.Name, cols, env.Pool,
			engine.WithLogger(logger), engine.WithCollation(collation)))
	}
	env.DB = engine.NewDatabase(f.Name, tables, engine.WithDatabaseLogger(logger))

	for _, td := range f.Tables {
		t, _ := env.DB.Table(td.Name)

		rows, err := env.convertRows(td.Name, td.Rows)
		if err != nil {
			return nil, err
		}
		t.Insert(rows...)

		if td.Upserts == nil {
			continue
		}
		upserts, err := env.convertRows(td.Name, td.Upserts.Rows)
		if err != nil {
			return nil, err
		}
		t.InsertOnConflict(upserts, engine.Conflict{
			Key:          td.Upserts.ConflictKey,
			SkipRejected: td.Upserts.SkipRejected,
		})
	}
	return env, nil
}

func parseType(s string) (sql.DataType, error) {
	switch s {
	case "number":
		return sql.TypeNumber, nil
	case "string":
		return sql.TypeString, nil
	case "datetime":
		return sql.TypeDatetime, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", s)
	}
}

func (e *Env) column(table, name string) (sql.Column, bool) {
	for _, c := range e.columns[table] {
		if c.Name == name {
			return c, true
		}
	}
	return sql.Column{}, false
}

func (e *Env) convertRows(table string, raw []map[string]any) ([]sql.Row, error) {
	rows := make([]sql.Row, 0, len(raw))
	for i, r := range raw {
		row := make(sql.Row, len(r))
		for name, v := range r {
			col, ok := e.column(table, name)
			if !ok {
				return nil, fmt.Errorf("table %s row %d: unknown column %q", table, i, name)
			}
			val, err := convert(col.Type, v)
			if err != nil {
				return nil, fmt.Errorf("table %s row %d column %s: %w", table, i, name, err)
			}
			row[name] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// convert turns a decoded YAML scalar into a value of type typ.
func convert(typ sql.DataType, v any) (sql.Value, error) {
	if v == nil {
		return sql.Null(), nil
	}

	switch typ {
	case sql.TypeNumber:
		switch n := v.(type) {
		case int:
			return sql.Number(float64(n)), nil
		case int64:
			return sql.Number(float64(n)), nil
		case uint64:
			return sql.Number(float64(n)), nil
		case float64:
			if math.IsNaN(n) {
				return sql.Value{}, fmt.Errorf("%w: NaN", ErrBadValue)
			}
			return sql.Number(n), nil
		}
	case sql.TypeString:
		if s, ok := v.(string); ok {
			return sql.String(s), nil
		}
	case sql.TypeDatetime:
		switch d := v.(type) {
		case time.Time:
			return sql.Datetime(d), nil
		case string:
			ts, err := time.Parse(time.RFC3339Nano, d)
			if err != nil {
				if ts, err = time.Parse(time.DateOnly, d); err != nil {
					return sql.Value{}, fmt.Errorf("%w: %q is not an RFC 3339 time or date", ErrBadValue, d)
				}
			}
			return sql.Datetime(ts), nil
		}
	}
	return sql.Value{}, fmt.Errorf("%w: %v (%T) for %v column", ErrBadValue, v, v, typ)
}
