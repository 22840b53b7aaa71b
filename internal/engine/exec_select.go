package engine

import (
	"goTableDB/internal/sql"
	"goTableDB/internal/storage"
)

// Direction is the sort order of a query.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Select names one projected column. Distinct drops rows whose value in this
// column was already emitted; null values are never dropped.
type Select struct {
	Name     string
	Distinct bool
}

// Join describes a nested-loop inner join against a connected table.
type Join struct {
	// Table is the name of a table registered with Connect.
	Table string

	// Columns picks the joined table's columns; nil means all of them.
	Columns []string

	// On receives the current row of the queried table and a candidate row
	// of the joined table. Nil joins every pair.
	On func(left, right *RowAccessor) bool
}

// QueryOptions configures Query. The zero value returns every row with all
// columns in storage order.
type QueryOptions struct {
	// Limit caps the number of results; 0 or less means no cap.
	Limit int

	// Where filters rows of the queried table.
	Where func(row *RowAccessor) bool

	// OrderBy sorts results by a column of the queried table. It is
	// ignored unless the column is part of the projection.
	OrderBy        string
	OrderDirection Direction

	Join []Join

	// Columns is the projection; nil means all columns.
	Columns []Select
}

type boundJoin struct {
	Join
	table *Table
	pick  map[string]bool
}

// Query runs the filter, distinct, projection, join, limit and sort pipeline
// and returns the hydrated results.
func (t *Table) Query(opts QueryOptions) []sql.Row {
	var pick map[string]bool
	if opts.Columns != nil {
		names := make([]string, len(opts.Columns))
		for i, c := range opts.Columns {
			names[i] = c.Name
		}
		pick = t.pickColumns(names)
	}

	distinct := t.distinctColumns(opts.Columns)
	seen := make([]map[storage.Slot]struct{}, len(distinct))
	for i := range seen {
		seen[i] = make(map[storage.Slot]struct{})
	}

	joins := t.bindJoins(opts.Join)
	limited := func(n int) bool {
		return opts.Limit > 0 && n >= opts.Limit
	}

	var results []sql.Row
	acc := t.newAccessor()
	for i := 0; i < t.store.Len(); i++ {
		if limited(len(results)) {
			break
		}

		row := t.store.Row(i)
		acc.bind(row)
		if opts.Where != nil && !opts.Where(acc) {
			continue
		}
		if !markDistinct(row, distinct, seen) {
			continue
		}

		combined := []sql.Row{t.hydrate(row, pick)}
		for _, j := range joins {
			combined = j.expand(acc, combined)
			if len(combined) == 0 {
				break
			}
		}

		for _, r := range combined {
			if limited(len(results)) {
				break
			}
			results = append(results, r)
		}
	}

	if t.sortable(opts.OrderBy, pick) {
		t.sortRows(results, opts.OrderBy, opts.OrderDirection == Desc)
	}
	return results
}

// distinctColumns returns the storage indexes of the real columns flagged
// distinct, without repeats.
func (t *Table) distinctColumns(cols []Select) []int {
	var out []int
	used := make(map[int]bool)
	for _, c := range cols {
		if !c.Distinct {
			continue
		}
		idx, ok := t.colIndex[c.Name]
		if !ok || used[idx] {
			continue
		}
		used[idx] = true
		out = append(out, idx)
	}
	return out
}

// markDistinct reports whether row brings a new encoded value in every
// distinct column and, if so, records those values. Null slots take no part,
// so rows holding null in a distinct column are never dropped for it.
func markDistinct(row storage.EncodedRow, distinct []int, seen []map[storage.Slot]struct{}) bool {
	for i, idx := range distinct {
		if !row[idx].Valid {
			continue
		}
		if _, dup := seen[i][row[idx]]; dup {
			return false
		}
	}
	for i, idx := range distinct {
		if row[idx].Valid {
			seen[i][row[idx]] = struct{}{}
		}
	}
	return true
}

// bindJoins resolves join targets once per query. Unknown tables are logged
// and left out.
func (t *Table) bindJoins(joins []Join) []boundJoin {
	out := make([]boundJoin, 0, len(joins))
	for _, j := range joins {
		target, ok := t.siblings[j.Table]
		if !ok {
			t.logger.Error().Str("join", j.Table).Msg("table not found for join, skipped")
			continue
		}
		out = append(out, boundJoin{Join: j, table: target, pick: target.pickColumns(j.Columns)})
	}
	return out
}

// expand joins every combined row against the target table. Emission is
// right-major: for each accepted right row, every left row in order.
func (j boundJoin) expand(left *RowAccessor, combined []sql.Row) []sql.Row {
	var next []sql.Row
	right := j.table.newAccessor()
	for k := 0; k < j.table.store.Len(); k++ {
		row := j.table.store.Row(k)
		right.bind(row)
		if j.On != nil && !j.On(left, right) {
			continue
		}

		data := j.table.hydrate(row, j.pick)
		for _, existing := range combined {
			merged := existing.Clone()
			for name, v := range data {
				merged[name] = v
			}
			next = append(next, merged)
		}
	}
	return next
}

func (t *Table) sortable(orderBy string, pick map[string]bool) bool {
	if orderBy == "" {
		return false
	}
	if _, ok := t.colIndex[orderBy]; !ok {
		return false
	}
	return pick == nil || pick[orderBy]
}
