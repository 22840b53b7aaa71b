package fixture

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"

	"goTableDB/internal/engine"
	"goTableDB/internal/sql"
)

// Result is the outcome of one named query.
type Result struct {
	Name    string    `json:"name"`
	Columns []string  `json:"columns"`
	Rows    []sql.Row `json:"-"`
}

// Run executes every query of the fixture in file order.
func (e *Env) Run(queries []QueryDef) ([]Result, error) {
	results := make([]Result, 0, len(queries))
	for _, q := range queries {
		res, err := e.RunQuery(q)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunQuery compiles q into engine.QueryOptions and runs it.
func (e *Env) RunQuery(q QueryDef) (Result, error) {
	t, ok := e.DB.Table(q.From)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTable, q.From)
	}

	where, err := e.compileWhere(q.From, q.Where)
	if err != nil {
		return Result{}, err
	}

	opts := engine.QueryOptions{
		Limit:   q.Limit,
		Where:   where,
		OrderBy: q.OrderBy,
		Columns: selectList(t.Columns(), q.Columns, q.Distinct),
	}
	if q.Desc {
		opts.OrderDirection = engine.Desc
	}

	columns := projected(t.Columns(), opts.Columns)
	for _, jd := range q.Join {
		jt, ok := e.DB.Table(jd.Table)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownTable, jd.Table)
		}
		if _, ok := e.column(q.From, jd.On.Left); !ok {
			return Result{}, fmt.Errorf("join %s: unknown column %q in %s", jd.Table, jd.On.Left, q.From)
		}
		if _, ok := e.column(jd.Table, jd.On.Right); !ok {
			return Result{}, fmt.Errorf("join %s: unknown column %q", jd.Table, jd.On.Right)
		}

		opts.Join = append(opts.Join, engine.Join{
			Table:   jd.Table,
			Columns: jd.Columns,
			On:      equiJoin(jd.On),
		})

		joined := jd.Columns
		if joined == nil {
			joined = jt.Columns()
		}
		for _, name := range joined {
			if _, ok := e.column(jd.Table, name); ok && !slices.Contains(columns, name) {
				columns = append(columns, name)
			}
		}
	}

	return Result{Name: q.Name, Columns: columns, Rows: t.Query(opts)}, nil
}

// selectList builds the projection. Distinct columns missing from the
// explicit list are added to it; with no list at all every column is
// selected so the distinct flags have somewhere to live.
func selectList(all, columns, distinct []string) []engine.Select {
	if len(columns) == 0 && len(distinct) == 0 {
		return nil
	}
	names := columns
	if len(names) == 0 {
		names = all
	}
	names = slices.Clone(names)
	for _, d := range distinct {
		if !slices.Contains(names, d) {
			names = append(names, d)
		}
	}

	out := make([]engine.Select, len(names))
	for i, n := range names {
		out[i] = engine.Select{Name: n, Distinct: slices.Contains(distinct, n)}
	}
	return out
}

// projected lists the real columns a query emits, in storage order.
func projected(all []string, sel []engine.Select) []string {
	if sel == nil {
		return slices.Clone(all)
	}
	var out []string
	for _, name := range all {
		if slices.ContainsFunc(sel, func(s engine.Select) bool { return s.Name == name }) {
			out = append(out, name)
		}
	}
	return out
}

func equiJoin(on JoinOn) func(left, right *engine.RowAccessor) bool {
	return func(left, right *engine.RowAccessor) bool {
		l, r := left.Get(on.Left), right.Get(on.Right)
		return !l.Null && l.Equal(r)
	}
}

func (e *Env) compileWhere(table string, conds []Condition) (func(*engine.RowAccessor) bool, error) {
	if len(conds) == 0 {
		return nil, nil
	}

	preds := make([]func(*engine.RowAccessor) bool, 0, len(conds))
	for _, c := range conds {
		p, err := e.compileCondition(table, c)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}

	return func(row *engine.RowAccessor) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}
		return true
	}, nil
}

func (e *Env) compileCondition(table string, c Condition) (func(*engine.RowAccessor) bool, error) {
	col, ok := e.column(table, c.Column)
	if !ok {
		return nil, fmt.Errorf("where: unknown column %q", c.Column)
	}

	switch c.Op {
	case "null":
		return func(row *engine.RowAccessor) bool { return row.IsNull(c.Column) }, nil
	case "notnull":
		return func(row *engine.RowAccessor) bool { return !row.IsNull(c.Column) }, nil
	}

	lit, err := convert(col.Type, c.Value)
	if err != nil {
		return nil, fmt.Errorf("where %s: %w", c.Column, err)
	}
	if lit.Null {
		return nil, fmt.Errorf("where %s: %w: %s needs a value, use null or notnull", c.Column, ErrBadValue, c.Op)
	}

	accept, err := comparison(c.Op)
	if err != nil {
		return nil, err
	}
	// strings compare the way the table sorts them
	coll := collate.New(e.collation)
	return func(row *engine.RowAccessor) bool {
		v := row.Get(c.Column)
		if v.Null {
			return false
		}
		return accept(sql.Compare(v, lit, coll.CompareString))
	}, nil
}

func comparison(op string) (func(int) bool, error) {
	switch op {
	case "eq":
		return func(c int) bool { return c == 0 }, nil
	case "ne":
		return func(c int) bool { return c != 0 }, nil
	case "lt":
		return func(c int) bool { return c < 0 }, nil
	case "le":
		return func(c int) bool { return c <= 0 }, nil
	case "gt":
		return func(c int) bool { return c > 0 }, nil
	case "ge":
		return func(c int) bool { return c >= 0 }, nil
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}
