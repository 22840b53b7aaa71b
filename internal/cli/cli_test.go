package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goTableDB/internal/config"
)

const shopFixture = "testdata/shop.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(config.Defaults())
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFixture(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunJSONGolden(t *testing.T) {
	out, err := execute(t, "run", "--format", "json", shopFixture)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "run_shop", []byte(out))
}

func TestRunText(t *testing.T) {
	out, err := execute(t, "run", shopFixture)
	require.NoError(t, err)

	assert.Contains(t, out, "== customers-by-name (3 rows)")
	assert.Contains(t, out, "== big-orders (2 rows)")
	assert.Contains(t, out, "== early-march (2 rows)")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "2024-03-02T18:00:00Z")
}

func TestSchemaJSON(t *testing.T) {
	out, err := execute(t, "schema", "--format", "json", shopFixture)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   SchemaResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "shop", resp.Data.Database)
	require.Len(t, resp.Data.Tables, 2)
	assert.Equal(t, 5, resp.Data.Strings, "three names and two cities")

	orders := resp.Data.Tables[1]
	assert.Equal(t, "orders", orders.Name)
	assert.Equal(t, 3, orders.Rows)
	assert.Equal(t, []ColumnSchema{
		{Name: "orderId", Type: "Number", AutoIncrease: true},
		{Name: "customerId", Type: "Number"},
		{Name: "total", Type: "Number"},
		{Name: "placed", Type: "Datetime"},
	}, orders.Columns)
}

func TestSchemaText(t *testing.T) {
	out, err := execute(t, "schema", shopFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "customers (3 rows)")
	assert.Contains(t, out, "orders (3 rows)")
	assert.Contains(t, out, "auto")
	assert.Contains(t, out, "interned strings: 5")
}

func TestMissingFixture(t *testing.T) {
	out, err := execute(t, "run", "--format", "json", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, Reported(err), "the JSON envelope already carries the error")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestInvalidFixture(t *testing.T) {
	path := writeFixture(t, "tables:\n  - name: t\n    columns: [{name: a, type: blob}]\n")

	out, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeInvalid+"]")
}

func TestQueryFailureExitCode(t *testing.T) {
	path := writeFixture(t, `
tables:
  - name: t
    columns: [{name: a, type: number}]
queries:
  - {name: q, from: ghost}
`)

	out, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeQuery)
}

func TestInvalidFormat(t *testing.T) {
	out, err := execute(t, "run", "--format", "xml", shopFixture)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.False(t, Reported(err))
	assert.Empty(t, out)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", errors.New("y"))))
	assert.Equal(t, "x: y", WrapExitError(ExitFailure, "x", errors.New("y")).Error())
	assert.False(t, Reported(errors.New("plain")))
}
