package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// TableSchema describes one built table.
type TableSchema struct {
	Name    string         `json:"name"`
	Rows    int            `json:"rows"`
	Columns []ColumnSchema `json:"columns"`
}

// ColumnSchema describes one column in storage order.
type ColumnSchema struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	AutoIncrease bool   `json:"autoIncrease,omitempty"`
}

// SchemaResult is the JSON payload of the schema command.
type SchemaResult struct {
	Database string        `json:"database"`
	Tables   []TableSchema `json:"tables"`
	Strings  int           `json:"internedStrings"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "schema <fixture.yaml>",
		Short:         "Print the columns and row counts of the fixture tables",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, args[0], cmd)
		},
	}
}

func runSchema(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	_, env, err := loadFixture(opts, path, formatter)
	if err != nil {
		return err
	}

	result := SchemaResult{Database: env.DB.Name(), Strings: env.Pool.Len()}
	for _, name := range env.DB.TableNames() {
		t, _ := env.DB.Table(name)
		info := t.Schema()
		ts := TableSchema{Name: name, Rows: t.RowCount()}
		for _, col := range t.Columns() {
			ts.Columns = append(ts.Columns, ColumnSchema{
				Name:         col,
				Type:         info[col].Type,
				AutoIncrease: info[col].AutoIncrease,
			})
		}
		result.Tables = append(result.Tables, ts)
	}

	if formatter.isJSON() {
		return formatter.Success(result)
	}

	for i, ts := range result.Tables {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		fmt.Fprintf(formatter.Writer, "%s (%d rows)\n", ts.Name, ts.Rows)
		tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
		for _, c := range ts.Columns {
			flag := ""
			if c.AutoIncrease {
				flag = "auto"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Name, c.Type, flag)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(formatter.Writer, "\ninterned strings: %d\n", result.Strings)
	return nil
}
