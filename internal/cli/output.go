package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"goTableDB/internal/fixture"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A query could not be run
	ExitCommandError = 2 // Bad invocation, unreadable or invalid fixture
)

// Error codes reported in JSON output.
const (
	ErrCodeGeneric  = "E001"
	ErrCodeNotFound = "E002"
	ErrCodeInvalid  = "E003"
	ErrCodeQuery    = "E004"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the error was already written to the command
	// output.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Reported reports whether err was already written by an OutputFormatter.
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f *OutputFormatter) isJSON() bool {
	return f.Format == "json"
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Success writes data as a JSON envelope. Text output is written by the
// callers.
func (f *OutputFormatter) Success(data any) error {
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Fail reports err in the configured format and returns it as an ExitError.
func (f *OutputFormatter) Fail(exitCode int, code, message string, err error) error {
	if f.isJSON() {
		_ = f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: fmt.Sprintf("%s: %v", message, err)},
		})
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s: %v\n", code, message, err)
	}
	exitErr := WrapExitError(exitCode, message, err)
	exitErr.Reported = true
	return exitErr
}

// resultJSON is the wire form of one query result. Rows are arrays in
// Columns order.
type resultJSON struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func toJSON(results []fixture.Result) []resultJSON {
	out := make([]resultJSON, len(results))
	for i, r := range results {
		rows := make([][]any, len(r.Rows))
		for j, row := range r.Rows {
			cells := make([]any, len(r.Columns))
			for k, col := range r.Columns {
				cells[k] = row[col].Interface()
			}
			rows[j] = cells
		}
		out[i] = resultJSON{Name: r.Name, Columns: r.Columns, Rows: rows}
	}
	return out
}

// writeTable prints one result as an aligned text table.
func writeTable(w io.Writer, r fixture.Result) error {
	fmt.Fprintf(w, "== %s (%d rows)\n", r.Name, len(r.Rows))
	if len(r.Columns) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(r.Columns, "\t"))
	cells := make([]string, len(r.Columns))
	for _, row := range r.Rows {
		for k, col := range r.Columns {
			cells[k] = row[col].String()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
