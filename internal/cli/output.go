package cli

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	wareki "github.com/rabitt1ove/jp-wareki"
	"github.com/rabitt1ove/jp-wareki/internal/csvconv"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Conversion failure (invalid date, unknown era, etc.)
	ExitCommandError = 2 // Command error (bad flags, unreadable files, broken era table)
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeInvalidArg = "E001" // date or era argument rejected by the calendar
	ErrCodeEraTable   = "E002" // era table could not be loaded
	ErrCodeIO         = "E003" // file could not be read or written
	ErrCodeCSV        = "E004" // malformed CSV input
	ErrCodeUsage      = "E005" // invalid flag value
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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
// Errors that did not come from a command (flag parsing, argument counts)
// are usage errors and map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics and text-mode errors (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
// In text mode data is printed with fmt.Println, so results should
// implement fmt.Stringer.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format. JSON errors go to Writer
// so callers always get a parseable document; text errors go to ErrWriter.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	w := f.GetErrWriter()
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the ExitError the command should return.
func (f *OutputFormatter) Fail(code string, exitCode int, err error) error {
	_ = f.Error(code, err.Error(), errorDetails(err))
	return WrapExitError(exitCode, code, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// It always writes to the diagnostic writer so JSON output stays intact.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// classify maps a conversion error to an error code and exit code.
func classify(err error) (string, int) {
	var (
		numErr *strconv.NumError
		csvErr *csv.ParseError
		rowErr *csvconv.RowError
	)
	switch {
	case errors.Is(err, wareki.ErrInvalidEraTable):
		return ErrCodeEraTable, ExitCommandError
	case errors.Is(err, wareki.ErrInvalidArg),
		errors.As(err, &numErr),
		errors.As(err, &rowErr):
		return ErrCodeInvalidArg, ExitFailure
	case errors.As(err, &csvErr):
		return ErrCodeCSV, ExitCommandError
	default:
		return ErrCodeIO, ExitCommandError
	}
}

// errorDetails extracts structured context for JSON error responses.
func errorDetails(err error) any {
	details := map[string]any{}
	var argErr *wareki.InvalidArgError
	if errors.As(err, &argErr) {
		details["op"] = argErr.Op
		details["arg"] = argErr.Arg
		details["value"] = argErr.Value
	}
	var rowErr *csvconv.RowError
	if errors.As(err, &rowErr) {
		details["record"] = rowErr.Record
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
