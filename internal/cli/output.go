package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Emit writes the result of a command. Quiet mode prints only id; JSON mode writes
// fields next to "success": true; otherwise human renders the result.
// A zero id in quiet mode prints nothing.
func (f *OutputFormatter) Emit(id int, fields map[string]interface{}, human func()) error {
	if f.Quiet {
		if id != 0 {
			fmt.Printf("%d\n", id)
		}
		return nil
	}

	if f.JSON {
		out := map[string]interface{}{"success": true}
		for k, v := range fields {
			out[k] = v
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	human()
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it as a *CommandError carrying its exit code
func (f *OutputFormatter) Fail(err error) error {
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return err
	}
	if fmtErr := f.Error(ErrorCode(err), err.Error()); fmtErr != nil {
		log.Printf("Error formatting error message: %v", fmtErr)
	}
	return &CommandError{Code: ExitCode(err), Err: err}
}

// Usage reports a usage mistake with a suggestion and returns a *CommandError with ExitUsage
func (f *OutputFormatter) Usage(message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion("USAGE_ERROR", message, suggestion); fmtErr != nil {
		log.Printf("Error formatting error message: %v", fmtErr)
	}
	return &CommandError{Code: ExitUsage, Err: errors.New(message)}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data interface{}) error {
	// Default implementation - can be enhanced per data type
	fmt.Printf("%+v\n", data)
	return nil
}

// NewFormatter reads the --json and --quiet flags shared by every command
func NewFormatter(flags interface {
	GetBool(name string) (bool, error)
}) *OutputFormatter {
	jsonOutput, _ := flags.GetBool("json")
	quietMode, _ := flags.GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
