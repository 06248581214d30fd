package cli

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/thenoetrevino/tally/internal/cli"
)

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}

// ParseQuietID parses the ID printed by a --quiet command
func ParseQuietID(t *testing.T, output string) int {
	t.Helper()

	id, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		t.Fatalf("Expected numeric ID, got: %q", output)
	}
	return id
}

// ExitCode returns the exit code a command error would produce, failing the test
// when err is not an *cli.CommandError
func ExitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *cli.CommandError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *cli.CommandError, got %T: %v", err, err)
	}
	return exitErr.Code
}
