package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/tally/cmd"
	"github.com/thenoetrevino/tally/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var exitErr *cli.CommandError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
