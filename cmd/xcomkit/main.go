// Package main is the entry point for the xcomkit CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/xcomkit/cmd/xcomkit/commands"
	"github.com/thoreinstein/xcomkit/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}
	printError(os.Stderr, err)
	os.Exit(errors.ExitCode(err))
}

// printError writes err and its suggestion. ExitErrors without an
// underlying error only carry a status and print nothing.
func printError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	if exitErr != nil && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
