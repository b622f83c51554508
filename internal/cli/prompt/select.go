// Package prompt provides interactive CLI prompts for choosing a notice action.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/thoreinstein/xcomkit/internal/errors"
)

// Sentinel errors for action selection.
var (
	ErrNoOptions          = errors.New("no options to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Chooser asks the user to pick one of options. ErrSelectionCancelled
// means the user dismissed the prompt.
type Chooser interface {
	Choose(ctx context.Context, message string, options []string) (string, error)
}

// NewChooser returns a fuzzy finder when in is a terminal and a numbered
// line prompt otherwise.
func NewChooser(in *os.File, out io.Writer) Chooser {
	if term.IsTerminal(int(in.Fd())) {
		return &FuzzyChooser{}
	}
	return NewSelectorWithIO(in, out)
}

// Selector is a numbered line prompt.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Choose prints options numbered from 1 and reads the selection.
// Empty input or "0" dismisses; EOF (e.g., Ctrl+D) cancels.
func (s *Selector) Choose(_ context.Context, message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	if message != "" {
		fmt.Fprintln(s.writer, message)
	}
	for i, opt := range options {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, opt)
	}
	fmt.Fprintf(s.writer, "  [0] Dismiss\nSelect [0]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" || input == "0" {
		return "", ErrSelectionCancelled
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(options) {
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [0-%d]", selection, len(options))
	}

	return options[selection-1], nil
}

// FuzzyChooser picks an option with an interactive fuzzy finder.
type FuzzyChooser struct{}

// Choose opens the fuzzy finder over options. Escape or Ctrl+C cancels.
func (FuzzyChooser) Choose(ctx context.Context, message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string { return options[i] },
		fuzzyfinder.WithContext(ctx),
		fuzzyfinder.WithHeader(message),
		fuzzyfinder.WithPromptString("XCOM 2> "),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}

	return options[idx], nil
}
