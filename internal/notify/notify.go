// Package notify renders user-facing notices and collects the action the
// user picks in response.
//
// Operations decide what to report by returning [Notice] values; a
// [Notifier] decides how to show them.
package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/xcomkit/internal/cli/prompt"
	"github.com/thoreinstein/xcomkit/internal/errors"
	"github.com/thoreinstein/xcomkit/internal/logging"
)

// Prefix starts every rendered notice.
const Prefix = "XCOM 2: "

// Level is the severity of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is one message for the user, optionally offering actions.
type Notice struct {
	Level   Level    `json:"level"`
	Message string   `json:"message"`
	Actions []string `json:"actions,omitempty"`
}

// Infof builds an informational notice.
func Infof(format string, args ...any) Notice {
	return Notice{Level: LevelInfo, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning notice.
func Warnf(format string, args ...any) Notice {
	return Notice{Level: LevelWarning, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error notice.
func Errorf(format string, args ...any) Notice {
	return Notice{Level: LevelError, Message: fmt.Sprintf(format, args...)}
}

// WithActions returns a copy of n offering actions.
func (n Notice) WithActions(actions ...string) Notice {
	n.Actions = actions
	return n
}

// Notifier shows a notice and returns the selected action, or "" when the
// notice offers none or the user dismissed it.
type Notifier interface {
	Notify(ctx context.Context, n Notice) (string, error)
}

// ActionMode controls how a Terminal answers notices that offer actions.
type ActionMode int

const (
	// ActionPrompt asks the user.
	ActionPrompt ActionMode = iota

	// ActionAccept picks the first action without asking.
	ActionAccept

	// ActionDismiss never picks an action.
	ActionDismiss
)

// Terminal renders notices as colored lines.
type Terminal struct {
	out     io.Writer
	chooser prompt.Chooser
	mode    ActionMode

	info *color.Color
	warn *color.Color
	err  *color.Color
}

// NewTerminal returns a Terminal writing to out. chooser may be nil unless
// mode is ActionPrompt.
func NewTerminal(out io.Writer, chooser prompt.Chooser, mode ActionMode) *Terminal {
	t := &Terminal{
		out:     out,
		chooser: chooser,
		mode:    mode,
		info:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
	return t.WithColor(logging.SupportsColor(out))
}

// WithColor forces colored output on or off.
func (t *Terminal) WithColor(enabled bool) *Terminal {
	for _, c := range []*color.Color{t.info, t.warn, t.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Notify prints n and resolves its action according to the terminal's mode.
func (t *Terminal) Notify(ctx context.Context, n Notice) (string, error) {
	c := t.info
	switch n.Level {
	case LevelWarning:
		c = t.warn
	case LevelError:
		c = t.err
	}
	c.Fprintln(t.out, Prefix+n.Message)

	if len(n.Actions) == 0 {
		return "", nil
	}

	switch t.mode {
	case ActionAccept:
		fmt.Fprintf(t.out, "  -> %s\n", n.Actions[0])
		return n.Actions[0], nil
	case ActionDismiss:
		return "", nil
	}

	if t.chooser == nil {
		return "", errors.New("no chooser configured for interactive notices")
	}

	selected, err := t.chooser.Choose(ctx, "Choose an action:", n.Actions)
	switch {
	case errors.Is(err, prompt.ErrSelectionCancelled):
		return "", nil
	case errors.Is(err, prompt.ErrInvalidSelection):
		fmt.Fprintln(t.out, "  invalid choice, dismissed")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return selected, nil
}

// Recorder collects notices and answers every actionable notice with Answer.
type Recorder struct {
	Notices []Notice
	Answer  string
}

// Notify records n.
func (r *Recorder) Notify(_ context.Context, n Notice) (string, error) {
	r.Notices = append(r.Notices, n)
	if len(n.Actions) == 0 {
		return "", nil
	}
	return r.Answer, nil
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	msgs := make([]string, len(r.Notices))
	for i, n := range r.Notices {
		msgs[i] = n.Message
	}
	return msgs
}
