package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vijay-prabhu/leetboost/internal/tracker"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorPurple = "\033[35m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[37m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal provides terminal-aware progress output. Progress goes to stderr so
// stdout stays parseable for json and yaml output
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	out          io.Writer
	spinnerIndex int
}

// NewTerminal creates a new Terminal instance writing to stderr
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal, // Only use color in terminal
		out:        os.Stderr,
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Progress returns a callback that renders tracker progress on one line in a
// terminal and one line per phase otherwise
func (t *Terminal) Progress() tracker.ProgressCallback {
	var lastPhase tracker.ProgressPhase
	var phaseStart time.Time

	return func(p tracker.Progress) {
		if p.Phase != lastPhase {
			phaseStart = time.Now()
		}
		if p.StartedAt.IsZero() {
			p.StartedAt = phaseStart
		}

		msg := progressMessage(p)
		if p.Total == 0 {
			if s := t.Spinner(); s != "" {
				msg = s + " " + msg
			}
		}
		msg = t.Color(PhaseColor(p.Phase), msg)

		if t.IsTerminal {
			t.ClearLine()
			fmt.Fprint(t.out, msg)
		} else if p.Phase != lastPhase {
			fmt.Fprintln(t.out, msg)
		}
		lastPhase = p.Phase
	}
}

// Done clears the progress line
func (t *Terminal) Done() {
	t.ClearLine()
}

func progressMessage(p tracker.Progress) string {
	if p.Total == 0 {
		return p.Description + "..."
	}
	msg := fmt.Sprintf("%s: %d/%d (%d%%)", p.Description, p.Current, p.Total, p.Percentage())
	if eta := p.ETA(); eta > 0 {
		msg += fmt.Sprintf(" (ETA: %s)", FormatETA(eta))
	}
	return msg
}

// FormatETA formats a duration as a human-readable ETA string
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

// PhaseColor returns the color for a progress phase
func PhaseColor(phase tracker.ProgressPhase) string {
	switch phase {
	case tracker.PhaseRatings:
		return ColorCyan
	case tracker.PhaseHistory:
		return ColorBlue
	case tracker.PhaseDetails:
		return ColorPurple
	case tracker.PhaseTags:
		return ColorYellow
	case tracker.PhaseRecommend:
		return ColorGreen
	default:
		return ColorWhite
	}
}
