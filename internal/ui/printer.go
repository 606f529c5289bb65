package ui

import (
	"fmt"
	"time"

	"github.com/exattr/exattr/internal/ui/progress"
)

// Message reports progress with messages of different verbosity.
type Message struct {
	term Terminal
	v    uint
}

// NewMessage returns a message progress reporter with underlying terminal
// term.
func NewMessage(term Terminal, verbosity uint) *Message {
	return &Message{
		term: term,
		v:    verbosity,
	}
}

// E reports an error. This message is always printed to stderr.
func (m *Message) E(msg string, args ...interface{}) {
	m.term.Error(fmt.Sprintf(msg, args...))
}

// P prints a message if verbosity >= 1, this is used for normal messages which
// are not errors.
func (m *Message) P(msg string, args ...interface{}) {
	if m.v >= 1 {
		m.term.Print(fmt.Sprintf(msg, args...))
	}
}

// V prints a message if verbosity >= 2, this is used for verbose messages.
func (m *Message) V(msg string, args ...interface{}) {
	if m.v >= 2 {
		m.term.Print(fmt.Sprintf(msg, args...))
	}
}

// VV prints a message if verbosity >= 3, this is used for debug messages.
func (m *Message) VV(msg string, args ...interface{}) {
	if m.v >= 3 {
		m.term.Print(fmt.Sprintf(msg, args...))
	}
}

// ProgressPrinter is a progress.Printer which shows counters as status lines.
type ProgressPrinter struct {
	*Message

	term     Terminal
	json     bool
	interval time.Duration
}

var _ progress.Printer = &ProgressPrinter{}

// NewProgressPrinter returns a printer for term. Counters are only shown on
// terminals which can update the status lines, and never in JSON mode.
func NewProgressPrinter(json bool, verbosity uint, term Terminal) *ProgressPrinter {
	return &ProgressPrinter{
		Message:  NewMessage(term, verbosity),
		term:     term,
		json:     json,
		interval: time.Second / 60,
	}
}

// NewCounter returns a counter which displays "description  value / total".
func (p *ProgressPrinter) NewCounter(description string) *progress.Counter {
	if p.json || p.v == 0 || !p.term.CanUpdateStatus() {
		return nil
	}

	return progress.NewCounter(p.interval, 0, func(value uint64, total uint64, runtime time.Duration, final bool) {
		if final {
			p.term.SetStatus(nil)
			return
		}
		p.term.SetStatus([]string{FormatCounter(description, value, total, runtime)})
	})
}

// FormatCounter formats a counter status line.
func FormatCounter(description string, value, total uint64, runtime time.Duration) string {
	line := fmt.Sprintf("[%s] %d %s", FormatDuration(runtime), value, description)
	if total > 0 {
		line = fmt.Sprintf("[%s] %s  %d / %d %s", FormatDuration(runtime),
			FormatPercent(value, total), value, total, description)
	}
	return line
}

// FormatPercent returns provided numerator as 0..100 percentage of the provided
// denominator. Returns empty string if denominator is 0. Returns 100 if numerator
// is larger than denominator.
func FormatPercent(numerator uint64, denominator uint64) string {
	if denominator == 0 {
		return ""
	}

	percent := 100.0 * float64(numerator) / float64(denominator)
	if percent > 100 {
		percent = 100
	}

	return fmt.Sprintf("%3.2f%%", percent)
}

// FormatDuration formats d as [H:]MM:SS.
func FormatDuration(d time.Duration) string {
	sec := uint64(d / time.Second)
	hours := sec / 3600
	sec -= hours * 3600
	min := sec / 60
	sec -= min * 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, min, sec)
	}

	return fmt.Sprintf("%d:%02d", min, sec)
}
