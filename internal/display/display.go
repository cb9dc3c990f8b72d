// Package display draws the jig status screen: a fixed list of rows, each
// with a line of text and a PASS/FAIL indicator.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sigreer/jigcheck/internal/config"
)

// Status is the indicator state of a row
type Status int

const (
	StatusNone Status = iota
	StatusPass
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	}
	return ""
}

// Display is the row-oriented screen the monitor paints on
type Display interface {
	SetText(row int, text string)
	SetStatus(row int, s Status)
	Flush() error
}

// Row is one line of the screen
type Row struct {
	Text   string
	Status Status
}

// Terminal renders rows to a terminal, redrawing the whole screen on Flush
type Terminal struct {
	w     io.Writer
	rows  []Row
	width int
	clear bool

	title lipgloss.Style
	pass  lipgloss.Style
	fail  lipgloss.Style
}

// NewTerminal creates a screen of n rows. With clear set, each Flush homes
// the cursor and clears the terminal first.
func NewTerminal(w io.Writer, layout *config.Layout, n int, clear bool) *Terminal {
	return &Terminal{
		w:     w,
		rows:  make([]Row, n),
		width: layout.Width,
		clear: clear,
		title: lipgloss.NewStyle().Bold(true),
		pass:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(layout.PassColor)),
		fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(layout.FailColor)),
	}
}

// SetText ignores rows outside the screen
func (t *Terminal) SetText(row int, text string) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row].Text = text
}

func (t *Terminal) SetStatus(row int, s Status) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row].Status = s
}

// Rows returns a copy of the current screen contents
func (t *Terminal) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Terminal) Flush() error {
	var b strings.Builder

	if t.clear {
		b.WriteString("\033[H\033[2J")
	}

	for i, r := range t.rows {
		text := truncate(r.Text, t.width)
		if i == 0 {
			text = t.title.Render(text)
		}

		switch r.Status {
		case StatusPass:
			fmt.Fprintf(&b, "%-*s %s\n", t.width, text, t.pass.Render("PASS"))
		case StatusFail:
			fmt.Fprintf(&b, "%-*s %s\n", t.width, text, t.fail.Render("FAIL"))
		default:
			fmt.Fprintln(&b, text)
		}
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
