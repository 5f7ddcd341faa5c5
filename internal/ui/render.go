package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/model"
)

const maxTextWidth = 80

// EmptyState is shown in place of the list when there is nothing to show.
const EmptyState = "No todos yet. Add one above!"

// Card draws a framed box with a title line, an optional muted
// description and the body below a blank line.
func Card(title, description, body string) string {
	t := Current()
	head := t.Title.Render(title)
	if description != "" {
		head += "\n" + t.Muted.Render(description)
	}
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(head + "\n\n" + body)
}

// Checkbox renders the theme's box glyph for the given state.
func Checkbox(checked bool) string {
	t := Current()
	if checked {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// Row renders one item as "#id ☐ text"; completed text is struck through.
func Row(it model.Item) string {
	t := Current()
	text := ansi.Truncate(it.Text, maxTextWidth, "...")
	if it.Completed {
		text = t.Done.Render(text)
	}
	return fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("#%-3d", it.ID)), Checkbox(it.Completed), text)
}

// Stats is the footer line under a non-empty list.
func Stats(remaining, completed int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %s",
		t.Pending.Render(fmt.Sprintf("%d remaining", remaining)),
		t.Muted.Render(t.SymDot),
		t.Success.Render(fmt.Sprintf("%d completed", completed)),
	)
}

// ProgressBar renders a Unicode progress bar with a done/total suffix.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Lines renders the list flat, or grouped into Pending and Done.
func Lines(items []model.Item, group bool) []string {
	if len(items) == 0 {
		return []string{Current().Muted.Render(EmptyState)}
	}
	if !group {
		return flatLines(items)
	}

	var pend, done []model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, section("Pending", pend)...)
	lines = append(lines, "")
	lines = append(lines, section("Done", done)...)
	return lines
}

func section(name string, items []model.Item) []string {
	t := Current()
	lines := []string{t.Accent.Render(name)}
	if len(items) == 0 {
		return append(lines, t.Muted.Render("(none)"))
	}
	return append(lines, flatLines(items)...)
}

func flatLines(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, Row(it))
	}
	return out
}

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
