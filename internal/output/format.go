// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"todo/internal/service"
)

const (
	openMark = "[ ]"
	doneMark = "[x]"
)

var (
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	checkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
)

// Printer writes task rows, styled when Styled is set.
type Printer struct {
	w      io.Writer
	Styled bool
}

// NewPrinter returns a Printer for w. Output is styled only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, Styled: IsTerminal(w)}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Task writes one task row with its 1-based number.
func (p *Printer) Task(num int, task service.Task) {
	if !p.Styled {
		FormatTask(p.w, num, task)
		return
	}

	title := NormalizeTitle(task.Title)
	mark := openMark
	if task.IsCompleted {
		mark = checkStyle.Render(doneMark)
		title = doneStyle.Render(title)
	}
	fmt.Fprintf(p.w, "%s  %s %s\n", numberStyle.Render(fmt.Sprintf("%4d", num)), mark, title)
}

// Tasks writes tasks numbered from 1.
func (p *Printer) Tasks(tasks []service.Task) {
	for i, task := range tasks {
		p.Task(i+1, task)
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {TITLE}\n", with [x] for completed tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := openMark
	if task.IsCompleted {
		mark = doneMark
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, mark, NormalizeTitle(task.Title))
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
