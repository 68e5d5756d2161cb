package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"skypad/internal/notes"
	"skypad/internal/storage"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// terminalView prints controller callbacks to a terminal.
type terminalView struct {
	out    io.Writer
	errOut io.Writer
}

var _ notes.View = (*terminalView)(nil)

func newTerminalView(out, errOut io.Writer) *terminalView {
	return &terminalView{out: out, errOut: errOut}
}

func (v *terminalView) RenderSummary(summary notes.Summary) {
	marker := " "
	if summary.Selected {
		marker = cyan("*")
	}
	fmt.Fprintf(v.out, "%s %s  %s\n", marker, faint(fmt.Sprintf("#%-4d", summary.ID)), bold(summary.Title))
	if summary.Excerpt != "" {
		fmt.Fprintf(v.out, "        %s\n", faint(firstLine(summary.Excerpt)))
	}
}

// PopulateEditor is a no-op: the terminal has no edit form.
func (v *terminalView) PopulateEditor(notes.EditorState) {}

func (v *terminalView) OnInitialized(listing []storage.NoteRecord) {
	v.OnSearchResults(listing)
}

func (v *terminalView) OnSearchResults(results []storage.NoteRecord) {
	if len(results) == 0 {
		fmt.Fprintln(v.out, "No notes found.")
	}
}

func (v *terminalView) OnSaved(note storage.NoteRecord) {
	fmt.Fprintln(v.out, success(fmt.Sprintf("Saved note #%d %q", note.ID, note.Title)))
}

func (v *terminalView) OnDeleted() {
	fmt.Fprintln(v.out, success("Deleted note"))
}

func (v *terminalView) OnError(message string, code int) {
	fmt.Fprintln(v.errOut, errorLine(fmt.Sprintf("Oops.  Error was %s (Code %d)", message, code)))
}

// formatNote renders a stored note with a header and markdown body.
func formatNote(note storage.NoteRecord) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(formatMillis(note.CreatedAt))))
	if note.UpdatedAt != 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(formatMillis(note.UpdatedAt))))
	}
	sb.WriteString(faint(strings.Repeat("-", 50)) + "\n")
	sb.WriteString(renderMarkdown(note.Body))
	return sb.String()
}

func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content + "\n"
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func success(msg string) string {
	return color.New(color.FgGreen).Sprint("ok ") + msg
}

func errorLine(msg string) string {
	return color.New(color.FgRed).Sprint("error ") + msg
}
