package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/mathsnap/internal/preview"
	"github.com/at-ishikawa/mathsnap/internal/render"
	"github.com/fatih/color"
)

const (
	solvingMessage  = "Solving..."
	finishedMessage = "Request finished."
)

// TerminalDisplay draws the workflow on a terminal.
// Submissions run in the background, so every write is serialized.
type TerminalDisplay struct {
	mu      sync.Mutex
	out     io.Writer
	text    *render.TextRenderer
	italic  *color.Color
	alert   *color.Color
	loading bool
	preview *preview.Preview
	result  render.View
}

func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{
		out:    out,
		text:   render.NewTextRenderer(),
		italic: color.New(color.Italic),
		alert:  color.New(color.FgRed, color.Bold),
		result: render.ClearedView(),
	}
}

func (d *TerminalDisplay) ShowPreview(p preview.Preview) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preview = &p
	d.printf("Selected %s\n", p.String())
}

func (d *TerminalDisplay) ClearResult() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.result = render.ClearedView()
}

func (d *TerminalDisplay) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if loading == d.loading {
		return
	}
	d.loading = loading
	if loading {
		d.printf("%s\n", d.italic.Sprint(solvingMessage))
		return
	}
	d.printf("%s\n", d.italic.Sprint(finishedMessage))
}

func (d *TerminalDisplay) ShowResult(view render.View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.result = view
	if err := d.text.Write(d.out, view); err != nil {
		slog.Default().Error("failed to write a result", "error", err)
	}
}

func (d *TerminalDisplay) Notify(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf("%s\n", d.alert.Sprint("! "+message))
}

// Printf writes a line that is not part of the workflow, like a prompt
func (d *TerminalDisplay) Printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf(format, args...)
}

func (d *TerminalDisplay) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(d.out, format, args...); err != nil {
		slog.Default().Error("failed to write to the terminal", "error", err)
	}
}

func (d *TerminalDisplay) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Result returns the fields currently shown, render.Cleared while a request is pending
func (d *TerminalDisplay) Result() render.View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

func (d *TerminalDisplay) Preview() (preview.Preview, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.preview == nil {
		return preview.Preview{}, false
	}
	return *d.preview, true
}
