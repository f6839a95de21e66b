package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type TextRenderer struct {
	bold  *color.Color
	label *color.Color
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		bold:  color.New(color.Bold),
		label: color.New(color.FgCyan),
	}
}

// StepLine renders a step with its emphasized segments in bold
func (r *TextRenderer) StepLine(step Step) string {
	var b strings.Builder
	for _, segment := range step.Segments {
		if segment.Emphasized {
			b.WriteString(r.bold.Sprint(segment.Text))
			continue
		}
		b.WriteString(segment.Text)
	}
	return b.String()
}

func (r *TextRenderer) Write(w io.Writer, view View) error {
	lines := []string{
		r.label.Sprint("Problem: ") + view.Problem,
		r.label.Sprint("Answer: ") + view.Answer,
		r.label.Sprint("Steps:"),
	}
	for _, step := range view.Steps {
		lines = append(lines, "  • "+r.StepLine(step))
	}
	lines = append(lines,
		r.label.Sprint("Processing time: ")+view.ProcessingTime,
		r.label.Sprint("Tokens used: ")+view.TokensUsed,
	)

	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("fmt.Fprintln > %w", err)
	}
	return nil
}
