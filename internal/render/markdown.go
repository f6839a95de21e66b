package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/mathsnap/internal/assets"
	"github.com/mandolyte/mdtopdf"
)

const reportTitle = "Math solution"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// markdownStep wraps each run of adjacent emphasized segments in one pair of markers.
func markdownStep(step Step) string {
	var b, run strings.Builder
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString("**" + run.String() + "**")
		run.Reset()
	}
	for _, segment := range step.Segments {
		escaped := markdownEscaper.Replace(segment.Text)
		if segment.Emphasized {
			run.WriteString(escaped)
			continue
		}
		flush()
		b.WriteString(escaped)
	}
	flush()
	return b.String()
}

func solutionReport(view View, image string) assets.SolutionReport {
	steps := make([]string, 0, len(view.Steps))
	for _, step := range view.Steps {
		steps = append(steps, markdownStep(step))
	}
	return assets.SolutionReport{
		Title:          reportTitle,
		Image:          markdownEscaper.Replace(image),
		Problem:        markdownEscaper.Replace(view.Problem),
		Answer:         markdownEscaper.Replace(view.Answer),
		Steps:          steps,
		ProcessingTime: markdownEscaper.Replace(view.ProcessingTime),
		TokensUsed:     markdownEscaper.Replace(view.TokensUsed),
	}
}

func WriteMarkdown(w io.Writer, view View, options Options) error {
	if err := assets.WriteSolutionReport(w, options.TemplatePath, solutionReport(view, options.ImageName)); err != nil {
		return fmt.Errorf("assets.WriteSolutionReport() > %w", err)
	}
	return nil
}

// WritePDF renders the markdown report into a PDF file at pdfPath
func WritePDF(pdfPath string, view View, options Options) error {
	var content bytes.Buffer
	if err := WriteMarkdown(&content, view, options); err != nil {
		return fmt.Errorf("WriteMarkdown() > %w", err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content.Bytes()); err != nil {
		return fmt.Errorf("renderer.Process() > %w", err)
	}
	return nil
}
