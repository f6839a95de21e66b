package assets

import (
	_ "embed"
	"fmt"
	"io"
)

const solutionReportTemplateName = "solution-report.md.go.tmpl"

//go:embed templates/solution-report.md.go.tmpl
var fallbackSolutionReportTemplate string

// SolutionReport is the data of the markdown report.
// Steps are already markdown, with emphasis applied.
type SolutionReport struct {
	Title          string
	Image          string
	Problem        string
	Answer         string
	Steps          []string
	ProcessingTime string
	TokensUsed     string
}

func WriteSolutionReport(output io.Writer, templatePath string, report SolutionReport) error {
	tmpl, err := parseTemplateWithFallback(templatePath, solutionReportTemplateName, fallbackSolutionReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, report); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
