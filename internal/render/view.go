package render

import (
	"strings"

	"github.com/at-ishikawa/mathsnap/internal/solver"
)

const (
	// Cleared is shown in every field while a submission is pending
	Cleared = "-"

	NoProblem = "no problem recognized"
	NoAnswer  = "no answer obtained"
	Unknown   = "unknown"
	NoSteps   = "no solution steps"
)

// Segment is a run of step text; emphasized runs are shown in bold
type Segment struct {
	Text       string `json:"text" yaml:"text"`
	Emphasized bool   `json:"emphasized,omitempty" yaml:"emphasized,omitempty"`
}

// Step is one list item of the solution
type Step struct {
	Segments []Segment `json:"segments" yaml:"segments"`
}

func (s Step) Text() string {
	var b strings.Builder
	for _, segment := range s.Segments {
		b.WriteString(segment.Text)
	}
	return b.String()
}

// View is what the result area displays
type View struct {
	Problem        string `json:"problem" yaml:"problem"`
	Answer         string `json:"answer" yaml:"answer"`
	Steps          []Step `json:"steps" yaml:"steps"`
	ProcessingTime string `json:"processing_time" yaml:"processing_time"`
	TokensUsed     string `json:"tokens_used" yaml:"tokens_used"`
}

// ClearedView is the neutral state shown between submit and response
func ClearedView() View {
	return View{
		Problem:        Cleared,
		Answer:         Cleared,
		ProcessingTime: Cleared,
		TokensUsed:     Cleared,
	}
}

func NewView(result solver.SolveResult) View {
	view := View{
		Problem:        orDefault(result.Problem, NoProblem),
		Answer:         orDefault(result.Answer, NoAnswer),
		ProcessingTime: Unknown,
		TokensUsed:     Unknown,
	}
	if !result.ProcessingTime.Empty() {
		view.ProcessingTime = result.ProcessingTime.String()
	}
	if !result.TokensUsed.Empty() {
		view.TokensUsed = result.TokensUsed.String()
	}

	if len(result.Steps) == 0 {
		view.Steps = []Step{{Segments: []Segment{{Text: NoSteps}}}}
		return view
	}
	view.Steps = make([]Step, 0, len(result.Steps))
	for _, step := range result.Steps {
		view.Steps = append(view.Steps, Step{Segments: EmphasizeStep(step)})
	}
	return view
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
