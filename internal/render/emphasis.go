package render

import "regexp"

// Digit runs, brackets, and arithmetic or comparison symbols
var emphasisPattern = regexp.MustCompile(`\d+|[-+×÷=()\[\]{}./*]`)

// EmphasizeStep splits a step into segments in one pass over the text,
// marking every match of emphasisPattern. Adjacent matches stay separate segments.
func EmphasizeStep(step string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range emphasisPattern.FindAllStringIndex(step, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: step[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: step[loc[0]:loc[1]], Emphasized: true})
		last = loc[1]
	}
	if last < len(step) {
		segments = append(segments, Segment{Text: step[last:]})
	}
	return segments
}
