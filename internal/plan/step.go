package plan

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultDuration = "2 weeks"
	completeMark    = "✅"
)

// durationRe matches the single parenthesized duration annotation every step
// description carries, e.g. "(3 weeks)" or "(1 Week)".
var durationRe = regexp.MustCompile(`(?i)\(\d+\s*weeks?\)`)

// Step is one row of the primary schedule table in working form: a title plus
// a description whose text ends with a duration annotation.
type Step struct {
	Phase string
	Title string
	Desc  string
}

// NewStep builds a step for Insert/Append commands. The phase label is
// neutral: existing rows keep their labels verbatim across edits, so a
// positional label here could duplicate one of them.
func NewStep(title, duration string) Step {
	return Step{
		Phase: "New Phase",
		Title: title,
		Desc:  fmt.Sprintf("Work on %s (%s)", strings.ToLower(title), duration),
	}
}

// NormalizeDesc guarantees the duration annotation, appending the default
// when a structural edit (or a sloppy generator) left it out.
func NormalizeDesc(desc string) string {
	if durationRe.MatchString(desc) {
		return desc
	}
	return strings.TrimSpace(desc + " (" + defaultDuration + ")")
}

// SetDuration replaces the annotation in place, or appends one if missing.
func (s *Step) SetDuration(duration string) {
	annotation := "(" + duration + ")"
	if durationRe.MatchString(s.Desc) {
		s.Desc = durationRe.ReplaceAllLiteralString(s.Desc, annotation)
		return
	}
	s.Desc = strings.TrimSpace(s.Desc + " " + annotation)
}

// Duration returns the annotation's inner text, e.g. "3 weeks".
func (s Step) Duration() string {
	if m := durationRe.FindString(s.Desc); m != "" {
		return strings.TrimSpace(strings.Trim(m, "()"))
	}
	return defaultDuration
}

// TaskText returns the description with the annotation stripped.
func (s Step) TaskText() string {
	stripped := durationRe.ReplaceAllString(s.Desc, "")
	return strings.Join(strings.Fields(stripped), " ")
}

// Complete prepends the completion marker. Idempotent.
func (s *Step) Complete() {
	if !strings.Contains(s.Title, completeMark) {
		s.Title = completeMark + " " + s.Title
	}
}
