// Package plan models the stored timeline text as an ordered list of typed
// steps and interprets free-text edit commands against it. The primary table
// (Week/Phase | Topic/Skill | Practical Task | Estimated Duration) is the
// editable region; auxiliary tables are carried through verbatim.
package plan

import (
	"fmt"
	"regexp"
	"strings"
)

// PrimaryHeader is the column contract every stored plan's schedule table
// follows. It is preserved across every mutation.
const PrimaryHeader = "| Week/Phase | Topic/Skill | Practical Task | Estimated Duration |"

const primarySeparator = "|------------|-------------|----------------|-------------------|"

var (
	separatorRe    = regexp.MustCompile(`^\|[\s\-:|]+\|?$`)
	durationCellRe = regexp.MustCompile(`(?i)\d+\s*weeks?`)
)

// Document is the parsed working form of one plan. Steps cover only the
// primary table's rows; everything around them is kept verbatim so that a
// render after editing touches nothing but the edited region.
type Document struct {
	Steps []Step

	preamble []string // text before the primary table, verbatim
	header   []string // primary table header row + separator, verbatim
	trailer  []string // auxiliary tables and anything after, verbatim
	isTable  bool
}

// Parse splits plan text into the primary-table steps and the surrounding
// regions. Plans without a recognizable table degrade to line mode: each
// non-empty line becomes one step, split on the first colon.
func Parse(text string) *Document {
	lines := strings.Split(text, "\n")

	start := -1
	for i := 0; i+1 < len(lines); i++ {
		if isRow(lines[i]) && separatorRe.MatchString(strings.TrimSpace(lines[i+1])) {
			start = i
			break
		}
	}

	if start < 0 {
		return parseLines(lines)
	}

	doc := &Document{
		preamble: lines[:start],
		header:   lines[start : start+2],
		isTable:  true,
	}

	end := start + 2
	for end < len(lines) && isRow(lines[end]) {
		doc.Steps = append(doc.Steps, rowToStep(lines[end]))
		end++
	}
	doc.trailer = lines[end:]

	return doc
}

// Render serializes the document back into plan text, rewriting only the
// primary-table rows.
func (d *Document) Render() string {
	var out []string
	if d.isTable {
		out = append(out, d.preamble...)
		out = append(out, d.header...)
		for _, s := range d.Steps {
			out = append(out, stepToRow(s))
		}
		out = append(out, d.trailer...)
		return strings.Join(out, "\n")
	}

	for _, s := range d.Steps {
		out = append(out, fmt.Sprintf("%s: %s", s.Title, s.Desc))
	}
	out = append(out, d.trailer...)
	return strings.Join(out, "\n")
}

func isRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && !separatorRe.MatchString(trimmed)
}

func rowToStep(line string) Step {
	cells := splitRow(line)
	for len(cells) < 4 {
		cells = append(cells, "")
	}

	desc := cells[2]
	if !durationRe.MatchString(desc) && durationCellRe.MatchString(cells[3]) {
		desc = strings.TrimSpace(desc + " (" + cells[3] + ")")
	}

	return Step{
		Phase: cells[0],
		Title: cells[1],
		Desc:  NormalizeDesc(desc),
	}
}

func stepToRow(s Step) string {
	return fmt.Sprintf("| %s | %s | %s | %s |", s.Phase, s.Title, s.TaskText(), s.Duration())
}

func splitRow(line string) []string {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func parseLines(lines []string) *Document {
	doc := &Document{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		title, desc := trimmed, ""
		if i := strings.Index(trimmed, ":"); i >= 0 {
			title = strings.TrimSpace(trimmed[:i])
			desc = strings.TrimSpace(trimmed[i+1:])
		}
		doc.Steps = append(doc.Steps, Step{
			Phase: fmt.Sprintf("Phase %d", len(doc.Steps)+1),
			Title: title,
			Desc:  NormalizeDesc(desc),
		})
	}
	return doc
}

// Fallback builds the deterministic plan used when the generative
// collaborator fails: a fixed 4-phase, 8-week structure around the goal,
// plus the two auxiliary tables.
func Fallback(goal string) string {
	return strings.Join([]string{
		PrimaryHeader,
		primarySeparator,
		fmt.Sprintf("| Week 1 | Introduction to %s | Setup development environment | 1 Week |", goal),
		fmt.Sprintf("| Week 2-3 | Core %s Concepts | Build small projects | 2 Weeks |", goal),
		fmt.Sprintf("| Week 4-6 | Advanced %s Topics | Develop capstone project | 3 Weeks |", goal),
		"| Week 7-8 | Real-world Applications | Portfolio projects | 2 Weeks |",
		"",
		"### Career Options",
		"",
		"| Role | Description |",
		"|------|-------------|",
		fmt.Sprintf("| %s Developer | Develop applications using %s |", goal, goal),
		fmt.Sprintf("| %s Specialist | Specialize in %s technologies |", goal, goal),
		"",
		"### Next Steps",
		"",
		"| Learning Path | Description |",
		"|---------------|-------------|",
		"| Advanced Certifications | Pursue professional certifications |",
		"| Open Source Contribution | Contribute to relevant projects |",
	}, "\n")
}
