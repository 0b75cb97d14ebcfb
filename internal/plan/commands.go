package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Result is the outcome of interpreting one utterance. Steps always holds the
// (possibly normalized) working sequence; Mutated reports whether a rule
// changed it and the document needs to be rewritten.
type Result struct {
	Message string
	Steps   []Step
	Mutated bool
}

// rule pairs an intent pattern with its transform. apply reports ok=false
// when the matched indices are out of range, in which case the utterance
// falls through to the next rule as if it had not matched.
type rule struct {
	re    *regexp.Regexp
	apply func(m []string, steps []Step) (string, []Step, bool)
}

// rules is the command grammar: an ordered, mutually exclusive set of edit
// intents, evaluated in fixed priority order. First match wins.
var rules = []rule{
	{
		// shorten|extend step N to|by M weeks
		re: regexp.MustCompile(`(?i)(shorten|extend)\s+step\s+(\d+)\s+(?:to|by)?\s*(\d+)\s*weeks?`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			idx := atoi(m[2]) - 1
			if idx < 0 || idx >= len(steps) {
				return "", nil, false
			}
			weeks := m[3] + " weeks"
			steps[idx].SetDuration(weeks)
			return fmt.Sprintf("Updated duration of step %d to %s.", idx+1, weeks), steps, true
		},
	},
	{
		// delete|remove step N
		re: regexp.MustCompile(`(?i)(delete|remove)\s+step\s+(\d+)`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			idx := atoi(m[2]) - 1
			if idx < 0 || idx >= len(steps) {
				return "", nil, false
			}
			removed := steps[idx].Title
			steps = append(steps[:idx], steps[idx+1:]...)
			return fmt.Sprintf("Removed step %d: %s.", idx+1, removed), steps, true
		},
	},
	{
		// rename step N to '<text>'
		re: regexp.MustCompile(`(?i)rename\s+step\s+(\d+)\s+to\s+['"]?(.+?)['"]?$`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			idx := atoi(m[1]) - 1
			title := strings.TrimSpace(m[2])
			if idx < 0 || idx >= len(steps) || title == "" {
				return "", nil, false
			}
			steps[idx].Title = title
			return fmt.Sprintf("Renamed step %d to '%s'.", idx+1, title), steps, true
		},
	},
	{
		// insert step '<title>' (<duration>) before|after step N
		re: regexp.MustCompile(`(?i)insert\s+step\s+['"]?(.+?)['"]?\s*\((\d+)\)\s*(before|after)\s*step\s+(\d+)`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			title := strings.TrimSpace(m[1])
			duration := m[2] + " weeks"
			pos := strings.ToLower(m[3])
			ref := atoi(m[4]) - 1
			if ref < 0 || ref >= len(steps) {
				return "", nil, false
			}
			insertAt := ref
			if pos == "after" {
				insertAt = ref + 1
			}
			steps = insertStep(steps, insertAt, NewStep(title, duration))
			return fmt.Sprintf("Inserted '%s' %s step %d.", title, pos, ref+1), steps, true
		},
	},
	{
		// add step '<title>' for <duration> weeks
		re: regexp.MustCompile(`(?i)add\s+step\s+['"]?(.+?)['"]?\s*(?:for\s+)?(\d+)\s*weeks?`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			title := strings.TrimSpace(m[1])
			if title == "" {
				return "", nil, false
			}
			duration := m[2] + " weeks"
			steps = append(steps, NewStep(title, duration))
			return fmt.Sprintf("Added new step: %s (%s).", title, duration), steps, true
		},
	},
	{
		// move step N before|after step M
		re: regexp.MustCompile(`(?i)move\s+step\s+(\d+)\s+(before|after)\s+step\s+(\d+)`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			src := atoi(m[1]) - 1
			pos := strings.ToLower(m[2])
			dst := atoi(m[3]) - 1
			if src < 0 || src >= len(steps) || dst < 0 || dst >= len(steps) {
				return "", nil, false
			}
			item := steps[src]
			steps = append(steps[:src], steps[src+1:]...)
			insertAt := dst
			if pos == "after" {
				insertAt = dst + 1
			}
			if insertAt > len(steps) {
				insertAt = len(steps)
			}
			steps = insertStep(steps, insertAt, item)
			return fmt.Sprintf("Moved step %d %s step %d.", src+1, pos, dst+1), steps, true
		},
	},
	{
		// mark step N complete
		re: regexp.MustCompile(`(?i)mark\s+step\s+(\d+)\s+complete`),
		apply: func(m []string, steps []Step) (string, []Step, bool) {
			idx := atoi(m[1]) - 1
			if idx < 0 || idx >= len(steps) {
				return "", nil, false
			}
			steps[idx].Complete()
			return fmt.Sprintf("Marked step %d complete.", idx+1), steps, true
		},
	},
}

// Interpret matches an utterance against the grammar and applies the first
// rule that both matches and is in bounds. Unmatched utterances (and matched
// rules with out-of-range indices that no later rule accepts) produce a
// generic acknowledgement with no mutation.
func Interpret(utterance string, steps []Step) Result {
	trimmed := strings.TrimSpace(utterance)
	for i := range steps {
		steps[i].Desc = NormalizeDesc(steps[i].Desc)
	}

	for _, r := range rules {
		m := r.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		msg, out, ok := r.apply(m, steps)
		if !ok {
			continue
		}
		return Result{Message: msg, Steps: out, Mutated: true}
	}

	return Result{Message: fmt.Sprintf("Received your request: %s", trimmed), Steps: steps}
}

func insertStep(steps []Step, at int, s Step) []Step {
	steps = append(steps, Step{})
	copy(steps[at+1:], steps[at:])
	steps[at] = s
	return steps
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
