package plan

import (
	"strings"
	"testing"
)

const samplePlan = `| Week/Phase | Topic/Skill | Practical Task | Estimated Duration |
|------------|-------------|----------------|-------------------|
| Week 1 | Introduction to Go | Setup development environment | 1 Week |
| Week 2-3 | Core Go Concepts | Build small projects | 2 Weeks |

### Career Options

| Role | Description |
|------|-------------|
| Go Developer | Develop applications using Go |

### Next Steps

| Learning Path | Description |
|---------------|-------------|
| Advanced Certifications | Pursue professional certifications |`

func TestParse_SplitsPrimaryTableFromTrailer(t *testing.T) {
	doc := Parse(samplePlan)
	if !doc.isTable {
		t.Fatalf("expected table mode")
	}
	if len(doc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
	}
	if doc.Steps[0].Phase != "Week 1" || doc.Steps[0].Title != "Introduction to Go" {
		t.Fatalf("unexpected first step: %+v", doc.Steps[0])
	}
	if doc.Steps[0].Duration() != "1 Week" {
		t.Fatalf("unexpected duration: %q", doc.Steps[0].Duration())
	}
}

func TestRender_PreservesAuxiliaryTablesVerbatim(t *testing.T) {
	doc := Parse(samplePlan)
	out := doc.Render()
	if !strings.Contains(out, "### Career Options") {
		t.Fatalf("career options table lost:\n%s", out)
	}
	if !strings.Contains(out, "| Advanced Certifications | Pursue professional certifications |") {
		t.Fatalf("next steps table lost:\n%s", out)
	}
	if !strings.Contains(out, PrimaryHeader) {
		t.Fatalf("primary header lost:\n%s", out)
	}
}

func TestParseInterpretRender_ShortenEndToEnd(t *testing.T) {
	doc := Parse(samplePlan)
	res := Interpret("shorten step 1 to 3 weeks", doc.Steps)
	if !res.Mutated {
		t.Fatalf("expected mutation")
	}
	doc.Steps = res.Steps
	out := doc.Render()

	if !strings.Contains(out, "| Week 1 | Introduction to Go | Setup development environment | 3 weeks |") {
		t.Fatalf("edited row not rendered:\n%s", out)
	}
	if !strings.Contains(out, "| Week 2-3 | Core Go Concepts | Build small projects | 2 Weeks |") {
		t.Fatalf("untouched row changed:\n%s", out)
	}
	if !strings.Contains(out, "### Next Steps") {
		t.Fatalf("trailer lost:\n%s", out)
	}
}

func TestParse_LineModeFallback(t *testing.T) {
	doc := Parse("Learn basics: read the tour\nPractice: build a CLI\n")
	if doc.isTable {
		t.Fatalf("expected line mode")
	}
	if len(doc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
	}
	if doc.Steps[0].Title != "Learn basics" {
		t.Fatalf("unexpected title: %q", doc.Steps[0].Title)
	}
	if !strings.Contains(doc.Steps[0].Desc, "(2 weeks)") {
		t.Fatalf("expected default annotation, got %q", doc.Steps[0].Desc)
	}
}

func TestParse_RowWithoutDurationCellGetsDefault(t *testing.T) {
	text := PrimaryHeader + "\n" +
		"|---|---|---|---|\n" +
		"| Week 1 | Basics | Setup | |"
	doc := Parse(text)
	if len(doc.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(doc.Steps))
	}
	if doc.Steps[0].Duration() != "2 weeks" {
		t.Fatalf("unexpected duration: %q", doc.Steps[0].Duration())
	}
}

func TestFallback_IsParseable(t *testing.T) {
	doc := Parse(Fallback("Rust"))
	if !doc.isTable {
		t.Fatalf("fallback plan should parse as a table")
	}
	if len(doc.Steps) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(doc.Steps))
	}
	if !strings.Contains(doc.Steps[0].Title, "Rust") {
		t.Fatalf("goal not templated into first phase: %q", doc.Steps[0].Title)
	}
}
