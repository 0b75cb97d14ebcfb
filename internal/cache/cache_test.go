package cache

import "testing"

func TestFingerprint_NormalizesCaseAndWhitespace(t *testing.T) {
	cases := []struct {
		purpose string
		query   string
		want    string
	}{
		{PurposeCourses, "Machine Learning", "courses:machine_learning"},
		{PurposeCourses, "  machine   LEARNING  ", "courses:machine_learning"},
		{PurposeTimeline, "Machine Learning", "timeline:machine_learning"},
		{PurposeCourses, "go", "courses:go"},
	}
	for _, tc := range cases {
		if got := Fingerprint(tc.purpose, tc.query); got != tc.want {
			t.Fatalf("Fingerprint(%q, %q) = %q, want %q", tc.purpose, tc.query, got, tc.want)
		}
	}
}

func TestFingerprint_EquivalentQueriesCollide(t *testing.T) {
	a := Fingerprint(PurposeCourses, "Deep Learning")
	b := Fingerprint(PurposeCourses, "deep  learning")
	if a != b {
		t.Fatalf("expected identical fingerprints, got %q vs %q", a, b)
	}
}

func TestFingerprint_PurposesDoNotCollide(t *testing.T) {
	if Fingerprint(PurposeCourses, "go") == Fingerprint(PurposeTimeline, "go") {
		t.Fatalf("purposes must partition the key space")
	}
}
