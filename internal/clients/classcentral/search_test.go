package classcentral

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	t.Setenv("CLASSCENTRAL_BASE_URL", baseURL)
	return NewClient(testLogger(t))
}

func listingEntry(name, href, props, desc string) string {
	return fmt.Sprintf(`<li class="course-list-course">
  <h2 itemprop="name">%s</h2>
  <a class="course-name" itemprop="url" href="%s" data-track-props='%s'>link</a>
  <p class="text-2 margin-bottom-xsmall">%s</p>
</li>`, name, href, props, desc)
}

func TestSearch_ParsesListingEntries(t *testing.T) {
	props := `{&quot;course_provider&quot;:&quot;Coursera&quot;,&quot;course_institution&quot;:&quot;University of Michigan&quot;,&quot;course_avg_rating&quot;:4.5,&quot;course_num_rating&quot;:1200,&quot;course_subject&quot;:&quot;Programming&quot;,&quot;course_level&quot;:&quot;Beginner&quot;,&quot;course_is_free&quot;:true,&quot;course_certificate&quot;:false}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "q=") {
			t.Errorf("missing query parameter: %s", r.URL.String())
		}
		fmt.Fprintf(w, "<html><body><ul>%s</ul></body></html>",
			listingEntry("Python Basics", "/course/python-basics", props, "Learn Python from scratch."))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	courses, err := c.Search(context.Background(), "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}

	got := courses[0]
	if got.Name != "Python Basics" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
	if got.Provider != "Coursera" || got.Institution != "University of Michigan" {
		t.Fatalf("unexpected provenance: %q / %q", got.Provider, got.Institution)
	}
	if got.Rating != 4.5 || got.NumReviews != 1200 {
		t.Fatalf("unexpected rating: %v / %d", got.Rating, got.NumReviews)
	}
	if got.Pricing != types.PricingFreeNoCert {
		t.Fatalf("unexpected pricing: %q", got.Pricing)
	}
	if got.DetailLink != srv.URL+"/course/python-basics" {
		t.Fatalf("unexpected detail link: %q", got.DetailLink)
	}
	if got.Description != "Learn Python from scratch." {
		t.Fatalf("unexpected description: %q", got.Description)
	}
}

func TestSearch_CapsCandidates(t *testing.T) {
	var entries strings.Builder
	for i := 0; i < 8; i++ {
		entries.WriteString(listingEntry(fmt.Sprintf("Course %d", i), fmt.Sprintf("/course/%d", i), "{}", "desc"))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "<html><body><ul>%s</ul></body></html>", entries.String())
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	courses, err := c.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != maxCandidates {
		t.Fatalf("expected %d courses, got %d", maxCandidates, len(courses))
	}
}

func TestSearch_SkipsEntriesWithoutNameOrLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><ul>
<li class="course-list-course"><h2 itemprop="name">No Link</h2></li>
<li class="course-list-course"><a class="course-name" itemprop="url" href="/x">No Name</a></li>
`+listingEntry("Valid", "/course/valid", "{}", "desc")+`
</ul></body></html>`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	courses, err := c.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 1 || courses[0].Name != "Valid" {
		t.Fatalf("expected only the valid entry, got %+v", courses)
	}
}

func TestSearch_UnknownProviderWhenPropsMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><ul>
<li class="course-list-course">
  <h2 itemprop="name">Bare</h2>
  <a class="course-name" itemprop="url" href="/course/bare">link</a>
</li>
</ul></body></html>`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	courses, err := c.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if courses[0].Provider != "Unknown" {
		t.Fatalf("unexpected provider: %q", courses[0].Provider)
	}
	if courses[0].Description != "No description available" {
		t.Fatalf("unexpected description: %q", courses[0].Description)
	}
}

func TestSearch_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Search(context.Background(), "go"); err == nil {
		t.Fatalf("expected error on HTTP 503")
	}
}

func TestSearch_TransportFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Search(context.Background(), "go"); err == nil {
		t.Fatalf("expected error when server is unreachable")
	}
}
