package classcentral

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/learnsphere/learnsphere-backend/internal/types"
)

// providerDomains maps a known provider to the enrollment domain its detail
// page links to, used when the primary enrollment button is missing.
var providerDomains = map[string]string{
	"coursera":     "coursera.org",
	"udemy":        "udemy.com",
	"edx":          "edx.org",
	"freecodecamp": "freecodecamp.org",
	"udacity":      "udacity.com",
}

// DefaultDetails is the deterministic fallback enrichment record.
func DefaultDetails(provider, description string) types.CourseDetails {
	return types.CourseDetails{
		DirectLink:  fmt.Sprintf("https://www.%s.org", strings.ToLower(provider)),
		Workload:    "Not specified",
		StartDate:   "On-Demand",
		NumCourses:  "1 course",
		Description: description,
	}
}

func (c *client) Details(ctx context.Context, course types.Course) types.CourseDetails {
	defaults := DefaultDetails(course.Provider, course.Description)
	if course.DetailLink == "" {
		return defaults
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, course.DetailLink, nil)
	if err != nil {
		c.log.Warn("Failed to build detail request", "course", course.Name, "error", err)
		return defaults
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Failed to fetch course details", "course", course.Name, "error", err)
		return defaults
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Course detail page returned non-OK status", "course", course.Name, "status", resp.StatusCode)
		return defaults
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.log.Warn("Failed to parse course detail page", "course", course.Name, "error", err)
		return defaults
	}

	details := defaults
	details.DirectLink = c.directLink(doc, course.Provider)

	if workload := strings.TrimSpace(doc.Find(`span[aria-label="Workload and duration"]`).First().Text()); workload != "" {
		details.Workload = workload
	}
	if startDate := strings.TrimSpace(doc.Find(`span[aria-label="Start date"]`).First().Text()); startDate != "" {
		details.StartDate = startDate
	}
	if numCourses := strings.TrimSpace(doc.Find(`span[aria-label="Number of courses"]`).First().Text()); numCourses != "" {
		details.NumCourses = numCourses
	}
	if desc := strings.TrimSpace(doc.Find("div.course-description").First().Text()); desc != "" {
		details.Description = desc
	}

	return details
}

// directLink resolves the provider enrollment URL: the primary enrollment
// button when it leaves the listing site, otherwise a provider-domain link,
// otherwise the synthetic provider homepage.
func (c *client) directLink(doc *goquery.Document, provider string) string {
	if href, ok := doc.Find(`a.btn.btn-primary[href^="https://"]`).First().Attr("href"); ok {
		if !strings.Contains(href, "classcentral") {
			return href
		}
	}

	if domain, ok := providerDomains[strings.ToLower(provider)]; ok {
		if href, ok := doc.Find(fmt.Sprintf(`a[href*=%q]`, domain)).First().Attr("href"); ok {
			return href
		}
	}

	return fmt.Sprintf("https://www.%s.org", strings.ToLower(provider))
}
