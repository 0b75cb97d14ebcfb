package classcentral

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/learnsphere/learnsphere-backend/internal/types"
)

// trackProps is the JSON blob the listing embeds per course entry.
type trackProps struct {
	Provider    string  `json:"course_provider"`
	Institution string  `json:"course_institution"`
	AvgRating   float64 `json:"course_avg_rating"`
	NumRating   int     `json:"course_num_rating"`
	Subject     string  `json:"course_subject"`
	Level       string  `json:"course_level"`
	IsFree      bool    `json:"course_is_free"`
	Certificate bool    `json:"course_certificate"`
}

func (c *client) Search(ctx context.Context, goal string) ([]types.Course, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(`"`+goal+`"`))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("course search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("course search: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		// The response arrived; a body we cannot parse yields zero candidates
		// rather than a retriable error.
		c.log.Warn("Failed to parse search response", "error", err)
		return []types.Course{}, nil
	}

	var courses []types.Course
	doc.Find("li.course-list-course").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(courses) >= maxCandidates {
			return false
		}
		course, ok := c.parseListItem(item)
		if !ok {
			return true
		}
		courses = append(courses, course)
		return true
	})

	return courses, nil
}

func (c *client) parseListItem(item *goquery.Selection) (types.Course, bool) {
	name := strings.TrimSpace(item.Find(`h2[itemprop="name"]`).First().Text())
	href, hasLink := item.Find(`a.course-name[itemprop="url"]`).First().Attr("href")
	if name == "" || !hasLink {
		return types.Course{}, false
	}

	props := trackProps{Provider: "Unknown"}
	if raw, ok := item.Find("a[data-track-props]").First().Attr("data-track-props"); ok {
		raw = strings.ReplaceAll(raw, "&quot;", `"`)
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			c.log.Warn("Unparseable track props, using listing defaults", "course", name, "error", err)
			props = trackProps{Provider: "Unknown"}
		}
	}

	description := strings.TrimSpace(item.Find("p.text-2.margin-bottom-xsmall").First().Text())
	if description == "" {
		description = "No description available"
	}

	return types.Course{
		Name:        name,
		Provider:    props.Provider,
		Institution: props.Institution,
		Description: description,
		Pricing:     pricingClass(props.IsFree, props.Certificate),
		Subject:     props.Subject,
		Level:       props.Level,
		Rating:      props.AvgRating,
		NumReviews:  props.NumRating,
		DetailLink:  c.baseURL + href,
	}, true
}

func pricingClass(isFree, certificate bool) string {
	switch {
	case isFree && !certificate:
		return types.PricingFreeNoCert
	case certificate:
		return types.PricingPaidCert
	default:
		return types.PricingPaid
	}
}
