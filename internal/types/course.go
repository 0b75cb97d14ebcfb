package types

// Pricing classes assigned to a course candidate from its listing attributes.
const (
	PricingFreeNoCert = "Free without certificate"
	PricingPaidCert   = "Pay for certificate"
	PricingPaid       = "Paid Course"
)

// Course is a single candidate under consideration in one ranking run. It is
// built during discovery, enriched in place by the detail fetcher and scored
// in place by the ranking step. (Name, Provider) identifies it within a run.
type Course struct {
	Name        string  `json:"name"`
	Provider    string  `json:"provider"`
	Institution string  `json:"institution,omitempty"`
	Description string  `json:"description"`
	Workload    string  `json:"workload,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
	Pricing     string  `json:"pricing"`
	NumCourses  string  `json:"num_courses,omitempty"`
	Subject     string  `json:"subject,omitempty"`
	Level       string  `json:"level,omitempty"`
	Rating      float64 `json:"rating"`
	NumReviews  int     `json:"num_reviews"`
	// DetailLink points at the listing site's own course page; the detail
	// fetcher resolves it into DirectLink and the other display fields.
	DetailLink string  `json:"detail_link,omitempty"`
	DirectLink string  `json:"direct_link,omitempty"`
	Score      float64 `json:"score"`
}

// CourseDetails is the enrichment record produced by the detail fetcher.
// Every field is defaulted deterministically when the source is unavailable,
// so enrichment never fails the caller.
type CourseDetails struct {
	DirectLink  string `json:"direct_link"`
	Workload    string `json:"workload"`
	StartDate   string `json:"start_date"`
	NumCourses  string `json:"num_courses"`
	Description string `json:"description"`
}
