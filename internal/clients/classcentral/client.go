// Package classcentral talks to the course-index site: full-text search over
// course listings plus per-course detail pages. Search errors are surfaced so
// the pipeline can retry; detail fetching always degrades to a deterministic
// default record instead of failing.
package classcentral

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/types"
	"github.com/learnsphere/learnsphere-backend/internal/utils"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type Client interface {
	// Search returns up to maxCandidates parsed candidates for a learning
	// goal. It errors only on transport failures or non-2xx responses;
	// unparseable listing entries are skipped.
	Search(ctx context.Context, goal string) ([]types.Course, error)
	// Details enriches one candidate from its detail page. It never fails:
	// any network or parse error collapses into the default record.
	Details(ctx context.Context, course types.Course) types.CourseDetails
}

// maxCandidates bounds how many listing entries one search considers.
const maxCandidates = 5

type client struct {
	log        *logger.Logger
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) Client {
	baseURL := strings.TrimRight(utils.GetEnv("CLASSCENTRAL_BASE_URL", "https://www.classcentral.com", log), "/")
	return &client{
		log:       log.With("client", "ClassCentral"),
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
