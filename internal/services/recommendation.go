package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/learnsphere/learnsphere-backend/internal/cache"
	"github.com/learnsphere/learnsphere-backend/internal/clients/classcentral"
	"github.com/learnsphere/learnsphere-backend/internal/clients/reddit"
	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/repos"
	"github.com/learnsphere/learnsphere-backend/internal/sentiment"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

// ErrNoCourses is the one terminal condition of a ranking run: discovery
// produced zero candidates. Callers must report it distinctly rather than
// render an empty list.
var ErrNoCourses = errors.New("no courses found")

const (
	searchMaxRetries  = 3
	enrichmentWorkers = 5

	// The platform's own aggregate rating is far more reliable than a
	// sparse, noisy discussion-derived sentiment signal.
	ratingWeight    = 0.9
	sentimentWeight = 0.1
)

type RecommendationService interface {
	// Rank runs the discovery pipeline for a learning goal and returns
	// candidates ordered by composite score, best first. Returns ErrNoCourses
	// when discovery yields nothing.
	Rank(ctx context.Context, userID, goal string) ([]types.Course, error)
	// Queries lists the user's past ranking runs.
	Queries(ctx context.Context, userID string) ([]*types.Query, error)
}

type recommendationService struct {
	db      *gorm.DB
	log     *logger.Logger
	store   cache.Store
	courses classcentral.Client
	forum   reddit.Client
	scorer  sentiment.Scorer
	queries repos.QueryRepo
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	store cache.Store,
	coursesClient classcentral.Client,
	forumClient reddit.Client,
	scorer sentiment.Scorer,
	queryRepo repos.QueryRepo,
) RecommendationService {
	return &recommendationService{
		db:      db,
		log:     baseLog.With("service", "RecommendationService"),
		store:   store,
		courses: coursesClient,
		forum:   forumClient,
		scorer:  scorer,
		queries: queryRepo,
	}
}

func (s *recommendationService) Rank(ctx context.Context, userID, goal string) ([]types.Course, error) {
	courses, err := s.candidates(ctx, goal)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}

	s.scoreAll(ctx, goal, courses)

	// Stable: candidates with equal scores keep their discovery order.
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Score > courses[j].Score
	})

	backfillDisplayFields(&courses[0])

	if s.queries != nil && userID != "" {
		record := &types.Query{
			ID:         uuid.New(),
			UserID:     userID,
			QueryText:  goal,
			CourseName: courses[0].Name,
			CreatedAt:  time.Now().UTC(),
		}
		if _, err := s.queries.Create(ctx, nil, []*types.Query{record}); err != nil {
			s.log.Warn("Failed to record query", "goal", goal, "error", err)
		}
	}

	return courses, nil
}

func (s *recommendationService) Queries(ctx context.Context, userID string) ([]*types.Query, error) {
	return s.queries.ListByUser(ctx, nil, userID)
}

// candidates resolves the course list: cache first, then discovery plus
// concurrent enrichment. Only non-empty lists are cached, and an empty or
// unreadable cached entry counts as a miss, so a transiently-empty result
// never pins "no results" for a goal.
func (s *recommendationService) candidates(ctx context.Context, goal string) ([]types.Course, error) {
	payload, hit, err := s.store.Get(ctx, cache.PurposeCourses, goal)
	if err != nil {
		s.log.Warn("Cache lookup failed", "goal", goal, "error", err)
	} else if hit {
		var cached []types.Course
		if err := json.Unmarshal([]byte(payload), &cached); err == nil && len(cached) > 0 {
			s.log.Info("Using cached courses", "goal", goal)
			return cached, nil
		}
		s.log.Warn("Ignoring empty or unreadable cached course list", "goal", goal)
	}

	courses := s.discover(ctx, goal)
	if err := s.enrich(ctx, courses); err != nil {
		// Partial enrichment is fine: every candidate still carries at least
		// its defaults.
		s.log.Warn("Course enrichment incomplete", "goal", goal, "error", err)
	}

	if len(courses) > 0 {
		if raw, err := json.Marshal(courses); err == nil {
			if err := s.store.Put(ctx, cache.PurposeCourses, goal, string(raw)); err != nil {
				s.log.Warn("Failed to cache course list", "goal", goal, "error", err)
			}
		}
	}

	return courses, nil
}

// discover queries the course index with bounded retries. Only transport
// failures are retried; exhaustion substitutes the fixed fallback slate so an
// upstream outage alone never empties the pipeline.
func (s *recommendationService) discover(ctx context.Context, goal string) []types.Course {
	for attempt := 1; attempt <= searchMaxRetries; attempt++ {
		s.log.Info("Searching course index", "goal", goal, "attempt", attempt)
		courses, err := s.courses.Search(ctx, goal)
		if err != nil {
			s.log.Warn("Course search attempt failed", "goal", goal, "attempt", attempt, "error", err)
			continue
		}
		return courses
	}

	s.log.Error("Course search exhausted retries, using fallback candidates", "goal", goal)
	return fallbackCandidates(goal)
}

// enrich fans detail fetches out over a bounded pool and blocks until all
// complete. Results are written back by candidate index, so final order never
// depends on fetch latency. Individual failures degrade to defaults inside
// the fetcher and never abort siblings; the returned error is the group's.
func (s *recommendationService) enrich(ctx context.Context, courses []types.Course) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentWorkers)

	for i := range courses {
		g.Go(func() error {
			course := courses[i]
			if course.DetailLink != "" {
				details := s.courses.Details(gctx, course)
				courses[i].DirectLink = details.DirectLink
				courses[i].Workload = details.Workload
				courses[i].StartDate = details.StartDate
				courses[i].NumCourses = details.NumCourses
				courses[i].Description = details.Description
				return nil
			}
			// Fallback candidates carry no detail page; only fill gaps.
			details := classcentral.DefaultDetails(course.Provider, course.Description)
			backfillFrom(&courses[i], details)
			return nil
		})
	}
	return g.Wait()
}

// scoreAll attaches a composite score to every candidate. Discussion lookups
// are issued serially per candidate and degrade to an empty comment set.
func (s *recommendationService) scoreAll(ctx context.Context, goal string, courses []types.Course) {
	for i := range courses {
		comments := s.discussionComments(ctx, goal, courses[i])
		raw := s.compoundAverage(comments)
		normalized := 0.0
		if raw != 0 {
			normalized = (raw + 1) * 2.5
		}
		courses[i].Score = ratingWeight*courses[i].Rating + sentimentWeight*normalized
	}
}

func (s *recommendationService) discussionComments(ctx context.Context, goal string, course types.Course) []string {
	topic := fmt.Sprintf("%q %s %s review", course.Name, course.Provider, goal)
	if course.Institution != "" {
		topic += fmt.Sprintf(" %q", course.Institution)
	}

	comments, err := s.forum.Comments(ctx, topic)
	if err != nil {
		s.log.Warn("Discussion lookup failed, scoring without sentiment", "course", course.Name, "error", err)
		return nil
	}
	return comments
}

func (s *recommendationService) compoundAverage(comments []string) float64 {
	var sum float64
	var n int
	for _, comment := range comments {
		if strings.TrimSpace(comment) == "" {
			continue
		}
		sum += s.scorer.Compound(comment)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func backfillDisplayFields(course *types.Course) {
	backfillFrom(course, classcentral.DefaultDetails(course.Provider, course.Description))
}

func backfillFrom(course *types.Course, details types.CourseDetails) {
	if course.DirectLink == "" {
		course.DirectLink = details.DirectLink
	}
	if course.Workload == "" {
		course.Workload = details.Workload
	}
	if course.StartDate == "" {
		course.StartDate = details.StartDate
	}
	if course.NumCourses == "" {
		course.NumCourses = details.NumCourses
	}
	if course.Description == "" {
		course.Description = details.Description
	}
}
