package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnsphere/learnsphere-backend/internal/cache"
	"github.com/learnsphere/learnsphere-backend/internal/clients/gemini"
	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/plan"
	"github.com/learnsphere/learnsphere-backend/internal/repos"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

// ErrPlanNotFound is returned by plan-scoped operations when the user has no
// stored plan for the course.
var ErrPlanNotFound = errors.New("timeline plan not found")

type TimelineService interface {
	// Synthesize produces the plan text for a goal and its best course and
	// stores it under (user, course). Generator failures degrade to a
	// deterministic fallback plan; Synthesize itself fails only on storage
	// errors.
	Synthesize(ctx context.Context, userID, goal string, best types.Course) (string, error)
	// GetPlan returns the stored plan text, or ErrPlanNotFound.
	GetPlan(ctx context.Context, userID, courseName string) (string, error)
	// Command applies one structured edit utterance to the stored plan and
	// returns the response message plus the (possibly updated) plan text.
	Command(ctx context.Context, userID, courseName, utterance string) (string, string, error)
	// AssistantRewrite hands the whole plan to the generative collaborator
	// for a free-form revision. On generator failure the plan is unchanged.
	AssistantRewrite(ctx context.Context, userID, courseName, request string) (string, string, error)
	// History lists the chat exchanges for a course, oldest first.
	History(ctx context.Context, userID, courseName string) ([]*types.ChatLog, error)
}

type timelineService struct {
	db        *gorm.DB
	log       *logger.Logger
	store     cache.Store
	generator gemini.Client
	plans     repos.TimelineRepo
	chats     repos.ChatLogRepo
}

func NewTimelineService(
	db *gorm.DB,
	baseLog *logger.Logger,
	store cache.Store,
	generator gemini.Client,
	planRepo repos.TimelineRepo,
	chatRepo repos.ChatLogRepo,
) TimelineService {
	return &timelineService{
		db:        db,
		log:       baseLog.With("service", "TimelineService"),
		store:     store,
		generator: generator,
		plans:     planRepo,
		chats:     chatRepo,
	}
}

func (s *timelineService) Synthesize(ctx context.Context, userID, goal string, best types.Course) (string, error) {
	text := s.cachedOrGenerate(ctx, goal, best)
	if _, err := s.plans.Upsert(ctx, nil, userID, best.Name, text); err != nil {
		return "", fmt.Errorf("failed to store timeline plan: %w", err)
	}
	return text, nil
}

// cachedOrGenerate resolves the plan text goal-first: the cache is keyed by
// goal, not user, so every user asking for the same goal shares one
// generation. The fallback plan is cached exactly like a generated one.
func (s *timelineService) cachedOrGenerate(ctx context.Context, goal string, best types.Course) string {
	payload, hit, err := s.store.Get(ctx, cache.PurposeTimeline, goal)
	if err != nil {
		s.log.Warn("Timeline cache lookup failed", "goal", goal, "error", err)
	} else if hit {
		s.log.Info("Using cached timeline", "goal", goal)
		return payload
	}

	text, err := s.generator.GenerateText(ctx, synthesisPrompt(goal, best))
	if err != nil {
		s.log.Warn("Failed to generate timeline, using fallback plan", "goal", goal, "error", err)
		text = plan.Fallback(goal)
	}

	if err := s.store.Put(ctx, cache.PurposeTimeline, goal, text); err != nil {
		s.log.Warn("Failed to cache timeline", "goal", goal, "error", err)
	}
	return text
}

func (s *timelineService) GetPlan(ctx context.Context, userID, courseName string) (string, error) {
	row, err := s.plans.GetByUserAndCourse(ctx, nil, userID, courseName)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", ErrPlanNotFound
	}
	return row.Data, nil
}

func (s *timelineService) Command(ctx context.Context, userID, courseName, utterance string) (string, string, error) {
	row, err := s.plans.GetByUserAndCourse(ctx, nil, userID, courseName)
	if err != nil {
		return "", "", err
	}
	if row == nil {
		return "", "", ErrPlanNotFound
	}

	doc := plan.Parse(row.Data)
	res := plan.Interpret(utterance, doc.Steps)

	updated := row.Data
	if res.Mutated {
		doc.Steps = res.Steps
		updated = doc.Render()
		if _, err := s.plans.Upsert(ctx, nil, userID, courseName, updated); err != nil {
			return "", "", fmt.Errorf("failed to store updated plan: %w", err)
		}
	}

	s.recordChat(ctx, userID, courseName, utterance, res.Message)
	return res.Message, updated, nil
}

func (s *timelineService) AssistantRewrite(ctx context.Context, userID, courseName, request string) (string, string, error) {
	row, err := s.plans.GetByUserAndCourse(ctx, nil, userID, courseName)
	if err != nil {
		return "", "", err
	}
	if row == nil {
		return "", "", ErrPlanNotFound
	}

	text, err := s.generator.GenerateText(ctx, rewritePrompt(row.Data, request))
	if err != nil {
		s.log.Warn("Assistant rewrite failed, plan unchanged", "course", courseName, "error", err)
		message := fmt.Sprintf("Error updating timeline: %v", err)
		s.recordChat(ctx, userID, courseName, request, message)
		return message, row.Data, nil
	}

	if _, err := s.plans.Upsert(ctx, nil, userID, courseName, text); err != nil {
		return "", "", fmt.Errorf("failed to store rewritten plan: %w", err)
	}

	message := "Timeline updated based on your request."
	s.recordChat(ctx, userID, courseName, request, message)
	return message, text, nil
}

func (s *timelineService) History(ctx context.Context, userID, courseName string) ([]*types.ChatLog, error) {
	return s.chats.ListByUserAndCourse(ctx, nil, userID, courseName)
}

// recordChat is best-effort: a failed history write never fails the exchange.
func (s *timelineService) recordChat(ctx context.Context, userID, courseName, utterance, response string) {
	entry := &types.ChatLog{
		ID:         uuid.New(),
		UserID:     userID,
		CourseName: courseName,
		Utterance:  utterance,
		Response:   response,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.chats.Create(ctx, nil, []*types.ChatLog{entry}); err != nil {
		s.log.Warn("Failed to record chat exchange", "course", courseName, "error", err)
	}
}

func synthesisPrompt(goal string, best types.Course) string {
	return fmt.Sprintf(
		"Create a professional learning timeline for mastering '%s' using '%s' by %s (%s). "+
			"Level: %s, Workload: %s, Pricing: %s. "+
			"Return the timeline as a Markdown table with EXACTLY these columns: "+
			"Week/Phase | Topic/Skill | Practical Task | Estimated Duration. "+
			"Each row should represent a week or major topic. "+
			"After the main timeline table, add two more Markdown tables: "+
			"1. '### Career Options' table with columns: Role | Description "+
			"2. '### Next Steps' table with columns: Learning Path | Description "+
			"DO NOT include any introductory text, explanations, or text outside the tables. "+
			"ONLY output the Markdown tables, nothing else. "+
			"DO NOT wrap the response in markdown code blocks (do not use ```markdown or ```).",
		goal, best.Name, best.Provider, best.Institution,
		best.Level, best.Workload, best.Pricing,
	)
}

func rewritePrompt(planText, request string) string {
	return fmt.Sprintf(
		"Here is the current learning timeline in Markdown table format:\n\n%s\n\n"+
			"Modify this timeline based on the user's request: '%s'. "+
			"IMPORTANT: Maintain the exact same Markdown table format with columns: "+
			"Week/Phase | Topic/Skill | Practical Task | Estimated Duration. "+
			"Only modify the content within the table cells. Do not change the table structure. "+
			"Also maintain the Career Options and Next Steps tables if they exist. "+
			"Return ONLY the complete updated Markdown tables, no additional text or explanations. "+
			"DO NOT wrap the response in markdown code blocks (do not use ```markdown or ```).",
		planText, request,
	)
}
