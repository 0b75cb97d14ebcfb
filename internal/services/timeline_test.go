package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnsphere/learnsphere-backend/internal/cache"
	"github.com/learnsphere/learnsphere-backend/internal/plan"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

type fakeGenerator struct {
	fn    func(prompt string) (string, error)
	calls int
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.calls++
	return g.fn(prompt)
}

type memPlanRepo struct {
	plans map[string]string
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: map[string]string{}}
}

func (r *memPlanRepo) GetByUserAndCourse(_ context.Context, _ *gorm.DB, userID, courseName string) (*types.TimelinePlan, error) {
	data, ok := r.plans[userID+"/"+courseName]
	if !ok {
		return nil, nil
	}
	return &types.TimelinePlan{ID: uuid.New(), UserID: userID, CourseName: courseName, Data: data}, nil
}

func (r *memPlanRepo) Upsert(_ context.Context, _ *gorm.DB, userID, courseName, data string) (*types.TimelinePlan, error) {
	r.plans[userID+"/"+courseName] = data
	return &types.TimelinePlan{ID: uuid.New(), UserID: userID, CourseName: courseName, Data: data, UpdatedAt: time.Now().UTC()}, nil
}

type memChatRepo struct {
	logs []*types.ChatLog
}

func (r *memChatRepo) Create(_ context.Context, _ *gorm.DB, logs []*types.ChatLog) ([]*types.ChatLog, error) {
	r.logs = append(r.logs, logs...)
	return logs, nil
}

func (r *memChatRepo) ListByUserAndCourse(_ context.Context, _ *gorm.DB, userID, courseName string) ([]*types.ChatLog, error) {
	var out []*types.ChatLog
	for _, l := range r.logs {
		if l.UserID == userID && l.CourseName == courseName {
			out = append(out, l)
		}
	}
	return out, nil
}

func newTestTimelineService(t *testing.T, store cache.Store, gen *fakeGenerator, plans *memPlanRepo, chats *memChatRepo) TimelineService {
	t.Helper()
	return NewTimelineService(nil, testLogger(t), store, gen, plans, chats)
}

const storedPlan = `| Week/Phase | Topic/Skill | Practical Task | Estimated Duration |
|------------|-------------|----------------|-------------------|
| Week 1 | Basics | Setup environment | 1 Week |
| Week 2 | Core | Build projects | 2 Weeks |`

func TestSynthesize_StoresGeneratedPlanAndCachesByGoal(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{fn: func(string) (string, error) { return storedPlan, nil }}
	plans := newMemPlanRepo()
	svc := newTestTimelineService(t, store, gen, plans, &memChatRepo{})

	best := types.Course{Name: "Go Course", Provider: "P"}
	text, err := svc.Synthesize(context.Background(), "u1", "go", best)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != storedPlan {
		t.Fatalf("unexpected plan text:\n%s", text)
	}
	if plans.plans["u1/Go Course"] != storedPlan {
		t.Fatalf("plan not stored under (user, course)")
	}
	if payload, hit, _ := store.Get(context.Background(), cache.PurposeTimeline, "go"); !hit || payload != storedPlan {
		t.Fatalf("plan not cached by goal")
	}
}

func TestSynthesize_GeneratorFailureCachesFallbackIdentically(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{fn: func(string) (string, error) { return "", errors.New("quota exceeded") }}
	plans := newMemPlanRepo()
	svc := newTestTimelineService(t, store, gen, plans, &memChatRepo{})

	text, err := svc.Synthesize(context.Background(), "u1", "Rust", types.Course{Name: "Rust 101", Provider: "P"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != plan.Fallback("Rust") {
		t.Fatalf("expected fallback plan, got:\n%s", text)
	}
	payload, hit, _ := store.Get(context.Background(), cache.PurposeTimeline, "Rust")
	if !hit || payload != text {
		t.Fatalf("fallback plan must be cached like a generated one")
	}
}

func TestSynthesize_CacheHitSkipsGenerator(t *testing.T) {
	store := newFakeStore()
	if err := store.Put(context.Background(), cache.PurposeTimeline, "go", storedPlan); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	gen := &fakeGenerator{fn: func(string) (string, error) { return "", errors.New("must not be called") }}
	svc := newTestTimelineService(t, store, gen, newMemPlanRepo(), &memChatRepo{})

	text, err := svc.Synthesize(context.Background(), "u2", "go", types.Course{Name: "Go Course", Provider: "P"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator ran despite cache hit")
	}
	if text != storedPlan {
		t.Fatalf("unexpected plan text:\n%s", text)
	}
}

func TestCommand_MutatingUtterancePersistsUpdatedPlan(t *testing.T) {
	plans := newMemPlanRepo()
	plans.plans["u1/Go Course"] = storedPlan
	chats := &memChatRepo{}
	svc := newTestTimelineService(t, newFakeStore(), &fakeGenerator{fn: func(string) (string, error) { return "", nil }}, plans, chats)

	message, updated, err := svc.Command(context.Background(), "u1", "Go Course", "delete step 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(message, "Removed step 1") {
		t.Fatalf("unexpected message: %q", message)
	}
	if strings.Contains(updated, "| Week 1 | Basics |") {
		t.Fatalf("deleted row still present:\n%s", updated)
	}
	if plans.plans["u1/Go Course"] != updated {
		t.Fatalf("updated plan not persisted")
	}
	if len(chats.logs) != 1 || chats.logs[0].Utterance != "delete step 1" {
		t.Fatalf("exchange not logged: %+v", chats.logs)
	}
}

func TestCommand_UnmatchedUtteranceLeavesPlanUntouched(t *testing.T) {
	plans := newMemPlanRepo()
	plans.plans["u1/Go Course"] = storedPlan
	chats := &memChatRepo{}
	svc := newTestTimelineService(t, newFakeStore(), &fakeGenerator{fn: func(string) (string, error) { return "", nil }}, plans, chats)

	message, updated, err := svc.Command(context.Background(), "u1", "Go Course", "thanks!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(message, "Received your request:") {
		t.Fatalf("unexpected message: %q", message)
	}
	if updated != storedPlan {
		t.Fatalf("plan text changed on a non-mutating utterance")
	}
	if plans.plans["u1/Go Course"] != storedPlan {
		t.Fatalf("stored plan changed on a non-mutating utterance")
	}
	if len(chats.logs) != 1 {
		t.Fatalf("exchange not logged")
	}
}

func TestCommand_MissingPlanIsNotFound(t *testing.T) {
	svc := newTestTimelineService(t, newFakeStore(), &fakeGenerator{fn: func(string) (string, error) { return "", nil }}, newMemPlanRepo(), &memChatRepo{})

	_, _, err := svc.Command(context.Background(), "u1", "Unknown Course", "delete step 1")
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestAssistantRewrite_SuccessStoresResponseVerbatim(t *testing.T) {
	rewritten := storedPlan + "\n| Week 3 | Extra | Review | 1 Week |"
	plans := newMemPlanRepo()
	plans.plans["u1/Go Course"] = storedPlan
	gen := &fakeGenerator{fn: func(prompt string) (string, error) {
		if !strings.Contains(prompt, storedPlan) {
			t.Fatalf("prompt missing current plan")
		}
		return rewritten, nil
	}}
	svc := newTestTimelineService(t, newFakeStore(), gen, plans, &memChatRepo{})

	message, updated, err := svc.AssistantRewrite(context.Background(), "u1", "Go Course", "add a review week")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "Timeline updated based on your request." {
		t.Fatalf("unexpected message: %q", message)
	}
	if updated != rewritten || plans.plans["u1/Go Course"] != rewritten {
		t.Fatalf("rewritten plan not stored verbatim")
	}
}

func TestAssistantRewrite_FailureLeavesPlanUnchanged(t *testing.T) {
	plans := newMemPlanRepo()
	plans.plans["u1/Go Course"] = storedPlan
	chats := &memChatRepo{}
	gen := &fakeGenerator{fn: func(string) (string, error) { return "", errors.New("model overloaded") }}
	svc := newTestTimelineService(t, newFakeStore(), gen, plans, chats)

	message, updated, err := svc.AssistantRewrite(context.Background(), "u1", "Go Course", "make it shorter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(message, "Error updating timeline:") {
		t.Fatalf("unexpected message: %q", message)
	}
	if updated != storedPlan || plans.plans["u1/Go Course"] != storedPlan {
		t.Fatalf("plan changed on generator failure")
	}
	if len(chats.logs) != 1 {
		t.Fatalf("failed exchange must still be logged")
	}
}
