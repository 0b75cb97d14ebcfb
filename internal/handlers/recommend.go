package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/services"
)

type RecommendHandler struct {
	log         *logger.Logger
	recSvc      services.RecommendationService
	timelineSvc services.TimelineService
}

func NewRecommendHandler(log *logger.Logger, recSvc services.RecommendationService, timelineSvc services.TimelineService) *RecommendHandler {
	return &RecommendHandler{
		log:         log.With("handler", "RecommendHandler"),
		recSvc:      recSvc,
		timelineSvc: timelineSvc,
	}
}

type recommendRequest struct {
	Query string `json:"query" binding:"required"`
}

// POST /api/recommend
// Runs the full pipeline: discovery, enrichment, sentiment-weighted ranking,
// then timeline synthesis for the best candidate.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	uid := userID(c)

	courses, err := h.recSvc.Rank(c.Request.Context(), uid, req.Query)
	if errors.Is(err, services.ErrNoCourses) {
		RespondError(c, http.StatusNotFound, "no_results", err)
		return
	}
	if err != nil {
		h.log.Error("Recommend failed", "error", err, "query", req.Query)
		RespondError(c, http.StatusInternalServerError, "recommend_failed", err)
		return
	}

	best := courses[0]
	timeline, err := h.timelineSvc.Synthesize(c.Request.Context(), uid, req.Query, best)
	if err != nil {
		h.log.Error("Timeline synthesis failed", "error", err, "query", req.Query)
		RespondError(c, http.StatusInternalServerError, "timeline_failed", err)
		return
	}

	RespondOK(c, gin.H{
		"query":         req.Query,
		"best_course":   best,
		"other_courses": courses[1:],
		"timeline":      timeline,
	})
}

// GET /api/queries
func (h *RecommendHandler) ListQueries(c *gin.Context) {
	queries, err := h.recSvc.Queries(c.Request.Context(), userID(c))
	if err != nil {
		h.log.Error("ListQueries failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_queries_failed", err)
		return
	}
	RespondOK(c, gin.H{"queries": queries})
}
