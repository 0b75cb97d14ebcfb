package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/services"
)

type TimelineHandler struct {
	log         *logger.Logger
	timelineSvc services.TimelineService
}

func NewTimelineHandler(log *logger.Logger, timelineSvc services.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		log:         log.With("handler", "TimelineHandler"),
		timelineSvc: timelineSvc,
	}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// GET /api/timeline/:course
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	course := c.Param("course")
	text, err := h.timelineSvc.GetPlan(c.Request.Context(), userID(c), course)
	if errors.Is(err, services.ErrPlanNotFound) {
		RespondError(c, http.StatusNotFound, "timeline_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("GetTimeline failed", "error", err, "course", course)
		RespondError(c, http.StatusInternalServerError, "load_timeline_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": course, "timeline": text})
}

// POST /api/chat/:course
// Structured edit commands against the stored plan. Unrecognized utterances
// get an acknowledgement and leave the plan untouched.
func (h *TimelineHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	course := c.Param("course")

	message, timeline, err := h.timelineSvc.Command(c.Request.Context(), userID(c), course, req.Message)
	if errors.Is(err, services.ErrPlanNotFound) {
		RespondError(c, http.StatusNotFound, "timeline_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("Chat failed", "error", err, "course", course)
		RespondError(c, http.StatusInternalServerError, "chat_failed", err)
		return
	}
	RespondOK(c, gin.H{"response": message, "timeline": timeline})
}

// POST /api/chat/:course/assist
// Free-form revision of the whole plan via the generative collaborator.
func (h *TimelineHandler) Assist(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	course := c.Param("course")

	message, timeline, err := h.timelineSvc.AssistantRewrite(c.Request.Context(), userID(c), course, req.Message)
	if errors.Is(err, services.ErrPlanNotFound) {
		RespondError(c, http.StatusNotFound, "timeline_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("Assist failed", "error", err, "course", course)
		RespondError(c, http.StatusInternalServerError, "assist_failed", err)
		return
	}
	RespondOK(c, gin.H{"response": message, "timeline": timeline})
}

// GET /api/chat/:course/history
func (h *TimelineHandler) History(c *gin.Context) {
	course := c.Param("course")
	chats, err := h.timelineSvc.History(c.Request.Context(), userID(c), course)
	if err != nil {
		h.log.Error("History failed", "error", err, "course", course)
		RespondError(c, http.StatusInternalServerError, "load_history_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": course, "chats": chats})
}
