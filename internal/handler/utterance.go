package handler

import (
	"net/http"
	"strconv"

	"recognizer/internal/service"

	"github.com/gin-gonic/gin"
)

// UtteranceHandler exposes the local utterance log
type UtteranceHandler struct {
	recognizeService *service.RecognizeService
	defaultLimit     int
	maxLimit         int
}

// NewUtteranceHandler creates a new utterance-log handler
func NewUtteranceHandler(recognizeService *service.RecognizeService, defaultLimit, maxLimit int) *UtteranceHandler {
	return &UtteranceHandler{
		recognizeService: recognizeService,
		defaultLimit:     defaultLimit,
		maxLimit:         maxLimit,
	}
}

// List handles GET /api/v1/utterances
func (h *UtteranceHandler) List(c *gin.Context) {
	if !h.recognizeService.HasLog() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Utterance log is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultLimit)))
	if err != nil || limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	response, err := h.recognizeService.ListUtterances(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list utterances: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stats handles GET /api/v1/utterances/stats
func (h *UtteranceHandler) Stats(c *gin.Context) {
	if !h.recognizeService.HasLog() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Utterance log is not configured"})
		return
	}

	stats, err := h.recognizeService.IntentStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"intents": stats})
}
