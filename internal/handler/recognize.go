package handler

import (
	"context"
	"errors"
	"net/http"

	"recognizer/internal/luis"
	"recognizer/internal/model"
	"recognizer/internal/service"

	"github.com/gin-gonic/gin"
)

// RecognizeHandler handles recognition HTTP requests
type RecognizeHandler struct {
	recognizeService *service.RecognizeService
}

// NewRecognizeHandler creates a new recognition handler
func NewRecognizeHandler(recognizeService *service.RecognizeService) *RecognizeHandler {
	return &RecognizeHandler{
		recognizeService: recognizeService,
	}
}

// Recognize handles POST /api/v1/recognize
func (h *RecognizeHandler) Recognize(c *gin.Context) {
	var req model.RecognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.recognizeService.Recognize(c.Request.Context(), &req)
	if err != nil {
		status, msg := mapRecognizeError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, response)
}

// mapRecognizeError translates client errors to HTTP statuses. Upstream
// failures are a gateway problem, not ours.
func mapRecognizeError(err error) (int, string) {
	var httpErr *luis.HTTPError
	var parseErr *luis.ParseError

	switch {
	case errors.As(err, &httpErr):
		return http.StatusBadGateway, err.Error()
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, context.Canceled):
		// Client went away; 499 is the conventional status for it
		return 499, "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream request timed out"
	default:
		return http.StatusInternalServerError, "Recognition failed: " + err.Error()
	}
}
