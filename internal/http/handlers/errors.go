package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquademy/coachcore-backend/internal/http/response"
	"github.com/aquademy/coachcore-backend/internal/scoring"
)

// respondDomainError maps the engine's error taxonomy onto HTTP. Every
// handler funnels service errors through here so the wire contract stays
// consistent across endpoints.
func respondDomainError(c *gin.Context, err error) {
	var invalid *scoring.InvalidScoreInputError
	switch {
	case errors.As(err, &invalid):
		response.RespondErrorDetails(c, http.StatusBadRequest, "invalid_score_input", err, invalid.Issues)
	case errors.Is(err, scoring.ErrUnknownCategory):
		response.RespondError(c, http.StatusBadRequest, "unknown_category", err)
	case errors.Is(err, scoring.ErrConflict):
		response.RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, scoring.ErrNotScored):
		response.RespondError(c, http.StatusConflict, "not_scored", err)
	case errors.Is(err, scoring.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, scoring.ErrAdviceUnavailable):
		response.RespondError(c, http.StatusServiceUnavailable, "advice_unavailable", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
