package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquademy/coachcore-backend/internal/http/response"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/services"
)

// AdvisoryHandler serves the two AI-assisted endpoints. Both are read-only:
// suggestions land in the caller's draft and rankings never persist an
// assignment.
type AdvisoryHandler struct {
	aiAssistService     services.AIAssistService
	coachRankingService services.CoachRankingService
}

func NewAdvisoryHandler(
	aiAssistService services.AIAssistService,
	coachRankingService services.CoachRankingService,
) *AdvisoryHandler {
	return &AdvisoryHandler{
		aiAssistService:     aiAssistService,
		coachRankingService: coachRankingService,
	}
}

type suggestRequest struct {
	Category string              `json:"category"`
	Draft    *scoring.ScoreDraft `json:"draft,omitempty"`
}

// POST /api/cohorts/:cohort_id/score/suggest
// When the caller sends its current draft, the suggestion is merged into a
// copy of it; otherwise a fresh draft for the category is used.
func (h *AdvisoryHandler) SuggestDimensions(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, err := scoring.ParseCategory(req.Category)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	suggestion, err := h.aiAssistService.SuggestDimensions(c.Request.Context(), cohortID, category)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	draft := scoring.NewDraft(category)
	if req.Draft != nil && req.Draft.Category == category {
		draft = *req.Draft
	}
	merged := scoring.ApplySuggestion(draft, suggestion.Dimensions)

	response.RespondOK(c, gin.H{
		"suggestion": suggestion,
		"draft":      merged,
	})
}

// GET /api/cohorts/:cohort_id/coach-ranking
func (h *AdvisoryHandler) CoachRanking(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	rankings, err := h.coachRankingService.RankCoaches(c.Request.Context(), cohortID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rankings": rankings})
}
