package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/http/response"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/services"
)

type ScoreRecordHandler struct {
	scoreRecordService services.ScoreRecordService
}

func NewScoreRecordHandler(scoreRecordService services.ScoreRecordService) *ScoreRecordHandler {
	return &ScoreRecordHandler{scoreRecordService: scoreRecordService}
}

type scoreSubmission struct {
	Category        string                   `json:"category"`
	DimensionScores []scoring.DimensionScore `json:"dimension_scores"`
}

func (h *ScoreRecordHandler) parseSubmission(c *gin.Context) (scoring.ProgramCategory, []scoring.DimensionScore, bool) {
	var req scoreSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return "", nil, false
	}
	category, err := scoring.ParseCategory(req.Category)
	if err != nil {
		respondDomainError(c, err)
		return "", nil, false
	}
	return category, req.DimensionScores, true
}

func cohortIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("cohort_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, false
	}
	return id, true
}

// POST /api/scores/preview
// Stateless: returns exactly the derived values a save of the same payload
// would persist.
func (h *ScoreRecordHandler) Preview(c *gin.Context) {
	category, scores, ok := h.parseSubmission(c)
	if !ok {
		return
	}

	derived, err := h.scoreRecordService.Preview(category, scores)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"category": category,
		"derived":  derived,
	})
}

// POST /api/cohorts/:cohort_id/score
func (h *ScoreRecordHandler) Create(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	category, scores, ok := h.parseSubmission(c)
	if !ok {
		return
	}

	record, err := h.scoreRecordService.Create(c.Request.Context(), cohortID, category, scores)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"record": record})
}

// PUT /api/cohorts/:cohort_id/score
// Full replacement of category and all seven dimensions.
func (h *ScoreRecordHandler) Update(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	category, scores, ok := h.parseSubmission(c)
	if !ok {
		return
	}

	record, err := h.scoreRecordService.Update(c.Request.Context(), cohortID, category, scores)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"record": record})
}

// GET /api/cohorts/:cohort_id/score
func (h *ScoreRecordHandler) Get(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	record, err := h.scoreRecordService.Get(c.Request.Context(), cohortID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"record": record})
}

// DELETE /api/cohorts/:cohort_id/score
func (h *ScoreRecordHandler) Delete(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	if err := h.scoreRecordService.Delete(c.Request.Context(), cohortID); err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
