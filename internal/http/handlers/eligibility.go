package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aquademy/coachcore-backend/internal/http/response"
	"github.com/aquademy/coachcore-backend/internal/services"
)

type EligibilityHandler struct {
	eligibilityService services.EligibilityService
}

func NewEligibilityHandler(eligibilityService services.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilityService: eligibilityService}
}

// GET /api/cohorts/:cohort_id/eligible-coaches
func (h *EligibilityHandler) EligibleCoaches(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	coaches, err := h.eligibilityService.EligibleCoaches(c.Request.Context(), cohortID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"coaches": coaches})
}
