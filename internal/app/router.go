package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/aquademy/coachcore-backend/internal/http"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:                log,
		HealthHandler:      handlerset.Health,
		CatalogHandler:     handlerset.Catalog,
		ScoreRecordHandler: handlerset.ScoreRecord,
		EligibilityHandler: handlerset.Eligibility,
		AdvisoryHandler:    handlerset.Advisory,
	})
}
