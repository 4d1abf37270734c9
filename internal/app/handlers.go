package app

import (
	httpH "github.com/aquademy/coachcore-backend/internal/http/handlers"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Catalog     *httpH.CatalogHandler
	ScoreRecord *httpH.ScoreRecordHandler
	Eligibility *httpH.EligibilityHandler
	Advisory    *httpH.AdvisoryHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Catalog:     httpH.NewCatalogHandler(),
		ScoreRecord: httpH.NewScoreRecordHandler(serviceset.ScoreRecord),
		Eligibility: httpH.NewEligibilityHandler(serviceset.Eligibility),
		Advisory:    httpH.NewAdvisoryHandler(serviceset.AIAssist, serviceset.CoachRanking),
	}
}
