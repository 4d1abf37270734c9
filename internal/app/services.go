package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/scoring"
	"github.com/aquademy/coachcore-backend/internal/services"
)

type Services struct {
	ScoreRecord  services.ScoreRecordService
	Eligibility  services.EligibilityService
	AIAssist     services.AIAssistService
	CoachRanking services.CoachRankingService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	bands, err := scoring.LoadPayBandTable(cfg.PayBandConfigPath)
	if err != nil {
		return Services{}, fmt.Errorf("load pay-band policy: %w", err)
	}
	calculator, err := scoring.NewCalculator(bands)
	if err != nil {
		return Services{}, fmt.Errorf("init calculator: %w", err)
	}

	advisor := services.NewOpenAIAdvisor(log, clients.OpenAI)

	scoreRecord := services.NewScoreRecordService(db, log, reposet.ScoreRecord, calculator, clients.Cohort)
	eligibility := services.NewEligibilityService(log, reposet.ScoreRecord, clients.Roster)
	aiAssist := services.NewAIAssistService(log, clients.Cohort, advisor)
	coachRanking := services.NewCoachRankingService(log, reposet.ScoreRecord, eligibility, clients.Cohort, advisor)

	return Services{
		ScoreRecord:  scoreRecord,
		Eligibility:  eligibility,
		AIAssist:     aiAssist,
		CoachRanking: coachRanking,
	}, nil
}
