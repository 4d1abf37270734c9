package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/aquademy/coachcore-backend/internal/http/handlers"
	httpMW "github.com/aquademy/coachcore-backend/internal/http/middleware"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler      *httpH.HealthHandler
	CatalogHandler     *httpH.CatalogHandler
	ScoreRecordHandler *httpH.ScoreRecordHandler
	EligibilityHandler *httpH.EligibilityHandler
	AdvisoryHandler    *httpH.AdvisoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("coachcore-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.Log))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.CatalogHandler != nil {
			api.GET("/categories", cfg.CatalogHandler.ListCategories)
			api.GET("/categories/:category/dimensions", cfg.CatalogHandler.ListDimensions)
		}

		if cfg.ScoreRecordHandler != nil {
			api.POST("/scores/preview", cfg.ScoreRecordHandler.Preview)

			cohorts := api.Group("/cohorts/:cohort_id")
			cohorts.POST("/score", cfg.ScoreRecordHandler.Create)
			cohorts.PUT("/score", cfg.ScoreRecordHandler.Update)
			cohorts.GET("/score", cfg.ScoreRecordHandler.Get)
			cohorts.DELETE("/score", cfg.ScoreRecordHandler.Delete)

			if cfg.EligibilityHandler != nil {
				cohorts.GET("/eligible-coaches", cfg.EligibilityHandler.EligibleCoaches)
			}
			if cfg.AdvisoryHandler != nil {
				cohorts.POST("/score/suggest", cfg.AdvisoryHandler.SuggestDimensions)
				cohorts.GET("/coach-ranking", cfg.AdvisoryHandler.CoachRanking)
			}
		}
	}

	return r
}
