package v1

import (
	"log/slog"

	"go-resume-backend/config"
	"go-resume-backend/internal/delivery/http/middleware"
	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/metrics"
	"go-resume-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	IngestUC      domain.IngestUsecase
	CandidateUC   domain.CandidateUsecase
	HealthUC      domain.HealthUsecase
	Schema        domain.SchemaManager
	UploadLimiter middleware.UploadLimiter
	Config        *config.Config
	Logger        *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logger.Log
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	NewHealthHandler(r, deps.HealthUC)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewUploadHandler(r, deps.IngestUC, UploadConfig{
		MaxFiles:     deps.Config.MaxUploadFiles,
		MaxFileBytes: deps.Config.MaxUploadFileBytes,
	}, deps.UploadLimiter)

	api := r.Group("/api")
	{
		NewCandidateHandler(api, deps.CandidateUC)
		NewAnalyticsHandler(api, deps.CandidateUC)
	}

	if deps.Config.EnableDBReset {
		NewAdminHandler(r, deps.Schema)
	}

	return r
}
