package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/entrybatch/journal_entry_app/cmd/docs"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
	"github.com/entrybatch/journal_entry_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerEntryRoutes(v1, services.Entry, services.Validation, services.Workflow)
	registerBatchRoutes(v1, services.Batch, cfg.BatchMaxFileSize, uploadRateLimit(cfg))
}

// uploadRateLimit builds the rate limiting middleware for batch uploads
// from the configured rate, or nil when disabled.
func uploadRateLimit(cfg *config.Config) gin.HandlerFunc {
	if cfg.UploadRateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.UploadRateLimit)
	if err != nil {
		slog.Warn("Invalid UPLOAD_RATE_LIMIT, rate limiting disabled", slog.String("value", cfg.UploadRateLimit), slog.String("error", err.Error()))
		return nil
	}
	return middleware.RateLimit(limiter.New(memorystore.NewStore(), rate))
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
