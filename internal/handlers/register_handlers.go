package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/modulerp/ledgercore/internal/core/ports/services"
	"github.com/modulerp/ledgercore/internal/middleware"
	"github.com/modulerp/ledgercore/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerJournalEntryRoutes(v1, services.JournalEntry)
	registerUniversalJournalRoutes(v1, services.UniversalJournal, cfg.ExportBatchSize)
}
