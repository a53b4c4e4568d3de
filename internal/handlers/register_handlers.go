package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/middleware"
	"github.com/soketoanvn/vn_ledger_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceProvider,
) {
	registerCustomValidators()

	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg)

	// API v1 routes behind the auth middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceProvider,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.ChartSvc, services.LedgerSvc)
	registerEntryRoutes(v1, services.JournalSvc)
	registerPeriodRoutes(v1, services.PeriodSvc)
	registerReportRoutes(v1, services.ReportingSvc)
	registerClosingRoutes(v1, services.ClosingSvc)
}

// registerCustomValidators installs the acctcode binding rule: 3 to 6 digits,
// the shape of a statutory account code. Chart membership is checked in the
// service layer, not here.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("acctcode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) < 3 || len(code) > 6 {
			return false
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
