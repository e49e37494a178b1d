package handlers

import (
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/dteedee/MEDIX-sub004/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// authed middleware runs on the /api/v1 group after authentication.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	checks map[string]HealthCheck,
	authed ...gin.HandlerFunc,
) {
	RegisterValidators()

	// Add health check route
	r.GET("/health", healthHandler(checks))

	// The gateway webhook carries no bearer token.
	public := r.Group("/api/v1")
	registerPaymentCallbackRoutes(public, services.TopUp)

	setupAPIV1Routes(r, cfg, services, authed)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates
// to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authed []gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}, authed...)...)
	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))

	registerAvailabilityRoutes(v1, services.Availability, cfg.ClinicTimezone)
	registerAppointmentRoutes(v1, services.Appointment, services.Booking, services.Cancellation)
	registerWalletRoutes(v1, services.Ledger, services.TopUp)
	registerWithdrawalRoutes(v1, admin, services.Withdrawal)
	registerAdminRoutes(admin, services.DoctorStats, services.Ledger)
}
