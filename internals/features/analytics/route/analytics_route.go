package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/analytics/controller"
)

// AnalyticsOfficerRoutes registers the dashboard and report endpoints.
// Both are officer-only.
func AnalyticsOfficerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAnalyticsController(db)

	analytics := api.Group("/analytics")
	analytics.Get("/dashboard", ctrl.GetDashboard)
	analytics.Get("/report/officer-dashboard", ctrl.GetOfficerDashboardReport)
}
