package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/membership/clearances/controller"
	"specsnexus_backend/internals/helpers/r2"
)

// ClearanceUserRoutes registers member-facing clearance endpoints.
func ClearanceUserRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewClearanceController(db, storage)

	clearances := api.Group("/clearances")
	clearances.Get("/", ctrl.ListMyClearances)
	clearances.Put("/:id/receipt", ctrl.UpdateReceipt)
}

// ClearanceOfficerRoutes registers officer-facing clearance management.
func ClearanceOfficerRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewClearanceController(db, storage)

	clearances := api.Group("/clearances")
	clearances.Get("/", ctrl.ListClearances)
	clearances.Post("/requirements", ctrl.RollOutRequirement)
	clearances.Put("/requirements/amount", ctrl.UpdateAmount)
	clearances.Put("/:id/verify", ctrl.VerifyClearance)
	clearances.Put("/:id/archive", ctrl.ArchiveClearance)
}
