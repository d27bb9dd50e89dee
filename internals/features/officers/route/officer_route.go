package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/officers/controller"
	"specsnexus_backend/internals/middlewares"
)

// OfficerAuthRoutes registers the public officer login endpoint.
func OfficerAuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewOfficerController(db)

	api.Post("/auth/officer-login", middlewares.LoginRateLimiter(), ctrl.Login)
}

// OfficerRoutes registers officer account management.
func OfficerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewOfficerController(db)

	officers := api.Group("/officers")
	officers.Get("/", ctrl.ListOfficers)
	officers.Post("/", ctrl.CreateOfficer)
	officers.Post("/promote", ctrl.PromoteUsers)
	officers.Put("/:id", ctrl.UpdateOfficer)
	officers.Delete("/:id", ctrl.ArchiveOfficer)
}
