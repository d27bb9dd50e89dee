package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/events/controller"
	"specsnexus_backend/internals/helpers/r2"
)

// EventUserRoutes registers member-facing event endpoints.
func EventUserRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewEventController(db, storage)

	events := api.Group("/events")
	events.Get("/", ctrl.ListEvents)
	events.Post("/:id/join", ctrl.JoinEvent)
	events.Delete("/:id/join", ctrl.LeaveEvent)
}

// EventOfficerRoutes registers officer-facing event management.
func EventOfficerRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewEventController(db, storage)

	events := api.Group("/events")
	events.Get("/", ctrl.ListAllEvents)
	events.Post("/", ctrl.CreateEvent)
	events.Put("/:id", ctrl.UpdateEvent)
	events.Put("/:id/image", ctrl.UploadEventImage)
	events.Delete("/:id", ctrl.ArchiveEvent)
	events.Get("/:id/participants", ctrl.ListParticipants)
}
