package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/announcements/controller"
	"specsnexus_backend/internals/helpers/r2"
)

// AnnouncementUserRoutes lets members read announcements.
func AnnouncementUserRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewAnnouncementController(db, storage)

	api.Get("/announcements", ctrl.ListAnnouncements)
}

// AnnouncementOfficerRoutes lets officers manage announcements.
func AnnouncementOfficerRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewAnnouncementController(db, storage)

	announcements := api.Group("/announcements")
	announcements.Get("/", ctrl.ListAnnouncements)
	announcements.Post("/", ctrl.CreateAnnouncement)
	announcements.Put("/:id", ctrl.UpdateAnnouncement)
	announcements.Put("/:id/image", ctrl.UploadAnnouncementImage)
	announcements.Delete("/:id", ctrl.ArchiveAnnouncement)
}
