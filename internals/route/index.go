package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsRoute "specsnexus_backend/internals/features/analytics/route"
	announcementRoute "specsnexus_backend/internals/features/announcements/route"
	chatRoute "specsnexus_backend/internals/features/chat/route"
	eventRoute "specsnexus_backend/internals/features/events/route"
	clearanceRoute "specsnexus_backend/internals/features/membership/clearances/route"
	qrcodeRoute "specsnexus_backend/internals/features/membership/qrcodes/route"
	officerRoute "specsnexus_backend/internals/features/officers/route"
	userRoute "specsnexus_backend/internals/features/users/route"
	"specsnexus_backend/internals/helpers/r2"
	"specsnexus_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the full API surface in three tiers: public auth,
// member endpoints behind the user token, and officer endpoints behind
// the officer token.
func SetupRoutes(app *fiber.App, db *gorm.DB, storage *r2.Service) {
	api := app.Group("/api")

	// Public
	userRoute.UserAuthRoutes(api, db)
	officerRoute.OfficerAuthRoutes(api, db)

	// Officer. Registered before the member tier so the member guard,
	// which matches the whole /api prefix, never sees officer traffic.
	officer := api.Group("/officer", auth.OfficerMiddleware(db))
	officerRoute.OfficerRoutes(officer, db)
	clearanceRoute.ClearanceOfficerRoutes(officer, db, storage)
	qrcodeRoute.QRCodeOfficerRoutes(officer, db, storage)
	eventRoute.EventOfficerRoutes(officer, db, storage)
	announcementRoute.AnnouncementOfficerRoutes(officer, db, storage)
	analyticsRoute.AnalyticsOfficerRoutes(officer, db)

	// Member
	user := api.Group("/", auth.UserMiddleware(db))
	userRoute.UserRoutes(user, db)
	clearanceRoute.ClearanceUserRoutes(user, db, storage)
	qrcodeRoute.QRCodeUserRoutes(user, db, storage)
	eventRoute.EventUserRoutes(user, db, storage)
	announcementRoute.AnnouncementUserRoutes(user, db, storage)
	chatRoute.ChatRoutes(user, db)
}
