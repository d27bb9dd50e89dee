package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/membership/qrcodes/controller"
	"specsnexus_backend/internals/helpers/r2"
)

// QRCodeUserRoutes lets members fetch the QR for their chosen channel.
func QRCodeUserRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewQRCodeController(db, storage)

	api.Get("/qrcodes/:payment_type", ctrl.GetQRCode)
}

// QRCodeOfficerRoutes lets officers manage QR images.
func QRCodeOfficerRoutes(api fiber.Router, db *gorm.DB, storage *r2.Service) {
	ctrl := controller.NewQRCodeController(db, storage)

	api.Get("/qrcodes/:payment_type", ctrl.GetQRCode)
	api.Put("/qrcodes/:payment_type", ctrl.UploadQRCode)
}
