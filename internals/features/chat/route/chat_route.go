package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/chat/controller"
)

// ChatRoutes registers the member assistant endpoint.
func ChatRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewChatController(db)

	api.Post("/chat", ctrl.Chat)
}
