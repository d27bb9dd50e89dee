package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/users/controller"
	"specsnexus_backend/internals/middlewares"
)

// UserAuthRoutes registers public auth endpoints.
func UserAuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}

// UserRoutes registers member-authenticated profile endpoints.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/me", ctrl.GetProfile)
	users.Put("/me", ctrl.UpdateProfile)
}
