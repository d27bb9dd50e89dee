package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	officerModel "specsnexus_backend/internals/features/officers/model"
)

// OfficerMiddleware guards officer-only routes.
func OfficerMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, err := parseClaims(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}
		if role := claimRole(claims); role != RoleOfficer {
			return fiber.NewError(fiber.StatusForbidden, "Officer access required")
		}

		officerID, err := extractSubjectID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing officer ID")
		}

		var officer officerModel.OfficerModel
		if err := db.Select("id").Where("archived = ?", false).First(&officer, officerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Officer not found")
			}
			log.Println("[ERROR] officer lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals("officer_id", officerID)
		return c.Next()
	}
}
