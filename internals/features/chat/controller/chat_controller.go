package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/configs"
	"specsnexus_backend/internals/features/chat/service"
	helper "specsnexus_backend/internals/helpers"
)

type ChatController struct {
	Service *service.ChatService
}

func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{Service: service.NewChatService(db, configs.OpenRouter)}
}

var validate = validator.New()

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// Chat answers a member's question grounded in their own data.
func (ctrl *ChatController) Chat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	reply, err := ctrl.Service.Reply(c.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrAssistantNotConfigured) {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Assistant is not configured")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get assistant response")
	}

	return helper.JsonOK(c, "Assistant replied successfully", fiber.Map{"response": reply})
}
