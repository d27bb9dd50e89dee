package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"specsnexus_backend/internals/constants"
	"specsnexus_backend/internals/features/users/dto"
	"specsnexus_backend/internals/features/users/model"
	helper "specsnexus_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var validate = validator.New()

// =============================
// Auth
// =============================

func (ctrl *UserController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Year != nil && *req.Year != "" && !constants.IsValidYear(*req.Year) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year classification")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.StudentNumber = strings.TrimSpace(req.StudentNumber)

	var count int64
	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("email = ? OR student_number = ?", req.Email, req.StudentNumber).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] Failed to check existing user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email or student number already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] Failed to hash password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}

	user := model.UserModel{
		Email:         req.Email,
		Password:      string(hashed),
		StudentNumber: req.StudentNumber,
		FullName:      strings.TrimSpace(req.FullName),
		Year:          req.Year,
		Block:         req.Block,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		log.Println("[ERROR] Failed to create user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}

	return helper.JsonCreated(c, "Registration successful", dto.ToUserResponse(user))
}

func (ctrl *UserController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	err := ctrl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		log.Println("[ERROR] Failed to look up user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	now := time.Now()
	if err := ctrl.DB.Model(&user).Update("last_active", now).Error; err != nil {
		log.Println("[WARN] Failed to touch last_active for user", user.ID, ":", err)
	}
	user.LastActive = &now

	token, err := helper.CreateAccessToken(user.ID, "member")
	if err != nil {
		log.Println("[ERROR] Failed to sign access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.ToUserResponse(user),
	})
}

// =============================
// Profile
// =============================

func (ctrl *UserController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user model.UserModel
	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		log.Println("[ERROR] Failed to load profile for user", userID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return helper.JsonOK(c, "Profile fetched successfully", dto.ToUserResponse(user))
}

func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Year != nil && *req.Year != "" && !constants.IsValidYear(*req.Year) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year classification")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		log.Println("[ERROR] Failed to load profile for user", userID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Block != nil {
		updates["block"] = *req.Block
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(&user).Updates(updates).Error; err != nil {
			log.Println("[ERROR] Failed to update profile for user", userID, ":", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
		}
	}

	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.JsonUpdated(c, "Profile updated successfully", dto.ToUserResponse(user))
}
