package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/officers/dto"
	"specsnexus_backend/internals/features/officers/model"
	userModel "specsnexus_backend/internals/features/users/model"
	helper "specsnexus_backend/internals/helpers"
)

type OfficerController struct {
	DB *gorm.DB
}

func NewOfficerController(db *gorm.DB) *OfficerController {
	return &OfficerController{DB: db}
}

var validate = validator.New()

func (ctrl *OfficerController) Login(c *fiber.Ctx) error {
	var req dto.OfficerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var officer model.OfficerModel
	err := ctrl.DB.Where("email = ? AND archived = ?",
		strings.ToLower(strings.TrimSpace(req.Email)), false).
		First(&officer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		log.Println("[ERROR] Failed to look up officer:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	if bcrypt.CompareHashAndPassword([]byte(officer.Password), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := helper.CreateAccessToken(officer.ID, "officer")
	if err != nil {
		log.Println("[ERROR] Failed to sign access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}

	return helper.JsonOK(c, "Login successful", dto.OfficerLoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Officer:     dto.ToOfficerResponse(officer),
	})
}

func (ctrl *OfficerController) ListOfficers(c *fiber.Ctx) error {
	query := ctrl.DB.Model(&model.OfficerModel{})
	if !c.QueryBool("include_archived", false) {
		query = query.Where("archived = ?", false)
	}

	var officers []model.OfficerModel
	if err := query.Order("full_name ASC").Find(&officers).Error; err != nil {
		log.Println("[ERROR] Failed to list officers:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch officers")
	}
	return helper.JsonOK(c, "Officers fetched successfully", dto.ToOfficerResponses(officers))
}

func (ctrl *OfficerController) CreateOfficer(c *fiber.Ctx) error {
	var req dto.CreateOfficerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var count int64
	if err := ctrl.DB.Model(&model.OfficerModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		log.Println("[ERROR] Failed to check existing officer:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create officer")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email already registered as an officer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] Failed to hash password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create officer")
	}

	officer := model.OfficerModel{
		Email:         email,
		Password:      string(hashed),
		FullName:      strings.TrimSpace(req.FullName),
		Position:      strings.TrimSpace(req.Position),
		StudentNumber: req.StudentNumber,
	}
	if err := ctrl.DB.Create(&officer).Error; err != nil {
		log.Println("[ERROR] Failed to create officer:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create officer")
	}
	return helper.JsonCreated(c, "Officer created successfully", dto.ToOfficerResponse(officer))
}

func (ctrl *OfficerController) UpdateOfficer(c *fiber.Ctx) error {
	officerID, err := c.ParamsInt("id")
	if err != nil || officerID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid officer id")
	}

	var req dto.UpdateOfficerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var officer model.OfficerModel
	err = ctrl.DB.First(&officer, officerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Officer not found")
	}
	if err != nil {
		log.Println("[ERROR] Failed to load officer", officerID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update officer")
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Position != nil {
		updates["position"] = strings.TrimSpace(*req.Position)
	}
	if req.Password != nil {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if herr != nil {
			log.Println("[ERROR] Failed to hash password:", herr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update officer")
		}
		updates["password"] = string(hashed)
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(&officer).Updates(updates).Error; err != nil {
			log.Println("[ERROR] Failed to update officer", officerID, ":", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update officer")
		}
	}

	if err := ctrl.DB.First(&officer, officerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update officer")
	}
	return helper.JsonUpdated(c, "Officer updated successfully", dto.ToOfficerResponse(officer))
}

// PromoteUsers creates officer accounts from existing student records,
// reusing each student's email, name and number. Students that are
// already active officers are skipped.
func (ctrl *OfficerController) PromoteUsers(c *fiber.Ctx) error {
	var req dto.PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var users []userModel.UserModel
	if err := ctrl.DB.Where("id IN ?", req.UserIDs).Find(&users).Error; err != nil {
		log.Println("[ERROR] Failed to load users for promotion:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to promote users")
	}
	if len(users) != len(req.UserIDs) {
		return helper.JsonError(c, fiber.StatusNotFound, "One or more users do not exist")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] Failed to hash password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to promote users")
	}

	var created []model.OfficerModel
	for _, user := range users {
		var count int64
		if err := ctrl.DB.Model(&model.OfficerModel{}).
			Where("email = ? AND archived = ?", user.Email, false).
			Count(&count).Error; err != nil {
			log.Println("[ERROR] Failed to check existing officer:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to promote users")
		}
		if count > 0 {
			continue
		}
		studentNumber := user.StudentNumber
		created = append(created, model.OfficerModel{
			Email:         user.Email,
			Password:      string(hashed),
			FullName:      user.FullName,
			Position:      strings.TrimSpace(req.Position),
			StudentNumber: &studentNumber,
		})
	}
	if len(created) > 0 {
		if err := ctrl.DB.Create(&created).Error; err != nil {
			log.Println("[ERROR] Failed to create promoted officers:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to promote users")
		}
	}

	log.Printf("[INFO] Promoted %d of %d requested users to officers", len(created), len(req.UserIDs))
	return helper.JsonCreated(c, "Users promoted successfully", dto.ToOfficerResponses(created))
}

// ArchiveOfficer revokes an officer account without deleting it.
func (ctrl *OfficerController) ArchiveOfficer(c *fiber.Ctx) error {
	officerID, err := c.ParamsInt("id")
	if err != nil || officerID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid officer id")
	}

	callerID := c.Locals("officer_id").(uint)
	if uint(officerID) == callerID {
		return helper.JsonError(c, fiber.StatusConflict, "Officers cannot archive their own account")
	}

	result := ctrl.DB.Model(&model.OfficerModel{}).
		Where("id = ?", officerID).
		Update("archived", true)
	if result.Error != nil {
		log.Println("[ERROR] Failed to archive officer", officerID, ":", result.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to archive officer")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Officer not found")
	}
	return helper.JsonDeleted(c, "Officer archived successfully", fiber.Map{"id": officerID})
}
