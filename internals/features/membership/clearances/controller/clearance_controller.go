package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/constants"
	"specsnexus_backend/internals/features/membership/clearances/dto"
	"specsnexus_backend/internals/features/membership/clearances/model"
	userModel "specsnexus_backend/internals/features/users/model"
	helper "specsnexus_backend/internals/helpers"
	"specsnexus_backend/internals/helpers/r2"
)

type ClearanceController struct {
	DB      *gorm.DB
	Storage *r2.Service
}

func NewClearanceController(db *gorm.DB, storage *r2.Service) *ClearanceController {
	return &ClearanceController{DB: db, Storage: storage}
}

var validate = validator.New()

// =============================
// Member endpoints
// =============================

// ListMyClearances returns the caller's non-archived clearance rows.
func (ctrl *ClearanceController) ListMyClearances(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var items []model.ClearanceModel
	if err := ctrl.DB.
		Where("user_id = ? AND archived = ?", userID, false).
		Order("requirement ASC").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] Failed to list clearances for user", userID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch clearances")
	}
	return helper.JsonOK(c, "Clearances fetched successfully", dto.ToClearanceResponses(items))
}

// UpdateReceipt attaches a payment receipt to the caller's clearance and
// moves it into the verification queue. Multipart fields: receipt (file),
// payment_method (gcash, paymaya or cash).
func (ctrl *ClearanceController) UpdateReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	clearanceID, err := c.ParamsInt("id")
	if err != nil || clearanceID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid clearance id")
	}

	paymentMethod := c.FormValue("payment_method")
	switch paymentMethod {
	case constants.PaymentTypeGcash, constants.PaymentTypePaymaya, constants.PaymentTypeCash:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment method")
	}

	var clearance model.ClearanceModel
	err = ctrl.DB.Where("id = ? AND user_id = ? AND archived = ?", clearanceID, userID, false).
		First(&clearance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Clearance not found")
	}
	if err != nil {
		log.Println("[ERROR] Failed to load clearance", clearanceID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update receipt")
	}
	if clearance.PaymentStatus == constants.PaymentPaid {
		return helper.JsonError(c, fiber.StatusConflict, "Clearance is already paid")
	}

	updates := map[string]interface{}{
		"payment_status": constants.PaymentVerifying,
		"status":         constants.StatusProcessing,
		"payment_method": paymentMethod,
		"payment_date":   time.Now(),
		"denial_reason":  nil,
	}

	// Cash payments are verified in person and carry no receipt image.
	if fileHeader, ferr := c.FormFile("receipt"); ferr == nil {
		if ctrl.Storage == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
		}
		url, uerr := ctrl.Storage.UploadImage(c.Context(), fileHeader, "receipts")
		if uerr != nil {
			if errors.Is(uerr, r2.ErrUnsupportedImage) {
				return helper.JsonError(c, fiber.StatusBadRequest, uerr.Error())
			}
			log.Println("[ERROR] Failed to upload receipt for clearance", clearanceID, ":", uerr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload receipt")
		}
		updates["receipt_path"] = url
	} else if paymentMethod != constants.PaymentTypeCash {
		return helper.JsonError(c, fiber.StatusBadRequest, "Receipt image is required for cashless payments")
	}

	if err := ctrl.DB.Model(&clearance).Updates(updates).Error; err != nil {
		log.Println("[ERROR] Failed to update receipt for clearance", clearanceID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update receipt")
	}

	if err := ctrl.DB.First(&clearance, clearance.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update receipt")
	}
	return helper.JsonUpdated(c, "Receipt submitted for verification", dto.ToClearanceResponse(clearance))
}

// =============================
// Officer endpoints
// =============================

// ListClearances returns all clearance rows with their owning student,
// filterable by requirement, status, payment_status and a name/number search.
func (ctrl *ClearanceController) ListClearances(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	query := ctrl.DB.Model(&model.ClearanceModel{}).Preload("User")
	if !c.QueryBool("include_archived", false) {
		query = query.Where("archived = ?", false)
	}
	if requirement := c.Query("requirement"); requirement != "" {
		query = query.Where("requirement = ?", requirement)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"user_id IN (?)",
			ctrl.DB.Model(&userModel.UserModel{}).Select("id").
				Where("full_name LIKE ? OR student_number LIKE ?", like, like),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Println("[ERROR] Failed to count clearances:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch clearances")
	}

	var items []model.ClearanceModel
	if err := query.Order("last_updated DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		log.Println("[ERROR] Failed to list clearances:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch clearances")
	}

	return helper.JsonList(c, "Clearances fetched successfully",
		dto.ToClearanceResponses(items), helper.BuildPagination(total, paging))
}

// RollOutRequirement creates a clearance row for every registered student
// that does not already have one for the requirement. Safe to re-run.
func (ctrl *ClearanceController) RollOutRequirement(c *fiber.Ctx) error {
	var req dto.RollOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !constants.IsValidRequirement(req.Requirement) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown requirement")
	}

	var userIDs []uint
	if err := ctrl.DB.Model(&userModel.UserModel{}).Pluck("id", &userIDs).Error; err != nil {
		log.Println("[ERROR] Failed to list users for roll-out:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to roll out requirement")
	}

	var existingIDs []uint
	if err := ctrl.DB.Model(&model.ClearanceModel{}).
		Where("requirement = ? AND archived = ?", req.Requirement, false).
		Pluck("user_id", &existingIDs).Error; err != nil {
		log.Println("[ERROR] Failed to list existing clearances for roll-out:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to roll out requirement")
	}
	existing := make(map[uint]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	var rows []model.ClearanceModel
	for _, userID := range userIDs {
		if _, ok := existing[userID]; ok {
			continue
		}
		rows = append(rows, model.ClearanceModel{
			UserID:        userID,
			Requirement:   req.Requirement,
			Status:        constants.StatusNotYetCleared,
			PaymentStatus: constants.PaymentNotPaid,
			Amount:        req.Amount,
		})
	}
	if len(rows) > 0 {
		if err := ctrl.DB.CreateInBatches(rows, 200).Error; err != nil {
			log.Println("[ERROR] Failed to create clearances for roll-out:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to roll out requirement")
		}
	}

	log.Printf("[INFO] Rolled out %q to %d students (%d already had it)",
		req.Requirement, len(rows), len(existingIDs))
	return helper.JsonCreated(c, "Requirement rolled out successfully", dto.RollOutResponse{
		Requirement: req.Requirement,
		Created:     int64(len(rows)),
		Skipped:     int64(len(existingIDs)),
	})
}

// VerifyClearance approves or denies a pending payment.
func (ctrl *ClearanceController) VerifyClearance(c *fiber.Ctx) error {
	clearanceID, err := c.ParamsInt("id")
	if err != nil || clearanceID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid clearance id")
	}

	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var clearance model.ClearanceModel
	err = ctrl.DB.Preload("User").First(&clearance, clearanceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Clearance not found")
	}
	if err != nil {
		log.Println("[ERROR] Failed to load clearance", clearanceID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify clearance")
	}
	if clearance.PaymentStatus != constants.PaymentVerifying {
		return helper.JsonError(c, fiber.StatusConflict, "Clearance has no pending payment to verify")
	}

	var updates map[string]interface{}
	if req.Action == "approve" {
		updates = map[string]interface{}{
			"payment_status": constants.PaymentPaid,
			"status":         constants.StatusClear,
			"approval_date":  time.Now(),
			"denial_reason":  nil,
		}
	} else {
		if req.DenialReason == nil || *req.DenialReason == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Denial reason is required")
		}
		updates = map[string]interface{}{
			"payment_status": constants.PaymentNotPaid,
			"status":         constants.StatusNotYetCleared,
			"denial_reason":  *req.DenialReason,
			"payment_method": nil,
			"payment_date":   nil,
			"receipt_path":   nil,
		}
	}

	if err := ctrl.DB.Model(&clearance).Updates(updates).Error; err != nil {
		log.Println("[ERROR] Failed to verify clearance", clearanceID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify clearance")
	}

	if err := ctrl.DB.Preload("User").First(&clearance, clearance.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify clearance")
	}
	return helper.JsonUpdated(c, "Clearance verification recorded", dto.ToClearanceResponse(clearance))
}

// UpdateAmount changes the dues amount for every row of a requirement.
func (ctrl *ClearanceController) UpdateAmount(c *fiber.Ctx) error {
	var req dto.UpdateAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !constants.IsValidRequirement(req.Requirement) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown requirement")
	}

	result := ctrl.DB.Model(&model.ClearanceModel{}).
		Where("requirement = ? AND archived = ?", req.Requirement, false).
		Update("amount", req.Amount)
	if result.Error != nil {
		log.Println("[ERROR] Failed to update amount for requirement:", result.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update amount")
	}

	return helper.JsonUpdated(c, "Amount updated successfully", fiber.Map{
		"requirement": req.Requirement,
		"amount":      req.Amount,
		"updated":     result.RowsAffected,
	})
}

// ArchiveClearance soft-deletes a clearance row.
func (ctrl *ClearanceController) ArchiveClearance(c *fiber.Ctx) error {
	clearanceID, err := c.ParamsInt("id")
	if err != nil || clearanceID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid clearance id")
	}

	result := ctrl.DB.Model(&model.ClearanceModel{}).
		Where("id = ?", clearanceID).
		Update("archived", true)
	if result.Error != nil {
		log.Println("[ERROR] Failed to archive clearance", clearanceID, ":", result.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to archive clearance")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Clearance not found")
	}
	return helper.JsonDeleted(c, "Clearance archived successfully", fiber.Map{"id": clearanceID})
}
