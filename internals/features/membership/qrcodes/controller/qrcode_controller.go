package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/constants"
	"specsnexus_backend/internals/features/membership/qrcodes/model"
	helper "specsnexus_backend/internals/helpers"
	"specsnexus_backend/internals/helpers/r2"
)

type QRCodeController struct {
	DB      *gorm.DB
	Storage *r2.Service
}

func NewQRCodeController(db *gorm.DB, storage *r2.Service) *QRCodeController {
	return &QRCodeController{DB: db, Storage: storage}
}

// GetQRCode returns the active QR image for a cashless payment type.
// Cash is accepted at the office and has no QR to serve.
func (ctrl *QRCodeController) GetQRCode(c *fiber.Ctx) error {
	paymentType := c.Params("payment_type")
	switch paymentType {
	case constants.PaymentTypeGcash, constants.PaymentTypePaymaya:
	case constants.PaymentTypeCash:
		return helper.JsonError(c, fiber.StatusBadRequest, "Cash payments do not use a QR code")
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown payment type")
	}

	var qr model.QRCodeModel
	err := ctrl.DB.Where("payment_type = ?", paymentType).First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "No QR code uploaded for this payment type")
	}
	if err != nil {
		log.Println("[ERROR] Failed to load QR code for", paymentType, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch QR code")
	}
	return helper.JsonOK(c, "QR code fetched successfully", qr)
}

// UploadQRCode replaces the QR image for a payment type.
// Multipart fields: image (file), account_name (optional).
func (ctrl *QRCodeController) UploadQRCode(c *fiber.Ctx) error {
	paymentType := c.Params("payment_type")
	switch paymentType {
	case constants.PaymentTypeGcash, constants.PaymentTypePaymaya:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown payment type")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "QR image file is required")
	}
	if ctrl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	url, err := ctrl.Storage.UploadImage(c.Context(), fileHeader, "qrcodes")
	if err != nil {
		if errors.Is(err, r2.ErrUnsupportedImage) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Println("[ERROR] Failed to upload QR image for", paymentType, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload QR code")
	}

	var accountName *string
	if v := c.FormValue("account_name"); v != "" {
		accountName = &v
	}

	var qr model.QRCodeModel
	err = ctrl.DB.Where("payment_type = ?", paymentType).First(&qr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		qr = model.QRCodeModel{PaymentType: paymentType, ImageURL: url, AccountName: accountName}
		if err := ctrl.DB.Create(&qr).Error; err != nil {
			log.Println("[ERROR] Failed to create QR code row for", paymentType, ":", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save QR code")
		}
		return helper.JsonCreated(c, "QR code uploaded successfully", qr)
	case err != nil:
		log.Println("[ERROR] Failed to load QR code row for", paymentType, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save QR code")
	}

	updates := map[string]interface{}{"image_url": url}
	if accountName != nil {
		updates["account_name"] = *accountName
	}
	if err := ctrl.DB.Model(&qr).Updates(updates).Error; err != nil {
		log.Println("[ERROR] Failed to update QR code row for", paymentType, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save QR code")
	}
	if err := ctrl.DB.First(&qr, qr.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save QR code")
	}
	return helper.JsonUpdated(c, "QR code updated successfully", qr)
}
