package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/announcements/dto"
	"specsnexus_backend/internals/features/announcements/model"
	helper "specsnexus_backend/internals/helpers"
	"specsnexus_backend/internals/helpers/r2"
)

type AnnouncementController struct {
	DB      *gorm.DB
	Storage *r2.Service
}

func NewAnnouncementController(db *gorm.DB, storage *r2.Service) *AnnouncementController {
	return &AnnouncementController{DB: db, Storage: storage}
}

var validate = validator.New()

// ListAnnouncements returns non-archived announcements newest first.
func (ctrl *AnnouncementController) ListAnnouncements(c *fiber.Ctx) error {
	var items []model.AnnouncementModel
	if err := ctrl.DB.Where("archived = ?", false).
		Order("date DESC").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] Failed to list announcements:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcements")
	}
	return helper.JsonOK(c, "Announcements fetched successfully", items)
}

func (ctrl *AnnouncementController) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	item := model.AnnouncementModel{
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
	}
	if err := ctrl.DB.Create(&item).Error; err != nil {
		log.Println("[ERROR] Failed to create announcement:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create announcement")
	}
	return helper.JsonCreated(c, "Announcement created successfully", item)
}

func (ctrl *AnnouncementController) UpdateAnnouncement(c *fiber.Ctx) error {
	item, err := ctrl.loadAnnouncement(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(item).Updates(updates).Error; err != nil {
			log.Println("[ERROR] Failed to update announcement", item.ID, ":", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update announcement")
		}
	}

	if err := ctrl.DB.First(item, item.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update announcement")
	}
	return helper.JsonUpdated(c, "Announcement updated successfully", item)
}

// UploadAnnouncementImage replaces the banner image. Multipart field: image.
func (ctrl *AnnouncementController) UploadAnnouncementImage(c *fiber.Ctx) error {
	item, err := ctrl.loadAnnouncement(c)
	if err != nil {
		return err
	}

	fileHeader, ferr := c.FormFile("image")
	if ferr != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Image file is required")
	}
	if ctrl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	url, uerr := ctrl.Storage.UploadImage(c.Context(), fileHeader, "announcements")
	if uerr != nil {
		if errors.Is(uerr, r2.ErrUnsupportedImage) {
			return helper.JsonError(c, fiber.StatusBadRequest, uerr.Error())
		}
		log.Println("[ERROR] Failed to upload image for announcement", item.ID, ":", uerr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload announcement image")
	}

	if err := ctrl.DB.Model(item).Update("image_url", url).Error; err != nil {
		log.Println("[ERROR] Failed to save image URL for announcement", item.ID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload announcement image")
	}
	item.ImageURL = &url
	return helper.JsonUpdated(c, "Announcement image uploaded successfully", item)
}

func (ctrl *AnnouncementController) ArchiveAnnouncement(c *fiber.Ctx) error {
	item, err := ctrl.loadAnnouncement(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.Model(item).Update("archived", true).Error; err != nil {
		log.Println("[ERROR] Failed to archive announcement", item.ID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to archive announcement")
	}
	return helper.JsonDeleted(c, "Announcement archived successfully", fiber.Map{"id": item.ID})
}

func (ctrl *AnnouncementController) loadAnnouncement(c *fiber.Ctx) (*model.AnnouncementModel, error) {
	announcementID, err := c.ParamsInt("id")
	if err != nil || announcementID <= 0 {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}

	var item model.AnnouncementModel
	err = ctrl.DB.First(&item, announcementID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
	}
	if err != nil {
		log.Println("[ERROR] Failed to load announcement", announcementID, ":", err)
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}
	return &item, nil
}
