package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/events/dto"
	"specsnexus_backend/internals/features/events/model"
	userModel "specsnexus_backend/internals/features/users/model"
	helper "specsnexus_backend/internals/helpers"
	"specsnexus_backend/internals/helpers/r2"
)

type EventController struct {
	DB      *gorm.DB
	Storage *r2.Service
}

func NewEventController(db *gorm.DB, storage *r2.Service) *EventController {
	return &EventController{DB: db, Storage: storage}
}

var validate = validator.New()

// =============================
// Member endpoints
// =============================

// ListEvents returns non-archived events newest first, flagging the ones
// the caller has joined.
func (ctrl *EventController) ListEvents(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(uint)

	var events []model.EventModel
	if err := ctrl.DB.Preload("Participants").
		Where("archived = ?", false).
		Order("date DESC").
		Find(&events).Error; err != nil {
		log.Println("[ERROR] Failed to list events:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	now := time.Now()
	out := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		isParticipant := false
		for _, p := range event.Participants {
			if p.ID == userID {
				isParticipant = true
				break
			}
		}
		out = append(out, dto.ToEventResponse(event, now, isParticipant))
	}
	return helper.JsonOK(c, "Events fetched successfully", out)
}

// JoinEvent registers the caller, subject to the registration window.
func (ctrl *EventController) JoinEvent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	event, err := ctrl.loadEvent(c)
	if err != nil {
		return err
	}
	if !event.RegistrationOpenAt(time.Now()) {
		switch event.RegistrationStatusAt(time.Now()) {
		case model.RegistrationNotStarted:
			return helper.JsonError(c, fiber.StatusConflict, "Registration has not started yet")
		default:
			return helper.JsonError(c, fiber.StatusConflict, "Registration is closed")
		}
	}

	for _, p := range event.Participants {
		if p.ID == userID {
			return helper.JsonError(c, fiber.StatusConflict, "Already joined this event")
		}
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		log.Println("[ERROR] Failed to load user", userID, "for event join:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to join event")
	}
	if err := ctrl.DB.Model(event).Association("Participants").Append(&user); err != nil {
		log.Println("[ERROR] Failed to join event", event.ID, "for user", userID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to join event")
	}

	event.Participants = append(event.Participants, user)
	return helper.JsonOK(c, "Joined event successfully", dto.ToEventResponse(*event, time.Now(), true))
}

// LeaveEvent removes the caller's registration while the window is open.
func (ctrl *EventController) LeaveEvent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	event, err := ctrl.loadEvent(c)
	if err != nil {
		return err
	}
	if !event.RegistrationOpenAt(time.Now()) {
		return helper.JsonError(c, fiber.StatusConflict, "Registration window is closed")
	}

	joined := false
	for _, p := range event.Participants {
		if p.ID == userID {
			joined = true
			break
		}
	}
	if !joined {
		return helper.JsonError(c, fiber.StatusConflict, "Not a participant of this event")
	}

	if err := ctrl.DB.Model(event).Association("Participants").
		Delete(&userModel.UserModel{ID: userID}); err != nil {
		log.Println("[ERROR] Failed to leave event", event.ID, "for user", userID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to leave event")
	}

	remaining := event.Participants[:0]
	for _, p := range event.Participants {
		if p.ID != userID {
			remaining = append(remaining, p)
		}
	}
	event.Participants = remaining
	return helper.JsonOK(c, "Left event successfully", dto.ToEventResponse(*event, time.Now(), false))
}

// =============================
// Officer endpoints
// =============================

// ListAllEvents includes archived rows for management views.
func (ctrl *EventController) ListAllEvents(c *fiber.Ctx) error {
	query := ctrl.DB.Preload("Participants")
	if !c.QueryBool("include_archived", false) {
		query = query.Where("archived = ?", false)
	}

	var events []model.EventModel
	if err := query.Order("date DESC").Find(&events).Error; err != nil {
		log.Println("[ERROR] Failed to list events:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	now := time.Now()
	out := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.ToEventResponse(event, now, false))
	}
	return helper.JsonOK(c, "Events fetched successfully", out)
}

func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.RegistrationStart != nil && req.RegistrationEnd != nil &&
		req.RegistrationEnd.Before(*req.RegistrationStart) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Registration end must not precede its start")
	}

	event := model.EventModel{
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Date:              req.Date,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
	}
	if err := ctrl.DB.Create(&event).Error; err != nil {
		log.Println("[ERROR] Failed to create event:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}
	return helper.JsonCreated(c, "Event created successfully", dto.ToEventResponse(event, time.Now(), false))
}

func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	event, err := ctrl.loadEvent(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.RegistrationStart != nil {
		updates["registration_start"] = *req.RegistrationStart
	}
	if req.RegistrationEnd != nil {
		updates["registration_end"] = *req.RegistrationEnd
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(event).Updates(updates).Error; err != nil {
			log.Println("[ERROR] Failed to update event", event.ID, ":", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
		}
	}

	if err := ctrl.DB.Preload("Participants").First(event, event.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	return helper.JsonUpdated(c, "Event updated successfully", dto.ToEventResponse(*event, time.Now(), false))
}

// UploadEventImage replaces the event banner. Multipart field: image.
func (ctrl *EventController) UploadEventImage(c *fiber.Ctx) error {
	event, err := ctrl.loadEvent(c)
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

	url, uerr := ctrl.Storage.UploadImage(c.Context(), fileHeader, "events")
	if uerr != nil {
		if errors.Is(uerr, r2.ErrUnsupportedImage) {
			return helper.JsonError(c, fiber.StatusBadRequest, uerr.Error())
		}
		log.Println("[ERROR] Failed to upload image for event", event.ID, ":", uerr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload event image")
	}

	if err := ctrl.DB.Model(event).Update("image_url", url).Error; err != nil {
		log.Println("[ERROR] Failed to save image URL for event", event.ID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload event image")
	}
	event.ImageURL = &url
	return helper.JsonUpdated(c, "Event image uploaded successfully", dto.ToEventResponse(*event, time.Now(), false))
}

// ArchiveEvent soft-deletes so attendance history stays in analytics.
func (ctrl *EventController) ArchiveEvent(c *fiber.Ctx) error {
	event, err := ctrl.loadEvent(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.Model(event).Update("archived", true).Error; err != nil {
		log.Println("[ERROR] Failed to archive event", event.ID, ":", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to archive event")
	}
	return helper.JsonDeleted(c, "Event archived successfully", fiber.Map{"id": event.ID})
}

// ListParticipants returns the registered students of an event.
func (ctrl *EventController) ListParticipants(c *fiber.Ctx) error {
	event, err := ctrl.loadEvent(c)
	if err != nil {
		return err
	}

	out := make([]dto.ParticipantResponse, 0, len(event.Participants))
	for _, p := range event.Participants {
		out = append(out, dto.ParticipantResponse{
			ID:            p.ID,
			FullName:      p.FullName,
			StudentNumber: p.StudentNumber,
			Year:          p.Year,
			Block:         p.Block,
		})
	}
	return helper.JsonOK(c, "Participants fetched successfully", out)
}

func (ctrl *EventController) loadEvent(c *fiber.Ctx) (*model.EventModel, error) {
	eventID, err := c.ParamsInt("id")
	if err != nil || eventID <= 0 {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var event model.EventModel
	err = ctrl.DB.Preload("Participants").First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		log.Println("[ERROR] Failed to load event", eventID, ":", err)
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return &event, nil
}
