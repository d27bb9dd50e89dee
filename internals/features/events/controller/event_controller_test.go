package controller

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"specsnexus_backend/internals/features/events/model"
	userModel "specsnexus_backend/internals/features/users/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&userModel.UserModel{}, &model.EventModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestApp wires the controller behind stub auth that trusts a fixed
// member identity, so the guards run without real tokens.
func newTestApp(db *gorm.DB, userID uint) *fiber.App {
	app := fiber.New()
	ctrl := NewEventController(db, nil)

	user := app.Group("/user", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	user.Post("/events/:id/join", ctrl.JoinEvent)
	user.Delete("/events/:id/join", ctrl.LeaveEvent)
	return app
}

func seedEvent(t *testing.T, db *gorm.DB, start, end *time.Time) model.EventModel {
	t.Helper()
	event := model.EventModel{
		Title:             "General Assembly",
		RegistrationStart: start,
		RegistrationEnd:   end,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

func do(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestJoinEventWindowGuards(t *testing.T) {
	db := newTestDB(t)
	user := userModel.UserModel{Email: "a@test", Password: "x", StudentNumber: "202110001", FullName: "A"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	app := newTestApp(db, user.ID)

	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	notStarted := seedEvent(t, db, &future, nil)
	closed := seedEvent(t, db, nil, &past)
	open := seedEvent(t, db, &past, &future)

	if resp := do(t, app, fiber.MethodPost, "/user/events/"+itoa(notStarted.ID)+"/join"); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("join before window status = %d, want 409", resp.StatusCode)
	}
	if resp := do(t, app, fiber.MethodPost, "/user/events/"+itoa(closed.ID)+"/join"); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("join after window status = %d, want 409", resp.StatusCode)
	}
	if resp := do(t, app, fiber.MethodPost, "/user/events/"+itoa(open.ID)+"/join"); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("join open window status = %d, want 200", resp.StatusCode)
	}

	var count int64
	db.Table("event_participants").Where("event_model_id = ?", open.ID).Count(&count)
	if count != 1 {
		t.Fatalf("participants = %d, want 1", count)
	}

	// Joining twice is a conflict, not a second row.
	if resp := do(t, app, fiber.MethodPost, "/user/events/"+itoa(open.ID)+"/join"); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate join status = %d, want 409", resp.StatusCode)
	}
}

func TestLeaveEventGuards(t *testing.T) {
	db := newTestDB(t)
	user := userModel.UserModel{Email: "b@test", Password: "x", StudentNumber: "202110002", FullName: "B"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	app := newTestApp(db, user.ID)

	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	open := seedEvent(t, db, &past, &future)

	if resp := do(t, app, fiber.MethodDelete, "/user/events/"+itoa(open.ID)+"/join"); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("leave without joining status = %d, want 409", resp.StatusCode)
	}

	if resp := do(t, app, fiber.MethodPost, "/user/events/"+itoa(open.ID)+"/join"); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("join status = %d", resp.StatusCode)
	}
	if resp := do(t, app, fiber.MethodDelete, "/user/events/"+itoa(open.ID)+"/join"); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("leave status = %d", resp.StatusCode)
	}

	var count int64
	db.Table("event_participants").Where("event_model_id = ?", open.ID).Count(&count)
	if count != 0 {
		t.Fatalf("participants after leave = %d, want 0", count)
	}

	// Leaving a closed window is refused even for a participant.
	expired := seedEvent(t, db, &past, &past)
	if err := db.Model(&expired).Association("Participants").Append(&user); err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	if resp := do(t, app, fiber.MethodDelete, "/user/events/"+itoa(expired.ID)+"/join"); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("leave closed window status = %d, want 409", resp.StatusCode)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
