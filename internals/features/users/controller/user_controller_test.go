package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"specsnexus_backend/internals/configs"
	"specsnexus_backend/internals/features/users/model"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctrl := NewUserController(db)
	app := fiber.New()
	app.Post("/auth/register", ctrl.Register)
	app.Post("/auth/login", ctrl.Login)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

var registerBody = map[string]any{
	"email":          "Juan@Test.Edu",
	"password":       "supersecret",
	"student_number": "2022-00123",
	"full_name":      "Juan Dela Cruz",
	"year":           "3rd Year",
}

func TestRegisterHashesAndNormalizes(t *testing.T) {
	app, db := newTestApp(t)

	resp := postJSON(t, app, "/auth/register", registerBody)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	var user model.UserModel
	if err := db.First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Email != "juan@test.edu" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "supersecret" || user.Password == "" {
		t.Fatal("password must be stored hashed")
	}

	// Same email again conflicts.
	resp = postJSON(t, app, "/auth/register", registerBody)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", resp.StatusCode)
	}
}

func TestRegisterRejectsBadYear(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]any{}
	for k, v := range registerBody {
		body[k] = v
	}
	body["year"] = "5th Year"

	resp := postJSON(t, app, "/auth/register", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLoginIssuesTokenAndTouchesLastActive(t *testing.T) {
	app, db := newTestApp(t)
	postJSON(t, app, "/auth/register", registerBody)

	resp := postJSON(t, app, "/auth/login", map[string]any{
		"email":    "juan@test.edu",
		"password": "supersecret",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if envelope.Data.AccessToken == "" || envelope.Data.TokenType != "bearer" {
		t.Fatalf("login payload = %+v", envelope.Data)
	}

	var user model.UserModel
	db.First(&user)
	if user.LastActive == nil {
		t.Fatal("login must stamp last_active")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	postJSON(t, app, "/auth/register", registerBody)

	resp := postJSON(t, app, "/auth/login", map[string]any{
		"email":    "juan@test.edu",
		"password": "wrong-password",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	resp = postJSON(t, app, "/auth/login", map[string]any{
		"email":    "ghost@test.edu",
		"password": "whatever",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("unknown email status = %d, want 401", resp.StatusCode)
	}
}
