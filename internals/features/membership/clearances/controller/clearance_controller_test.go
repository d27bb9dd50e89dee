package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"specsnexus_backend/internals/constants"
	"specsnexus_backend/internals/features/membership/clearances/model"
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
	if err := db.AutoMigrate(&userModel.UserModel{}, &model.ClearanceModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestApp wires the controller behind stub auth that trusts headers,
// so handler logic is exercised without real tokens.
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctrl := NewClearanceController(db, nil)

	user := app.Group("/user", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	})
	user.Get("/clearances", ctrl.ListMyClearances)
	user.Put("/clearances/:id/receipt", ctrl.UpdateReceipt)

	officer := app.Group("/officer", func(c *fiber.Ctx) error {
		c.Locals("officer_id", uint(1))
		return c.Next()
	})
	officer.Post("/clearances/requirements", ctrl.RollOutRequirement)
	officer.Put("/clearances/requirements/amount", ctrl.UpdateAmount)
	officer.Put("/clearances/:id/verify", ctrl.VerifyClearance)
	return app
}

func seedUsers(t *testing.T, db *gorm.DB, n int) []userModel.UserModel {
	t.Helper()
	users := make([]userModel.UserModel, 0, n)
	for i := 0; i < n; i++ {
		user := userModel.UserModel{
			Email:         string(rune('a'+i)) + "@test",
			Password:      "x",
			StudentNumber: string(rune('a' + i)),
			FullName:      "User " + string(rune('A'+i)),
		}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
		users = append(users, user)
	}
	return users
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestRollOutRequirementIdempotent(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	seedUsers(t, db, 3)

	body := map[string]any{"requirement": constants.RequirementFirstSem, "amount": 150}
	resp := doJSON(t, app, fiber.MethodPost, "/officer/clearances/requirements", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first roll-out status = %d", resp.StatusCode)
	}

	var count int64
	db.Model(&model.ClearanceModel{}).Count(&count)
	if count != 3 {
		t.Fatalf("roll-out created %d rows, want 3", count)
	}

	// Re-running must not duplicate.
	resp = doJSON(t, app, fiber.MethodPost, "/officer/clearances/requirements", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("second roll-out status = %d", resp.StatusCode)
	}
	db.Model(&model.ClearanceModel{}).Count(&count)
	if count != 3 {
		t.Fatalf("re-run duplicated rows: %d", count)
	}

	var row model.ClearanceModel
	db.First(&row)
	if row.Status != constants.StatusNotYetCleared || row.PaymentStatus != constants.PaymentNotPaid || row.Amount != 150 {
		t.Fatalf("rolled-out row wrong: %+v", row)
	}
}

func TestRollOutReplacesArchivedClearance(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	users := seedUsers(t, db, 1)

	archived := model.ClearanceModel{
		UserID:        users[0].ID,
		Requirement:   constants.RequirementFirstSem,
		Status:        constants.StatusNotYetCleared,
		PaymentStatus: constants.PaymentNotPaid,
		Amount:        100,
		Archived:      true,
	}
	if err := db.Create(&archived).Error; err != nil {
		t.Fatalf("seed archived clearance: %v", err)
	}

	// An archived row must not count as "already has it".
	body := map[string]any{"requirement": constants.RequirementFirstSem, "amount": 150}
	resp := doJSON(t, app, fiber.MethodPost, "/officer/clearances/requirements", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("roll-out status = %d", resp.StatusCode)
	}

	var count int64
	db.Model(&model.ClearanceModel{}).
		Where("user_id = ? AND requirement = ? AND archived = ?", users[0].ID, constants.RequirementFirstSem, false).
		Count(&count)
	if count != 1 {
		t.Fatalf("active rows after roll-out = %d, want 1", count)
	}
}

func TestRollOutRejectsUnknownRequirement(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	seedUsers(t, db, 1)

	resp := doJSON(t, app, fiber.MethodPost, "/officer/clearances/requirements",
		map[string]any{"requirement": "Lifetime Membership", "amount": 10})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateReceiptCashThenVerify(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	users := seedUsers(t, db, 1)

	clearance := model.ClearanceModel{
		UserID:        users[0].ID,
		Requirement:   constants.RequirementFirstSem,
		Status:        constants.StatusNotYetCleared,
		PaymentStatus: constants.PaymentNotPaid,
		Amount:        150,
	}
	if err := db.Create(&clearance).Error; err != nil {
		t.Fatalf("seed clearance: %v", err)
	}

	// Cash payment: no receipt image required.
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	_ = writer.WriteField("payment_method", constants.PaymentTypeCash)
	_ = writer.Close()

	req := httptest.NewRequest(fiber.MethodPut, "/user/clearances/1/receipt", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("receipt request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("receipt status = %d", resp.StatusCode)
	}

	db.First(&clearance, clearance.ID)
	if clearance.PaymentStatus != constants.PaymentVerifying || clearance.Status != constants.StatusProcessing {
		t.Fatalf("after receipt: %+v", clearance)
	}
	if clearance.PaymentDate == nil || clearance.PaymentMethod == nil || *clearance.PaymentMethod != constants.PaymentTypeCash {
		t.Fatalf("payment fields not stamped: %+v", clearance)
	}

	// Officer approves.
	resp = doJSON(t, app, fiber.MethodPut, "/officer/clearances/1/verify",
		map[string]any{"action": "approve"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}
	db.First(&clearance, clearance.ID)
	if clearance.PaymentStatus != constants.PaymentPaid || clearance.Status != constants.StatusClear {
		t.Fatalf("after approve: %+v", clearance)
	}
	if clearance.ApprovalDate == nil {
		t.Fatal("approval date not stamped")
	}
}

func TestVerifyDenyRequiresReasonAndResets(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	users := seedUsers(t, db, 1)

	paymentDate := time.Now()
	method := constants.PaymentTypeGcash
	receipt := "receipts/abc.webp"
	clearance := model.ClearanceModel{
		UserID:        users[0].ID,
		Requirement:   constants.RequirementFirstSem,
		Status:        constants.StatusProcessing,
		PaymentStatus: constants.PaymentVerifying,
		Amount:        150,
		PaymentMethod: &method,
		PaymentDate:   &paymentDate,
		ReceiptPath:   &receipt,
	}
	if err := db.Create(&clearance).Error; err != nil {
		t.Fatalf("seed clearance: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodPut, "/officer/clearances/1/verify",
		map[string]any{"action": "deny"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("deny without reason status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPut, "/officer/clearances/1/verify",
		map[string]any{"action": "deny", "denial_reason": "receipt unreadable"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("deny status = %d", resp.StatusCode)
	}

	var denied model.ClearanceModel
	if err := db.First(&denied, clearance.ID).Error; err != nil {
		t.Fatalf("reload clearance: %v", err)
	}
	if denied.PaymentStatus != constants.PaymentNotPaid || denied.Status != constants.StatusNotYetCleared {
		t.Fatalf("after deny: %+v", denied)
	}
	if denied.DenialReason == nil || *denied.DenialReason != "receipt unreadable" {
		t.Fatalf("denial reason not stored: %+v", denied)
	}
	if denied.PaymentDate != nil || denied.PaymentMethod != nil || denied.ReceiptPath != nil {
		t.Fatal("payment date, method and receipt must be cleared on denial")
	}

	// Nothing left to verify.
	resp = doJSON(t, app, fiber.MethodPut, "/officer/clearances/1/verify",
		map[string]any{"action": "approve"})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("verify with no pending payment status = %d, want 409", resp.StatusCode)
	}
}

func TestListMyClearancesScopedToCaller(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	users := seedUsers(t, db, 2)

	for _, u := range users {
		row := model.ClearanceModel{
			UserID:        u.ID,
			Requirement:   constants.RequirementFirstSem,
			Status:        constants.StatusNotYetCleared,
			PaymentStatus: constants.PaymentNotPaid,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed clearance: %v", err)
		}
	}
	// Archived row for the caller must be hidden.
	archived := model.ClearanceModel{
		UserID:        users[0].ID,
		Requirement:   constants.RequirementSecondSem,
		Status:        constants.StatusNotYetCleared,
		PaymentStatus: constants.PaymentNotPaid,
		Archived:      true,
	}
	if err := db.Create(&archived).Error; err != nil {
		t.Fatalf("seed archived clearance: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/user/clearances", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}

	var envelope struct {
		Data []struct {
			UserID uint `json:"user_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].UserID != 1 {
		t.Fatalf("list = %+v, want only caller's active row", envelope.Data)
	}
}
