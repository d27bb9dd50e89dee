package service

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"specsnexus_backend/internals/constants"
)

func TestReportFilename(t *testing.T) {
	now := time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
	if got := ReportFilename(now); got != "officer-dashboard-report-2025-03-09.xlsx" {
		t.Fatalf("filename = %q", got)
	}
}

func TestOfficerDashboardReportSheets(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	buf, err := svc.OfficerDashboardReport()
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	want := []string{sheetStudents, sheetPayments, sheetEvents, sheetClearance}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("sheets = %v, want %v", got, want)
		}
	}

	title, err := f.GetCellValue(sheetStudents, "A1")
	if err != nil || title != "Student Insights Report" {
		t.Fatalf("A1 = %q (%v)", title, err)
	}
	if styleID, err := f.GetCellStyle(sheetStudents, "A1"); err != nil || styleID == 0 {
		t.Fatalf("title row must carry the header style, got %d (%v)", styleID, err)
	}
}

func TestOfficerDashboardReportMatchesDashboard(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	member := createUser(t, db, "member@test", strptr("1st Year"), timeptr(now.Add(-time.Hour)))
	createUser(t, db, "other@test", nil, nil)
	createClearance(t, db, clearanceSeed{
		userID:        member.ID,
		requirement:   constants.RequirementFirstSem,
		paymentStatus: constants.PaymentPaid,
		status:        constants.StatusClear,
		method:        strptr(constants.PaymentTypeGcash),
		paymentDate:   timeptr(now.Add(-24 * time.Hour)),
	})
	createEvent(t, db, "Hack Night", timeptr(now.Add(-48*time.Hour)), false, member)

	reportSvc := NewReportService(db)
	dashboard, err := reportSvc.Dashboard.Dashboard(DefaultWindow(time.Now()))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	buf, err := reportSvc.OfficerDashboardReport()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cellMustEqual(t, f, sheetStudents, "B3", dashboard.MembershipInsights.TotalBSCSStudents)
	cellMustEqual(t, f, sheetStudents, "B4", dashboard.MembershipInsights.ActiveMembers)
	cellMustEqual(t, f, sheetStudents, "B5", dashboard.MembershipInsights.InactiveMembers)

	cellMustEqual(t, f, sheetPayments, "B3", dashboard.PaymentAnalytics.Verifying)
	cellMustEqual(t, f, sheetPayments, "B4", dashboard.PaymentAnalytics.Paid)
	cellMustEqual(t, f, sheetPayments, "B5", dashboard.PaymentAnalytics.NotPaid)

	method, err := f.GetCellValue(sheetPayments, "A8")
	if err != nil || method != constants.PaymentTypeGcash {
		t.Fatalf("payment method cell = %q (%v)", method, err)
	}
	cellMustEqual(t, f, sheetPayments, "B8", dashboard.PaymentAnalytics.PreferredPaymentMethods[0].Count)

	// Event row: count and rate mirror the dashboard engagement entry.
	cellMustEqual(t, f, sheetEvents, "D4", dashboard.EventsEngagement.Events[0].ParticipantCount)
	rate, err := f.GetCellValue(sheetEvents, "E4")
	if err != nil {
		t.Fatalf("rate cell: %v", err)
	}
	if !strings.HasPrefix(rate, "100") {
		t.Fatalf("rate cell = %q, want 100", rate)
	}
}

func cellMustEqual(t *testing.T, f *excelize.File, sheet, cell string, want int64) {
	t.Helper()
	raw, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("%s!%s: %v", sheet, cell, err)
	}
	got, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		t.Fatalf("%s!%s = %q, not a number", sheet, cell, raw)
	}
	if got != want {
		t.Fatalf("%s!%s = %d, want %d", sheet, cell, got, want)
	}
}
