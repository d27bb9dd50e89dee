package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/constants"
	"specsnexus_backend/internals/features/analytics/dto"
	eventModel "specsnexus_backend/internals/features/events/model"
	userModel "specsnexus_backend/internals/features/users/model"
)

// ReportService renders the officer dashboard as a four-sheet workbook.
// The report always covers a 2-year non-archived window regardless of
// any filter the dashboard endpoint was called with; callers wanting a
// custom window must use the JSON dashboard instead.
type ReportService struct {
	DB        *gorm.DB
	Dashboard *DashboardService
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Dashboard: NewDashboardService(db)}
}

const (
	sheetStudents  = "Student Insights"
	sheetPayments  = "Payment Analytics"
	sheetEvents    = "Events"
	sheetClearance = "Clearance Tracking"
)

// OfficerDashboardReport builds the workbook and returns its bytes.
// The numbers come from the same aggregation path as the dashboard, so
// cells match the JSON output for identical data.
func (s *ReportService) OfficerDashboardReport() (*bytes.Buffer, error) {
	now := time.Now()
	window := DefaultWindow(now)

	data, err := s.Dashboard.Dashboard(window)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetStudents); err != nil {
		return nil, fmt.Errorf("create workbook sheets: %w", err)
	}
	for _, name := range []string{sheetPayments, sheetEvents, sheetClearance} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create workbook sheets: %w", err)
		}
	}

	if err := s.writeStudentSheet(f, data, now); err != nil {
		return nil, err
	}
	if err := s.writePaymentSheet(f, data); err != nil {
		return nil, err
	}
	if err := s.writeEventSheet(f, data, window); err != nil {
		return nil, err
	}
	if err := writeClearanceSheet(f, data); err != nil {
		return nil, err
	}

	if err := styleTitleRows(f); err != nil {
		return nil, fmt.Errorf("style workbook headers: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// ReportFilename suggests the dated attachment name.
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("officer-dashboard-report-%s.xlsx", now.Format("2006-01-02"))
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) writeRow(values ...interface{}) {
	w.row++
	if w.err != nil {
		return
	}
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
			w.err = err
			return
		}
	}
}

func (w *sheetWriter) skipRow() {
	w.row++
}

func (s *ReportService) writeStudentSheet(f *excelize.File, data *dto.DashboardData, now time.Time) error {
	w := &sheetWriter{f: f, sheet: sheetStudents}
	w.writeRow("Student Insights Report")
	w.skipRow()
	w.writeRow("Total BSCS Students", data.MembershipInsights.TotalBSCSStudents)
	w.writeRow("Active Members", data.MembershipInsights.ActiveMembers)
	w.writeRow("Inactive Members", data.MembershipInsights.InactiveMembers)
	w.skipRow()
	w.writeRow("ID", "Name", "Student Number", "Year", "Block", "Email", "Status")

	var users []userModel.UserModel
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return &AggregationError{Cause: err}
	}
	cutoff := now.AddDate(0, 0, -30)
	for _, user := range users {
		status := "Inactive"
		if user.LastActive != nil && !user.LastActive.Before(cutoff) {
			status = "Active"
		}
		w.writeRow(user.ID, user.FullName, user.StudentNumber,
			orNA(user.Year), orNA(user.Block), user.Email, status)
	}

	_ = f.SetColWidth(sheetStudents, "A", "G", 22)
	return w.err
}

func (s *ReportService) writePaymentSheet(f *excelize.File, data *dto.DashboardData) error {
	w := &sheetWriter{f: f, sheet: sheetPayments}
	w.writeRow("Payment Analytics Report")
	w.skipRow()
	w.writeRow("Verifying", data.PaymentAnalytics.Verifying)
	w.writeRow("Paid", data.PaymentAnalytics.Paid)
	w.writeRow("Not Paid", data.PaymentAnalytics.NotPaid)
	w.skipRow()
	w.writeRow("Payment Method", "Count")
	for _, method := range data.PaymentAnalytics.PreferredPaymentMethods {
		w.writeRow(method.Method, method.Count)
	}

	_ = f.SetColWidth(sheetPayments, "A", "B", 22)
	return w.err
}

func (s *ReportService) writeEventSheet(f *excelize.File, data *dto.DashboardData, window Window) error {
	w := &sheetWriter{f: f, sheet: sheetEvents}
	w.writeRow("Events Engagement Report")
	w.skipRow()
	w.writeRow("Event Title", "Date", "Location", "Participant Count", "Participation Rate (%)")

	var events []eventModel.EventModel
	if err := s.DB.Preload("Participants").
		Where("archived = ?", window.IncludeArchived).
		Where("(date >= ? AND date <= ?) OR date IS NULL", window.Start, window.End).
		Order("id").
		Find(&events).Error; err != nil {
		return &AggregationError{Cause: err}
	}
	for _, event := range events {
		date := "N/A"
		if event.Date != nil {
			date = event.Date.Format("2006-01-02 15:04")
		}
		count := int64(event.ParticipantCount())
		w.writeRow(event.Title, date, orNA(event.Location), count,
			participationRate(count, data.MembershipInsights.TotalSpecsMembers))
	}

	_ = f.SetColWidth(sheetEvents, "A", "E", 24)
	return w.err
}

func writeClearanceSheet(f *excelize.File, data *dto.DashboardData) error {
	w := &sheetWriter{f: f, sheet: sheetClearance}
	w.writeRow("Clearance Tracking Report")
	w.skipRow()
	w.writeRow("Requirement", "Status", "Count")

	requirements := make([]string, 0, len(data.ClearanceTracking.ByRequirement))
	for requirement := range data.ClearanceTracking.ByRequirement {
		requirements = append(requirements, requirement)
	}
	sort.Strings(requirements)
	for _, requirement := range requirements {
		byStatus := data.ClearanceTracking.ByRequirement[requirement]
		for _, status := range constants.ClearanceStatuses {
			w.writeRow(requirement, status, byStatus[status])
		}
	}

	_ = f.SetColWidth(sheetClearance, "A", "C", 26)
	return w.err
}

// styleTitleRows paints every sheet's first row bold white on the
// accent fill.
func styleTitleRows(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}
	for _, sheet := range f.GetSheetList() {
		if err := f.SetCellStyle(sheet, "A1", "G1", style); err != nil {
			return err
		}
	}
	return nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
