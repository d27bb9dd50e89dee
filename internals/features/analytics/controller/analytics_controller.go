package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"specsnexus_backend/internals/features/analytics/service"
	helper "specsnexus_backend/internals/helpers"
)

type AnalyticsController struct {
	Dashboard *service.DashboardService
	Report    *service.ReportService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{
		Dashboard: service.NewDashboardService(db),
		Report:    service.NewReportService(db),
	}
}

// GetDashboard serves the aggregated metrics. Query params:
// start_date, end_date (RFC 3339 or YYYY-MM-DD) and include_archived.
func (ctrl *AnalyticsController) GetDashboard(c *fiber.Ctx) error {
	window := service.DefaultWindow(time.Now())

	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start_date")
		}
		window.Start = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end_date")
		}
		window.End = t
	}
	window.IncludeArchived = c.QueryBool("include_archived", false)

	data, err := ctrl.Dashboard.Dashboard(window)
	if err != nil {
		return dashboardError(c, err)
	}
	return helper.JsonOK(c, "Dashboard data aggregated successfully", data)
}

// GetOfficerDashboardReport streams the workbook as an attachment.
func (ctrl *AnalyticsController) GetOfficerDashboardReport(c *fiber.Ctx) error {
	officerID := c.Locals("officer_id").(uint)
	log.Println("[INFO] Officer", officerID, "generating dashboard report")

	buf, err := ctrl.Report.OfficerDashboardReport()
	if err != nil {
		var aggErr *service.AggregationError
		if errors.As(err, &aggErr) || errors.Is(err, service.ErrSchemaNotReady) {
			return dashboardError(c, err)
		}
		log.Println("[ERROR] Failed to generate dashboard report:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate report")
	}

	filename := service.ReportFilename(time.Now())
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+filename)
	return c.Send(buf.Bytes())
}

func dashboardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRange):
		return helper.JsonError(c, fiber.StatusBadRequest, "Start date must be before end date")
	case errors.Is(err, service.ErrSchemaNotReady):
		log.Println("[ERROR] Dashboard aggregation failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Users table not found in the database")
	default:
		// Cause stays in the server log; the body carries no internals.
		log.Println("[ERROR] Dashboard aggregation failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error while aggregating dashboard data")
	}
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
