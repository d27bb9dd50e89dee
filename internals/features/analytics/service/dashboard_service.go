package service

import (
	"log"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"specsnexus_backend/internals/constants"
	"specsnexus_backend/internals/features/analytics/dto"
	eventModel "specsnexus_backend/internals/features/events/model"
	clearanceModel "specsnexus_backend/internals/features/membership/clearances/model"
	userModel "specsnexus_backend/internals/features/users/model"
)

// DashboardService aggregates clearance and event records into the
// officer dashboard metrics.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Window is the date range and archive flag every aggregation runs under.
type Window struct {
	Start           time.Time
	End             time.Time
	IncludeArchived bool
}

// DefaultWindow is a 2-year lookback ending now, archives excluded.
func DefaultWindow(now time.Time) Window {
	return Window{Start: now.AddDate(-2, 0, 0), End: now}
}

var pendingStatuses = []string{constants.PaymentNotPaid, constants.PaymentVerifying}

// =============================
// Query scopes
//
// The dashboard fans out into many near-identical filtered counts, so
// the filters live here as composable scopes over the clearances table.
// Paid rows are windowed by payment_date, non-terminal rows by
// last_updated. That split is a business rule: "last touched" is not
// "payment completed".
// =============================

type scope func(*gorm.DB) *gorm.DB

func (s *DashboardService) clearances(scopes ...scope) *gorm.DB {
	q := s.DB.Model(&clearanceModel.ClearanceModel{}).
		Where("clearances.archived = ?", false)
	for _, apply := range scopes {
		q = apply(q)
	}
	return q
}

func paidWithin(w Window) scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"clearances.payment_status = ? AND clearances.payment_date >= ? AND clearances.payment_date <= ?",
			constants.PaymentPaid, w.Start, w.End)
	}
}

func pendingWithin(w Window) scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"clearances.payment_status IN ? AND clearances.last_updated >= ? AND clearances.last_updated <= ?",
			pendingStatuses, w.Start, w.End)
	}
}

func statusWithin(paymentStatus string, w Window) scope {
	column := "clearances.last_updated"
	if paymentStatus == constants.PaymentPaid {
		column = "clearances.payment_date"
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"clearances.payment_status = ? AND "+column+" >= ? AND "+column+" <= ?",
			paymentStatus, w.Start, w.End)
	}
}

// eitherWithin is the union of the paid and pending windows in one
// predicate, used where both populations are tabulated together.
func eitherWithin(w Window) scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"(clearances.payment_status = ? AND clearances.payment_date >= ? AND clearances.payment_date <= ?)"+
				" OR (clearances.payment_status IN ? AND clearances.last_updated >= ? AND clearances.last_updated <= ?)",
			constants.PaymentPaid, w.Start, w.End,
			pendingStatuses, w.Start, w.End)
	}
}

func forRequirement(requirement string) scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("clearances.requirement = ?", requirement)
	}
}

func touchedWithin(w Window) scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("clearances.last_updated >= ? AND clearances.last_updated <= ?", w.Start, w.End)
	}
}

func (s *DashboardService) countRows(scopes ...scope) (int64, error) {
	var n int64
	if err := s.clearances(scopes...).Count(&n).Error; err != nil {
		return 0, &AggregationError{Cause: err}
	}
	return n, nil
}

func (s *DashboardService) countDistinctUsers(scopes ...scope) (int64, error) {
	var n int64
	if err := s.clearances(scopes...).Distinct("clearances.user_id").Count(&n).Error; err != nil {
		return 0, &AggregationError{Cause: err}
	}
	return n, nil
}

// =============================
// Dashboard
// =============================

// Dashboard validates the window, checks the schema precondition and
// runs the full aggregation. No query executes on an invalid range.
func (s *DashboardService) Dashboard(w Window) (*dto.DashboardData, error) {
	if w.Start.After(w.End) {
		return nil, ErrInvalidRange
	}
	if !s.DB.Migrator().HasTable("users") {
		return nil, ErrSchemaNotReady
	}

	membership, totalSpecsMembers, err := s.membershipInsights(w)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentAnalytics(w)
	if err != nil {
		return nil, err
	}
	events, err := s.eventsEngagement(w, totalSpecsMembers)
	if err != nil {
		return nil, err
	}
	tracking, err := s.clearanceTracking(w)
	if err != nil {
		return nil, err
	}

	log.Println("[INFO] Dashboard data aggregated successfully")
	return &dto.DashboardData{
		MembershipInsights: *membership,
		PaymentAnalytics:   *payments,
		EventsEngagement:   *events,
		ClearanceTracking:  *tracking,
	}, nil
}

func (s *DashboardService) membershipInsights(w Window) (*dto.MembershipInsights, int64, error) {
	var totalStudents int64
	if err := s.DB.Model(&userModel.UserModel{}).Count(&totalStudents).Error; err != nil {
		return nil, 0, &AggregationError{Cause: err}
	}
	if totalStudents == 0 {
		log.Println("[WARN] No users found in the users table")
	}

	totalSpecsMembers, err := s.countDistinctUsers(paidWithin(w))
	if err != nil {
		return nil, 0, err
	}
	firstSem, err := s.countDistinctUsers(paidWithin(w), forRequirement(constants.RequirementFirstSem))
	if err != nil {
		return nil, 0, err
	}
	secondSem, err := s.countDistinctUsers(paidWithin(w), forRequirement(constants.RequirementSecondSem))
	if err != nil {
		return nil, 0, err
	}

	noneSpecs, err := s.countDistinctUsers(pendingWithin(w))
	if err != nil {
		return nil, 0, err
	}
	noneFirstSem, err := s.countDistinctUsers(pendingWithin(w), forRequirement(constants.RequirementFirstSem))
	if err != nil {
		return nil, 0, err
	}
	noneSecondSem, err := s.countDistinctUsers(pendingWithin(w), forRequirement(constants.RequirementSecondSem))
	if err != nil {
		return nil, 0, err
	}

	type reqCount struct {
		Requirement string
		Count       int64
	}
	var byRequirementRows []reqCount
	if err := s.clearances(paidWithin(w)).
		Select("clearances.requirement AS requirement, COUNT(DISTINCT clearances.user_id) AS count").
		Group("clearances.requirement").
		Order("clearances.requirement").
		Scan(&byRequirementRows).Error; err != nil {
		return nil, 0, &AggregationError{Cause: err}
	}
	membersByRequirement := make(map[string]int64, len(byRequirementRows))
	for _, row := range byRequirementRows {
		membersByRequirement[row.Requirement] = row.Count
	}

	now := time.Now()
	activeMembers, err := s.countUsersActiveSince(now.AddDate(0, 0, -30))
	if err != nil {
		return nil, 0, err
	}
	recentActivity, err := s.countUsersActiveSince(now.AddDate(0, 0, -7))
	if err != nil {
		return nil, 0, err
	}

	return &dto.MembershipInsights{
		TotalBSCSStudents:          totalStudents,
		TotalSpecsMembers:          totalSpecsMembers,
		TotalSpecsMembersFirstSem:  firstSem,
		TotalSpecsMembersSecondSem: secondSem,
		NoneSpecs:                  noneSpecs,
		NoneSpecsFirstSem:          noneFirstSem,
		NoneSpecsSecondSem:         noneSecondSem,
		ActiveMembers:              activeMembers,
		InactiveMembers:            totalStudents - activeMembers,
		RecentActivityLast7Days:    recentActivity,
		MembersByRequirement:       membersByRequirement,
		NoUsers:                    totalStudents == 0,
	}, totalSpecsMembers, nil
}

func (s *DashboardService) countUsersActiveSince(cutoff time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&userModel.UserModel{}).
		Where("last_active IS NOT NULL AND last_active >= ?", cutoff).
		Count(&n).Error
	if err != nil {
		return 0, &AggregationError{Cause: err}
	}
	return n, nil
}

func (s *DashboardService) paymentAnalytics(w Window) (*dto.PaymentAnalytics, error) {
	out := &dto.PaymentAnalytics{}

	counts := []struct {
		dst         *int64
		status      string
		requirement string
	}{
		{&out.NotPaid, constants.PaymentNotPaid, ""},
		{&out.Verifying, constants.PaymentVerifying, ""},
		{&out.Paid, constants.PaymentPaid, ""},
		{&out.NotPaidFirstSem, constants.PaymentNotPaid, constants.RequirementFirstSem},
		{&out.NotPaidSecondSem, constants.PaymentNotPaid, constants.RequirementSecondSem},
		{&out.VerifyingFirstSem, constants.PaymentVerifying, constants.RequirementFirstSem},
		{&out.VerifyingSecondSem, constants.PaymentVerifying, constants.RequirementSecondSem},
		{&out.PaidFirstSem, constants.PaymentPaid, constants.RequirementFirstSem},
		{&out.PaidSecondSem, constants.PaymentPaid, constants.RequirementSecondSem},
	}
	for _, c := range counts {
		scopes := []scope{statusWithin(c.status, w)}
		if c.requirement != "" {
			scopes = append(scopes, forRequirement(c.requirement))
		}
		n, err := s.countRows(scopes...)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	methods, trends, err := s.paymentMethods(w)
	if err != nil {
		return nil, err
	}
	out.PreferredPaymentMethods = methods
	out.PaymentMethodTrends = trends

	byReqYear, err := s.paymentsByRequirementAndYear(w)
	if err != nil {
		return nil, err
	}
	out.ByRequirementAndYear = byReqYear

	return out, nil
}

func (s *DashboardService) paymentMethods(w Window) ([]dto.PaymentMethodCount, []dto.PaymentMethodTrend, error) {
	withMethod := func(q *gorm.DB) *gorm.DB {
		return q.Where("clearances.payment_method IS NOT NULL")
	}

	type methodCount struct {
		Method string
		Count  int64
	}
	var methodRows []methodCount
	if err := s.clearances(eitherWithin(w), withMethod).
		Select("clearances.payment_method AS method, COUNT(clearances.id) AS count").
		Group("clearances.payment_method").
		Order("clearances.payment_method").
		Scan(&methodRows).Error; err != nil {
		return nil, nil, &AggregationError{Cause: err}
	}

	type trendRow struct {
		Method      string
		Requirement string
		Count       int64
	}
	var trendRows []trendRow
	if err := s.clearances(eitherWithin(w), withMethod).
		Select("clearances.payment_method AS method, clearances.requirement AS requirement, COUNT(clearances.id) AS count").
		Group("clearances.payment_method, clearances.requirement").
		Order("clearances.payment_method").
		Scan(&trendRows).Error; err != nil {
		return nil, nil, &AggregationError{Cause: err}
	}

	perMethod := map[string]*dto.PaymentMethodTrend{}
	var methodOrder []string
	for _, row := range trendRows {
		trend, ok := perMethod[row.Method]
		if !ok {
			trend = &dto.PaymentMethodTrend{Method: row.Method}
			perMethod[row.Method] = trend
			methodOrder = append(methodOrder, row.Method)
		}
		switch row.Requirement {
		case constants.RequirementFirstSem:
			trend.FirstSemCount = row.Count
		case constants.RequirementSecondSem:
			trend.SecondSemCount = row.Count
		}
	}
	trends := make([]dto.PaymentMethodTrend, 0, len(methodOrder))
	for _, method := range methodOrder {
		trends = append(trends, *perMethod[method])
	}

	methods := make([]dto.PaymentMethodCount, 0, len(methodRows))
	for _, row := range methodRows {
		entry := dto.PaymentMethodCount{Method: row.Method, Count: row.Count}
		if trend, ok := perMethod[row.Method]; ok {
			entry.FirstSemCount = trend.FirstSemCount
			entry.SecondSemCount = trend.SecondSemCount
		}
		methods = append(methods, entry)
	}
	return methods, trends, nil
}

func (s *DashboardService) paymentsByRequirementAndYear(w Window) (map[string]map[string]map[string]int64, error) {
	type row struct {
		Year          *string
		Requirement   string
		PaymentStatus string
		Count         int64
	}
	var rows []row
	if err := s.clearances(eitherWithin(w)).
		Joins("JOIN users ON users.id = clearances.user_id").
		Select("users.year AS year, clearances.requirement AS requirement, clearances.payment_status AS payment_status, COUNT(clearances.id) AS count").
		Group("users.year, clearances.requirement, clearances.payment_status").
		Scan(&rows).Error; err != nil {
		return nil, &AggregationError{Cause: err}
	}

	out := map[string]map[string]map[string]int64{}
	for _, r := range rows {
		year := constants.YearUnspecified
		if r.Year != nil && *r.Year != "" {
			year = *r.Year
		}
		byYear, ok := out[r.Requirement]
		if !ok {
			byYear = map[string]map[string]int64{}
			out[r.Requirement] = byYear
		}
		byStatus, ok := byYear[year]
		if !ok {
			byStatus = map[string]int64{
				constants.PaymentNotPaid:   0,
				constants.PaymentVerifying: 0,
				constants.PaymentPaid:      0,
			}
			byYear[year] = byStatus
		}
		byStatus[r.PaymentStatus] = r.Count
	}
	return out, nil
}

func (s *DashboardService) eventsEngagement(w Window, totalSpecsMembers int64) (*dto.EventsEngagement, error) {
	var events []eventModel.EventModel
	if err := s.DB.Preload("Participants").
		Where("archived = ?", w.IncludeArchived).
		Where("(date >= ? AND date <= ?) OR date IS NULL", w.Start, w.End).
		Order("id").
		Find(&events).Error; err != nil {
		return nil, &AggregationError{Cause: err}
	}

	engagement := make([]dto.EventEngagement, 0, len(events))
	byYear := map[string][]dto.EventEngagement{}
	for _, event := range events {
		entry := dto.EventEngagement{
			Title:             event.Title,
			ParticipantCount:  int64(event.ParticipantCount()),
			ParticipationRate: participationRate(int64(event.ParticipantCount()), totalSpecsMembers),
		}
		engagement = append(engagement, entry)

		year := "Unknown"
		if event.Date != nil {
			year = event.Date.Format("2006")
		}
		byYear[year] = append(byYear[year], entry)
	}

	popular := make([]dto.EventEngagement, len(engagement))
	copy(popular, engagement)
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].ParticipantCount > popular[j].ParticipantCount
	})
	if len(popular) > 5 {
		popular = popular[:5]
	}

	return &dto.EventsEngagement{
		Events:          engagement,
		PopularEvents:   popular,
		BreakdownByYear: byYear,
	}, nil
}

// participationRate is participants over paid members as a percentage,
// rounded to 2 decimals. Zero on either empty side, never a division error.
func participationRate(participants, totalSpecsMembers int64) float64 {
	if totalSpecsMembers <= 0 || participants <= 0 {
		return 0
	}
	rate := float64(participants) / float64(totalSpecsMembers) * 100
	return math.Round(rate*100) / 100
}

func (s *DashboardService) clearanceTracking(w Window) (*dto.ClearanceTracking, error) {
	type reqStatusRow struct {
		Requirement string
		Status      string
		Count       int64
	}
	var reqRows []reqStatusRow
	if err := s.clearances(touchedWithin(w)).
		Select("clearances.requirement AS requirement, clearances.status AS status, COUNT(clearances.id) AS count").
		Group("clearances.requirement, clearances.status").
		Order("clearances.requirement").
		Scan(&reqRows).Error; err != nil {
		return nil, &AggregationError{Cause: err}
	}
	byRequirement := map[string]map[string]int64{}
	for _, r := range reqRows {
		byStatus, ok := byRequirement[r.Requirement]
		if !ok {
			byStatus = emptyStatusCounts()
			byRequirement[r.Requirement] = byStatus
		}
		byStatus[r.Status] = r.Count
	}

	type yearStatusRow struct {
		Year   *string
		Status string
		Count  int64
	}
	var yearRows []yearStatusRow
	if err := s.clearances(touchedWithin(w)).
		Joins("JOIN users ON users.id = clearances.user_id").
		Select("users.year AS year, clearances.status AS status, COUNT(clearances.id) AS count").
		Group("users.year, clearances.status").
		Scan(&yearRows).Error; err != nil {
		return nil, &AggregationError{Cause: err}
	}
	byYear := map[string]map[string]int64{}
	for _, r := range yearRows {
		year := constants.YearUnspecified
		if r.Year != nil && *r.Year != "" {
			year = *r.Year
		}
		byStatus, ok := byYear[year]
		if !ok {
			byStatus = emptyStatusCounts()
			byYear[year] = byStatus
		}
		byStatus[r.Status] = r.Count
	}

	return &dto.ClearanceTracking{
		ByRequirement:    byRequirement,
		ComplianceByYear: byYear,
	}, nil
}

func emptyStatusCounts() map[string]int64 {
	return map[string]int64{
		constants.StatusClear:         0,
		constants.StatusProcessing:    0,
		constants.StatusNotYetCleared: 0,
	}
}
