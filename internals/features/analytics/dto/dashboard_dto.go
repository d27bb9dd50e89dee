package dto

// DashboardData is the full nested metrics object returned by the
// officer dashboard endpoint. Map keys are requirement labels, year
// labels or payment-method labels.
type DashboardData struct {
	MembershipInsights MembershipInsights `json:"membershipInsights"`
	PaymentAnalytics   PaymentAnalytics   `json:"paymentAnalytics"`
	EventsEngagement   EventsEngagement   `json:"eventsEngagement"`
	ClearanceTracking  ClearanceTracking  `json:"clearanceTracking"`
}

type MembershipInsights struct {
	TotalBSCSStudents           int64            `json:"totalBSCSStudents"`
	TotalSpecsMembers           int64            `json:"totalSpecsMembers"`
	TotalSpecsMembersFirstSem   int64            `json:"totalSpecsMembersFirstSem"`
	TotalSpecsMembersSecondSem  int64            `json:"totalSpecsMembersSecondSem"`
	NoneSpecs                   int64            `json:"noneSpecs"`
	NoneSpecsFirstSem           int64            `json:"noneSpecsFirstSem"`
	NoneSpecsSecondSem          int64            `json:"noneSpecsSecondSem"`
	ActiveMembers               int64            `json:"activeMembers"`
	InactiveMembers             int64            `json:"inactiveMembers"`
	RecentActivityLast7Days     int64            `json:"recentActivityLast7Days"`
	MembersByRequirement        map[string]int64 `json:"membersByRequirement"`
	NoUsers                     bool             `json:"noUsers"`
}

type PaymentAnalytics struct {
	ByRequirementAndYear map[string]map[string]map[string]int64 `json:"byRequirementAndYear"`
	NotPaid              int64                                  `json:"notPaid"`
	Verifying            int64                                  `json:"verifying"`
	Paid                 int64                                  `json:"paid"`
	NotPaidFirstSem      int64                                  `json:"notPaidFirstSem"`
	NotPaidSecondSem     int64                                  `json:"notPaidSecondSem"`
	VerifyingFirstSem    int64                                  `json:"verifyingFirstSem"`
	VerifyingSecondSem   int64                                  `json:"verifyingSecondSem"`
	PaidFirstSem         int64                                  `json:"paidFirstSem"`
	PaidSecondSem        int64                                  `json:"paidSecondSem"`
	PreferredPaymentMethods []PaymentMethodCount `json:"preferredPaymentMethods"`
	PaymentMethodTrends     []PaymentMethodTrend `json:"paymentMethodTrends"`
}

type PaymentMethodCount struct {
	Method         string `json:"method"`
	Count          int64  `json:"count"`
	FirstSemCount  int64  `json:"firstSemCount"`
	SecondSemCount int64  `json:"secondSemCount"`
}

type PaymentMethodTrend struct {
	Method         string `json:"method"`
	FirstSemCount  int64  `json:"firstSemCount"`
	SecondSemCount int64  `json:"secondSemCount"`
}

type EventsEngagement struct {
	Events          []EventEngagement            `json:"events"`
	PopularEvents   []EventEngagement            `json:"popularEvents"`
	BreakdownByYear map[string][]EventEngagement `json:"breakdownByYear"`
}

type EventEngagement struct {
	Title             string  `json:"title"`
	ParticipantCount  int64   `json:"participant_count"`
	ParticipationRate float64 `json:"participation_rate"`
}

type ClearanceTracking struct {
	ByRequirement    map[string]map[string]int64 `json:"byRequirement"`
	ComplianceByYear map[string]map[string]int64 `json:"complianceByYear"`
}
