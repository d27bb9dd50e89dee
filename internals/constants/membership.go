package constants

// Requirement labels: the fixed set of semester-membership dues.
const (
	RequirementFirstSem  = "1st Semester Membership"
	RequirementSecondSem = "2nd Semester Membership"
)

var ValidRequirements = []string{RequirementFirstSem, RequirementSecondSem}

func IsValidRequirement(requirement string) bool {
	for _, r := range ValidRequirements {
		if r == requirement {
			return true
		}
	}
	return false
}

// Clearance status progression.
const (
	StatusNotYetCleared = "Not Yet Cleared"
	StatusProcessing    = "Processing"
	StatusClear         = "Clear"
)

var ClearanceStatuses = []string{StatusClear, StatusProcessing, StatusNotYetCleared}

// Payment status progression.
const (
	PaymentNotPaid   = "Not Paid"
	PaymentVerifying = "Verifying"
	PaymentPaid      = "Paid"
)

var PaymentStatuses = []string{PaymentNotPaid, PaymentVerifying, PaymentPaid}

// Payment channels accepted for dues.
const (
	PaymentTypeGcash   = "gcash"
	PaymentTypePaymaya = "paymaya"
	PaymentTypeCash    = "cash"
)

// Year classifications for students; empty means unspecified.
var ValidYears = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

func IsValidYear(year string) bool {
	for _, y := range ValidYears {
		if y == year {
			return true
		}
	}
	return false
}

// Label used in analytics buckets when a user has no year set.
const YearUnspecified = "Unspecified"
