package validation

import "strings"

// Status is the closed enumeration of validation outcomes. Rule violations
// are encoded here, never as errors: a failed check is an expected,
// first-class result.
type Status string

const (
	StatusMonthlyValueBelowThreshold    Status = "MONTHLY_VALUE_BELOW_THRESHOLD"
	StatusWeeklyValueBelowThreshold     Status = "WEEKLY_VALUE_BELOW_THRESHOLD"
	StatusUnknownPayFrequency           Status = "UNKNOWN_PAY_FREQUENCY"
	StatusNonConsecutiveMonths          Status = "NON_CONSECUTIVE_MONTHS"
	StatusNotEnoughRecords              Status = "NOT_ENOUGH_RECORDS"
	StatusPayFrequencyChange            Status = "PAY_FREQUENCY_CHANGE"
	StatusMultipleEmployers             Status = "MULTIPLE_EMPLOYERS"
	StatusMonthlySalariedPassed         Status = "MONTHLY_SALARIED_PASSED"
	StatusWeeklySalariedPassed          Status = "WEEKLY_SALARIED_PASSED"
	StatusCatANonSalariedPassed         Status = "CATA_NON_SALARIED_PASSED"
	StatusCatANonSalariedBelowThreshold Status = "CATA_NON_SALARIED_BELOW_THRESHOLD"
	StatusEmploymentCheckPassed         Status = "EMPLOYMENT_CHECK_PASSED"
	StatusEmploymentCheckFailed         Status = "EMPLOYMENT_CHECK_FAILED"
	StatusCatBSalariedPassed            Status = "CATB_SALARIED_PASSED"
	StatusCatBSalariedBelowThreshold    Status = "CATB_SALARIED_BELOW_THRESHOLD"
)

// IsPassed reports whether the status is a passing terminal. Exactly the
// "_PASSED" variants pass; everything else is a failure.
func (s Status) IsPassed() bool {
	return strings.HasSuffix(string(s), "_PASSED")
}
