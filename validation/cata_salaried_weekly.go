package validation

import (
	"fmt"
	"sort"

	"github.com/warp/income-proving/hmrc"
)

// Window and count constants for the weekly salaried check. The window is
// expressed in days so that a 26-week span is exact regardless of month
// lengths.
const (
	catAWeeklyWindowDays = 182
	catAWeeklyMinWeeks   = 26
)

// CatASalariedWeeklyValidator applies the Category A rule for people paid
// weekly: twenty-six distinct pay weeks from one employer, each week's
// combined payments at or above the weekly threshold. Multiple payments in
// the same week are summed before comparison.
type CatASalariedWeeklyValidator struct {
	Thresholds *ThresholdCalculator
}

func NewCatASalariedWeeklyValidator(thresholds *ThresholdCalculator) *CatASalariedWeeklyValidator {
	return &CatASalariedWeeklyValidator{Thresholds: thresholds}
}

func (v *CatASalariedWeeklyValidator) Validate(request Request) Result {
	assessmentStart := request.RaisedDate().AddDate(0, 0, -catAWeeklyWindowDays)
	weeklyThreshold := v.Thresholds.Weekly(request.Dependants())

	result := Result{
		Threshold:           weeklyThreshold,
		Individuals:         request.CheckedIndividuals(),
		AssessmentStartDate: assessmentStart,
		Category:            "A",
		CalculationType:     CalculationTypeCatASalariedWeekly,
	}

	incomes := RemoveDuplicates(AllPayeInDateRange(request, assessmentStart))
	buckets := groupByWeek(incomes)
	if len(buckets) < catAWeeklyMinWeeks {
		result.Status = StatusNotEnoughRecords
		return result
	}

	switch CheckEmployerConsistencyAndThreshold(buckets, weeklyThreshold) {
	case EmployerCheckFailedThreshold:
		result.Status = StatusWeeklyValueBelowThreshold
	case EmployerCheckFailedEmployer:
		result.Status = StatusMultipleEmployers
	default:
		result.Status = StatusWeeklySalariedPassed
	}
	return result
}

// groupByWeek buckets incomes by pay week, ordered oldest week first. The
// employer's explicit week pay number is trusted when present; otherwise the
// ISO week of the payment date stands in for it.
func groupByWeek(incomes []hmrc.Income) [][]hmrc.Income {
	grouped := make(map[string][]hmrc.Income)
	for _, income := range incomes {
		key := weekKey(income)
		grouped[key] = append(grouped[key], income)
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([][]hmrc.Income, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, grouped[key])
	}
	return buckets
}

func weekKey(income hmrc.Income) string {
	if income.WeekPayNumber != nil {
		return fmt.Sprintf("n%03d", *income.WeekPayNumber)
	}
	year, week := income.PaymentDate.ISOWeek()
	return fmt.Sprintf("d%04d-%02d", year, week)
}
