package validation

// Window and count constants for the monthly salaried check.
const (
	catAMonthlyWindowMonths = 6
	catAMonthlyMinBuckets   = 6
)

// CatASalariedMonthlyValidator applies the Category A rule for people paid
// on a calendar-monthly cycle: six consecutive monthly payments from one
// employer, each month at or above the monthly threshold.
type CatASalariedMonthlyValidator struct {
	Thresholds *ThresholdCalculator
}

func NewCatASalariedMonthlyValidator(thresholds *ThresholdCalculator) *CatASalariedMonthlyValidator {
	return &CatASalariedMonthlyValidator{Thresholds: thresholds}
}

func (v *CatASalariedMonthlyValidator) Validate(request Request) Result {
	assessmentStart := request.RaisedDate().AddDate(0, -catAMonthlyWindowMonths, 0)
	monthlyThreshold := v.Thresholds.Monthly(request.Dependants())

	result := Result{
		Threshold:           monthlyThreshold,
		Individuals:         request.CheckedIndividuals(),
		AssessmentStartDate: assessmentStart,
		Category:            "A",
		CalculationType:     CalculationTypeCatASalariedMonthly,
	}

	incomes := RemoveDuplicates(AllPayeInDateRange(request, assessmentStart))
	buckets := GroupByMonth(incomes)
	if len(buckets) < catAMonthlyMinBuckets {
		result.Status = StatusNotEnoughRecords
		return result
	}

	// only the most recent six months count
	buckets = buckets[len(buckets)-catAMonthlyMinBuckets:]

	for i := 0; i < len(buckets)-1; i++ {
		if !IsSuccessiveMonths(buckets[i+1][0], buckets[i][0]) {
			result.Status = StatusNonConsecutiveMonths
			return result
		}
	}

	switch CheckEmployerConsistencyAndThreshold(buckets, monthlyThreshold) {
	case EmployerCheckFailedThreshold:
		result.Status = StatusMonthlyValueBelowThreshold
	case EmployerCheckFailedEmployer:
		result.Status = StatusMultipleEmployers
	default:
		result.Status = StatusMonthlySalariedPassed
	}
	return result
}
