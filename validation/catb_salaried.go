package validation

// Window and count constants for the Category B salaried check. The window
// is a fixed 366 days rather than a 12-calendar-month subtraction, so a
// payment dated a year and a day before the raised date still falls inside
// it on non-leap years.
const (
	catBWindowDays  = 366
	catBMinPayments = 12
)

// CatBSalariedValidator applies the Category B rule: twelve consecutive
// monthly payments from one employer over the year before the raised date,
// each month at or above the monthly threshold. The employment check gates
// it; incomes are never combined across a couple, each party is judged
// alone with the applicant tried first.
type CatBSalariedValidator struct {
	Thresholds      *ThresholdCalculator
	EmploymentCheck *EmploymentCheckValidator
}

func NewCatBSalariedValidator(thresholds *ThresholdCalculator) *CatBSalariedValidator {
	return &CatBSalariedValidator{
		Thresholds:      thresholds,
		EmploymentCheck: NewEmploymentCheckValidator(thresholds),
	}
}

func (v *CatBSalariedValidator) Validate(request Request) Result {
	if gate := v.EmploymentCheck.Validate(request); !gate.Status.IsPassed() {
		return gate
	}

	applicantResult := v.validateSingle(request.ApplicantOnly())
	if applicantResult.Status.IsPassed() || !request.IsJoint() {
		return applicantResult
	}
	return v.validateSingle(request.PartnerOnly())
}

func (v *CatBSalariedValidator) validateSingle(single Request) Result {
	assessmentStart := single.RaisedDate().AddDate(0, 0, -catBWindowDays)
	monthlyThreshold := v.Thresholds.Monthly(single.Dependants())

	result := Result{
		Threshold:           monthlyThreshold,
		Individuals:         single.CheckedIndividuals(),
		AssessmentStartDate: assessmentStart,
		Category:            "B",
		CalculationType:     CalculationTypeCatBSalaried,
	}

	incomes := RemoveDuplicates(AllPayeInDateRange(single, assessmentStart))
	if len(incomes) < catBMinPayments {
		result.Status = StatusNotEnoughRecords
		return result
	}

	buckets := GroupByMonth(incomes)
	if len(buckets) < catBMinPayments {
		result.Status = StatusNotEnoughRecords
		return result
	}

	for i := 0; i < len(buckets)-1; i++ {
		if !IsSuccessiveMonths(buckets[i+1][0], buckets[i][0]) {
			result.Status = StatusNonConsecutiveMonths
			return result
		}
	}

	switch CheckEmployerConsistencyAndThreshold(buckets, monthlyThreshold) {
	case EmployerCheckFailedThreshold:
		result.Status = StatusCatBSalariedBelowThreshold
	case EmployerCheckFailedEmployer:
		result.Status = StatusMultipleEmployers
	default:
		result.Status = StatusCatBSalariedPassed
	}
	return result
}
