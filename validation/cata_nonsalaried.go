package validation

import (
	"time"

	"github.com/shopspring/decimal"
)

const catANonSalariedWindowMonths = 6

// CatAUnsalariedValidator applies the Category A rule for people without a
// fixed salary: total gross PAYE income over the six months before the
// raised date must reach half the annual threshold. On a joint application
// the applicant is tried alone first, then the partner alone, then both
// combined; the first passing combination wins.
type CatAUnsalariedValidator struct {
	Thresholds *ThresholdCalculator
}

func NewCatAUnsalariedValidator(thresholds *ThresholdCalculator) *CatAUnsalariedValidator {
	return &CatAUnsalariedValidator{Thresholds: thresholds}
}

func (v *CatAUnsalariedValidator) Validate(request Request) Result {
	candidates := []Request{request.ApplicantOnly()}
	if request.IsJoint() {
		candidates = append(candidates, request.PartnerOnly(), request)
	}

	var result Result
	for _, candidate := range candidates {
		result = v.validateCandidate(candidate)
		if result.Status.IsPassed() {
			return result
		}
	}
	return result
}

func (v *CatAUnsalariedValidator) validateCandidate(candidate Request) Result {
	assessmentStart := candidate.RaisedDate().AddDate(0, -catANonSalariedWindowMonths, 0)
	yearlyThreshold := v.Thresholds.Yearly(candidate.Dependants())
	halfYearThreshold := yearlyThreshold.Div(decimal.NewFromInt(2))

	result := Result{
		Threshold:           yearlyThreshold,
		Individuals:         candidate.CheckedIndividuals(),
		AssessmentStartDate: assessmentStart,
		Category:            "A",
		CalculationType:     CalculationTypeCatANonSalaried,
	}

	incomes := RemoveDuplicates(AllPayeInDateRange(candidate, assessmentStart))
	if len(incomes) == 0 {
		result.Status = StatusNotEnoughRecords
		return result
	}

	if TotalPayment(incomes).LessThan(halfYearThreshold) {
		result.Status = StatusCatANonSalariedBelowThreshold
		return result
	}

	if anyPartyHasMultipleEmployers(candidate, assessmentStart) {
		if LargestSingleEmployerIncome(incomes).LessThan(halfYearThreshold) {
			result.Status = StatusMultipleEmployers
			return result
		}
	}

	result.Status = StatusCatANonSalariedPassed
	return result
}

// anyPartyHasMultipleEmployers reports whether any single party was paid by
// more than one employer within the window. A couple with one employer each
// is not a multiple-employer case.
func anyPartyHasMultipleEmployers(candidate Request, assessmentStart time.Time) bool {
	for _, applicantIncome := range candidate.ApplicantIncomes() {
		inRange := FilterByDateRange(applicantIncome.IncomeRecord.Paye, assessmentStart, candidate.RaisedDate())
		if distinctEmployerRefCount(inRange) > 1 {
			return true
		}
	}
	return false
}
