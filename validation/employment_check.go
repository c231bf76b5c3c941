package validation

import (
	"time"

	"github.com/warp/income-proving/hmrc"
)

// DefaultAssessmentStartDays is how far back from the raised date a payment
// may sit and still count as evidence of ongoing employment.
const DefaultAssessmentStartDays = 32

// EmploymentCheckValidator gates the salaried Category B check: each party
// must show at least one PAYE payment on or after the assessment-start date
// to count as currently employed. Payments dated exactly on the
// assessment-start date qualify.
type EmploymentCheckValidator struct {
	Thresholds          *ThresholdCalculator
	AssessmentStartDays int
}

func NewEmploymentCheckValidator(thresholds *ThresholdCalculator) *EmploymentCheckValidator {
	return &EmploymentCheckValidator{Thresholds: thresholds, AssessmentStartDays: DefaultAssessmentStartDays}
}

func (v *EmploymentCheckValidator) Validate(request Request) Result {
	assessmentStart := request.RaisedDate().AddDate(0, 0, -v.AssessmentStartDays)

	var qualifying []CheckedIndividual
	for _, applicantIncome := range request.ApplicantIncomes() {
		if hasPaymentOnOrAfter(applicantIncome.IncomeRecord.Paye, assessmentStart) {
			qualifying = append(qualifying, checkedIndividualFor(applicantIncome))
		}
	}

	status := StatusEmploymentCheckPassed
	if len(qualifying) == 0 {
		status = StatusEmploymentCheckFailed
	}
	return Result{
		Status:              status,
		Threshold:           v.Thresholds.Monthly(request.Dependants()),
		Individuals:         qualifying,
		AssessmentStartDate: assessmentStart,
		Category:            "B",
		CalculationType:     CalculationTypeEmploymentCheck,
	}
}

func hasPaymentOnOrAfter(paye []hmrc.Income, date time.Time) bool {
	for _, income := range paye {
		if !income.PaymentDate.Before(date) {
			return true
		}
	}
	return false
}
