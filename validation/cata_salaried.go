package validation

import (
	"github.com/warp/income-proving/validation/frequency"
)

// CatASalariedValidator dispatches a salaried Category A check to the
// monthly or weekly variant based on the primary applicant's pay frequency.
// Fortnightly and four-weekly cycles have no salaried rule-set, and a
// frequency change mid-window makes the record unjudgeable; both surface as
// a failing status the caller can fall back from.
type CatASalariedValidator struct {
	Thresholds *ThresholdCalculator
	Monthly    *CatASalariedMonthlyValidator
	Weekly     *CatASalariedWeeklyValidator
}

func NewCatASalariedValidator(thresholds *ThresholdCalculator) *CatASalariedValidator {
	return &CatASalariedValidator{
		Thresholds: thresholds,
		Monthly:    NewCatASalariedMonthlyValidator(thresholds),
		Weekly:     NewCatASalariedWeeklyValidator(thresholds),
	}
}

func (v *CatASalariedValidator) Validate(request Request) Result {
	primary := request.ApplicantIncomes()[0]

	switch frequency.Calculate(primary.IncomeRecord) {
	case frequency.CalendarMonthly:
		return v.Monthly.Validate(request)
	case frequency.Weekly:
		return v.Weekly.Validate(request)
	case frequency.Changed:
		return v.frequencyFailure(request, StatusPayFrequencyChange)
	default:
		return v.frequencyFailure(request, StatusUnknownPayFrequency)
	}
}

func (v *CatASalariedValidator) frequencyFailure(request Request, status Status) Result {
	return Result{
		Status:              status,
		Threshold:           v.Thresholds.Yearly(request.Dependants()),
		Individuals:         request.CheckedIndividuals(),
		AssessmentStartDate: request.RaisedDate().AddDate(0, -catAMonthlyWindowMonths, 0),
		Category:            "A",
		CalculationType:     CalculationTypeCatASalaried,
	}
}

// CatAValidator is the top-level Category A rule: prefer the salaried
// outcome, fall back to the non-salaried rule when the salaried one fails,
// and report whichever tells the clearer story. A salaried result that
// never got past frequency classification is always superseded by the
// non-salaried outcome.
type CatAValidator struct {
	Salaried    *CatASalariedValidator
	NonSalaried *CatAUnsalariedValidator
}

func NewCatAValidator(thresholds *ThresholdCalculator) *CatAValidator {
	return &CatAValidator{
		Salaried:    NewCatASalariedValidator(thresholds),
		NonSalaried: NewCatAUnsalariedValidator(thresholds),
	}
}

func (v *CatAValidator) Validate(request Request) Result {
	salaried := v.Salaried.Validate(request)
	if salaried.Status.IsPassed() {
		return salaried
	}

	nonSalaried := v.NonSalaried.Validate(request)
	if nonSalaried.Status.IsPassed() {
		return nonSalaried
	}

	if salaried.Status == StatusUnknownPayFrequency || salaried.Status == StatusPayFrequencyChange {
		return nonSalaried
	}
	return salaried
}
