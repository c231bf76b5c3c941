package validation

// Service runs every top-level category against a request and projects the
// results into the caller-facing CategoryCheck list. Output order is fixed:
// Category A first, then Category B, independent of which passed. This
// layer cannot itself fail; every outcome a sub-validator can produce is a
// Status, never an error.
type Service struct {
	validators []Validator
}

func NewService(thresholds *ThresholdCalculator) *Service {
	return &Service{validators: []Validator{
		NewCatAValidator(thresholds),
		NewCatBSalariedValidator(thresholds),
	}}
}

func (s *Service) Validate(request Request) []CategoryCheck {
	checks := make([]CategoryCheck, 0, len(s.validators))
	for _, validator := range s.validators {
		checks = append(checks, toCategoryCheck(validator.Validate(request), request))
	}
	return checks
}

func toCategoryCheck(result Result, request Request) CategoryCheck {
	return CategoryCheck{
		Category:              result.Category,
		CalculationType:       result.CalculationType,
		Passed:                result.Status.IsPassed(),
		ApplicationRaisedDate: request.RaisedDate(),
		AssessmentStartDate:   result.AssessmentStartDate,
		Status:                result.Status,
		Threshold:             result.Threshold,
		Individuals:           result.Individuals,
	}
}
