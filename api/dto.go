/*
dto.go - wire types for the HTTP surface

PURPOSE:
  JSON request/response shapes and their mapping to and from the domain
  types. Dates travel as "2006-01-02" strings; money travels as decimal
  strings so no precision is lost in transit.

SEE ALSO:
  - handlers.go: the handlers that populate these
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/income-proving/hmrc"
	"github.com/warp/income-proving/validation"
)

const dateFormat = "2006-01-02"

// =============================================================================
// REQUEST
// =============================================================================

// IndividualDTO identifies one person in a financial status request.
type IndividualDTO struct {
	Forename    string `json:"forename"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"dateOfBirth"`
	Nino        string `json:"nino"`
}

// FinancialStatusRequest is the body of POST /incomeproving/v3/individual/financialstatus.
// One individual for a solo application, two (applicant then partner) for a
// joint one.
type FinancialStatusRequest struct {
	Individuals           []IndividualDTO `json:"individuals"`
	ApplicationRaisedDate string          `json:"applicationRaisedDate"`
	Dependants            int             `json:"dependants"`
}

func (r FinancialStatusRequest) validate() error {
	if len(r.Individuals) < 1 || len(r.Individuals) > 2 {
		return fmt.Errorf("expected 1 or 2 individuals, got %d", len(r.Individuals))
	}
	for i, individual := range r.Individuals {
		if individual.Nino == "" {
			return fmt.Errorf("individual %d: nino is required", i)
		}
		if _, err := time.Parse(dateFormat, individual.DateOfBirth); err != nil {
			return fmt.Errorf("individual %d: bad dateOfBirth: %w", i, err)
		}
	}
	if r.Dependants < 0 {
		return fmt.Errorf("dependants must not be negative")
	}
	if _, err := time.Parse(dateFormat, r.ApplicationRaisedDate); err != nil {
		return fmt.Errorf("bad applicationRaisedDate: %w", err)
	}
	return nil
}

func (d IndividualDTO) toDomain() (hmrc.Individual, error) {
	dob, err := time.Parse(dateFormat, d.DateOfBirth)
	if err != nil {
		return hmrc.Individual{}, err
	}
	return hmrc.Individual{Forename: d.Forename, Surname: d.Surname, Nino: d.Nino, DateOfBirth: dob}, nil
}

// =============================================================================
// RESPONSE
// =============================================================================

// ResponseStatus is the machine-readable outcome header on every response.
type ResponseStatus struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response status codes.
const (
	codeOK             = "100"
	codeInvalidRequest = "0004"
	codeNotFound       = "0009"
	codeInternalError  = "0005"
)

// CheckedIndividualDTO is one judged person inside a category check.
type CheckedIndividualDTO struct {
	Nino      string   `json:"nino"`
	Employers []string `json:"employers"`
}

// CategoryCheckDTO serializes one validation.CategoryCheck.
type CategoryCheckDTO struct {
	Category              string                 `json:"category"`
	CalculationType       string                 `json:"calculationType"`
	Passed                bool                   `json:"passed"`
	ApplicationRaisedDate string                 `json:"applicationRaisedDate"`
	AssessmentStartDate   string                 `json:"assessmentStartDate"`
	FailureReason         string                 `json:"failureReason,omitempty"`
	Threshold             decimal.Decimal        `json:"threshold"`
	Individuals           []CheckedIndividualDTO `json:"individuals"`
}

// FinancialStatusResponse is the success body of the financial status check.
type FinancialStatusResponse struct {
	Status         ResponseStatus     `json:"status"`
	Individuals    []IndividualDTO    `json:"individuals"`
	CategoryChecks []CategoryCheckDTO `json:"categoryChecks"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status ResponseStatus `json:"status"`
}

func toCategoryCheckDTO(check validation.CategoryCheck) CategoryCheckDTO {
	individuals := make([]CheckedIndividualDTO, 0, len(check.Individuals))
	for _, individual := range check.Individuals {
		individuals = append(individuals, CheckedIndividualDTO{Nino: individual.Nino, Employers: individual.Employers})
	}

	dto := CategoryCheckDTO{
		Category:              check.Category,
		CalculationType:       check.CalculationType,
		Passed:                check.Passed,
		ApplicationRaisedDate: check.ApplicationRaisedDate.Format(dateFormat),
		AssessmentStartDate:   check.AssessmentStartDate.Format(dateFormat),
		Threshold:             check.Threshold,
		Individuals:           individuals,
	}
	if !check.Passed {
		dto.FailureReason = string(check.Status)
	}
	return dto
}

func toIndividualDTO(individual hmrc.Individual) IndividualDTO {
	return IndividualDTO{
		Forename:    individual.Forename,
		Surname:     individual.Surname,
		DateOfBirth: individual.DateOfBirth.Format(dateFormat),
		Nino:        individual.Nino,
	}
}
