/*
Package validation implements the income validation engine: the category
eligibility rule-sets, the dependant-adjusted threshold calculator, the
employment-continuity gate, and the orchestrating service.

PURPOSE:
  Judges whether an applicant (optionally with a partner) meets the minimum
  income requirement, from PAYE pay records already retrieved from HMRC.
  Every operation here is a deterministic, side-effect-free transformation
  over immutable inputs: no I/O, no shared state, no retries. Business
  outcomes are Status values, never errors.

KEY TYPES IN THIS FILE:
  - Applicant: identity as supplied by the caller
  - ApplicantIncome: one person paired with their HMRC income record
  - Request: one or two ApplicantIncomes + raised date + dependants
  - CheckedIndividual: who was judged, against which employers
  - Result: one validator's outcome
  - CategoryCheck: the per-category value returned to the caller

ORDERING INVARIANT:
  The first entry of a Request is always the primary applicant; when both
  parties qualify, the applicant's CheckedIndividual precedes the partner's.

SEE ALSO:
  - status.go: the outcome code enumeration
  - helper.go: shared date/grouping/summation primitives
  - service.go: the [Category A, Category B] orchestration
*/
package validation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/income-proving/hmrc"
)

// =============================================================================
// APPLICANTS
// =============================================================================

// Applicant is the identity the caller asked us to assess. HMRC may confirm
// a different name for the same nino; the nino is the correlation key.
type Applicant struct {
	Forename    string
	Surname     string
	DateOfBirth time.Time
	Nino        string
}

// ApplicantIncome pairs one applicant with their HMRC income record.
type ApplicantIncome struct {
	Applicant    Applicant
	IncomeRecord hmrc.IncomeRecord
}

// CheckedIndividual summarizes one judged person: their nino and the
// distinct employer names that contributed to the check.
type CheckedIndividual struct {
	Nino      string
	Employers []string
}

// =============================================================================
// REQUEST
// =============================================================================

// Request is one validation request: an ordered list of one (solo) or two
// (joint: applicant then partner) ApplicantIncomes, the application raised
// date, and the dependants count. Immutable once constructed.
type Request struct {
	applicantIncomes []ApplicantIncome
	raisedDate       time.Time
	dependants       int
}

func NewRequest(applicantIncomes []ApplicantIncome, raisedDate time.Time, dependants int) Request {
	incomes := make([]ApplicantIncome, len(applicantIncomes))
	copy(incomes, applicantIncomes)
	return Request{applicantIncomes: incomes, raisedDate: raisedDate, dependants: dependants}
}

func (r Request) ApplicantIncomes() []ApplicantIncome {
	incomes := make([]ApplicantIncome, len(r.applicantIncomes))
	copy(incomes, r.applicantIncomes)
	return incomes
}

func (r Request) RaisedDate() time.Time { return r.raisedDate }
func (r Request) Dependants() int       { return r.dependants }

// IsJoint reports whether a partner accompanies the applicant.
func (r Request) IsJoint() bool { return len(r.applicantIncomes) > 1 }

// ApplicantOnly narrows a request to its primary applicant.
func (r Request) ApplicantOnly() Request {
	return Request{applicantIncomes: r.applicantIncomes[:1], raisedDate: r.raisedDate, dependants: r.dependants}
}

// PartnerOnly narrows a joint request to the partner. Panics on solo
// requests; callers must check IsJoint first.
func (r Request) PartnerOnly() Request {
	return Request{applicantIncomes: r.applicantIncomes[1:2], raisedDate: r.raisedDate, dependants: r.dependants}
}

// CheckedIndividuals projects every party in the request into a
// CheckedIndividual, in request order. The nino comes from the HMRC-matched
// identity when present, otherwise from the request applicant.
func (r Request) CheckedIndividuals() []CheckedIndividual {
	individuals := make([]CheckedIndividual, 0, len(r.applicantIncomes))
	for _, ai := range r.applicantIncomes {
		individuals = append(individuals, checkedIndividualFor(ai))
	}
	return individuals
}

func checkedIndividualFor(ai ApplicantIncome) CheckedIndividual {
	nino := ai.Applicant.Nino
	if ai.IncomeRecord.Individual != nil {
		nino = ai.IncomeRecord.Individual.Nino
	}
	return CheckedIndividual{Nino: nino, Employers: ai.IncomeRecord.EmployerNames()}
}

// =============================================================================
// RESULTS
// =============================================================================

// Result is the outcome of one validator over one request.
type Result struct {
	Status              Status
	Threshold           decimal.Decimal
	Individuals         []CheckedIndividual
	AssessmentStartDate time.Time
	Category            string
	CalculationType     string
}

// Calculation-type labels reported on results, one per rule-set. These are
// part of the external contract: callers display them verbatim.
const (
	CalculationTypeCatASalaried        = "Category A salaried"
	CalculationTypeCatASalariedMonthly = "Category A salaried monthly"
	CalculationTypeCatASalariedWeekly  = "Category A salaried weekly"
	CalculationTypeCatANonSalaried     = "Category A Non Salaried"
	CalculationTypeCatBSalaried        = "Category B salaried"
	CalculationTypeEmploymentCheck     = "Employment check"
)

// CategoryCheck is the per-category value handed back to the caller; the
// API layer serializes these directly.
type CategoryCheck struct {
	Category              string
	CalculationType       string
	Passed                bool
	ApplicationRaisedDate time.Time
	AssessmentStartDate   time.Time
	Status                Status
	Threshold             decimal.Decimal
	Individuals           []CheckedIndividual
}

// Validator is one eligibility rule-set over a request. All category
// validators and the employment check implement it.
type Validator interface {
	Validate(request Request) Result
}
