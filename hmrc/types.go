/*
Package hmrc holds the tax-authority income records the validation engine
consumes, plus the thin HTTP client that retrieves them.

PURPOSE:
  Models the data HMRC returns per applicant: PAYE pay records, annual
  self-assessment returns, employments, and the identity HMRC matched the
  nino against. These records are immutable once constructed; the engine
  only reads them.

KEY TYPES:
  - Income: one PAYE pay record. Equality is full-field equality; duplicate
    records from upstream are collapsed by the validation helpers.
  - IncomeRecord: everything HMRC knows about one person.
  - Individual: the identity HMRC confirmed (may legitimately differ in name
    from the applicant for the same nino, and may be absent).

SEE ALSO:
  - client.go: HTTP retrieval of IncomeRecords
  - validation/: the engine that judges these records
*/
package hmrc

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTITY
// =============================================================================

// Individual is the identity HMRC confirmed for a nino.
type Individual struct {
	Forename    string
	Surname     string
	Nino        string
	DateOfBirth time.Time
}

// =============================================================================
// PAY RECORDS
// =============================================================================

// Income is a single PAYE pay record. Amount may be negative (employer
// adjustments). WeekPayNumber and MonthPayNumber are optional; which of the
// two is populated drives pay-frequency classification.
type Income struct {
	Amount                decimal.Decimal
	PaymentDate           time.Time
	WeekPayNumber         *int
	MonthPayNumber        *int
	EmployerPayeReference string
}

// YearAndMonth returns a sortable (year, month) key for the payment date.
func (i Income) YearAndMonth() int {
	return i.PaymentDate.Year()*100 + int(i.PaymentDate.Month())
}

// Equal reports full-field equality. Used for deduplication: HMRC sometimes
// returns the same pay record twice.
func (i Income) Equal(other Income) bool {
	return i.Amount.Equal(other.Amount) &&
		i.PaymentDate.Equal(other.PaymentDate) &&
		intPtrEqual(i.WeekPayNumber, other.WeekPayNumber) &&
		intPtrEqual(i.MonthPayNumber, other.MonthPayNumber) &&
		i.EmployerPayeReference == other.EmployerPayeReference
}

// SameEmployer compares employer PAYE references, case- and space-insensitively.
func (i Income) SameEmployer(reference string) bool {
	return NormalizeEmployerRef(i.EmployerPayeReference) == NormalizeEmployerRef(reference)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// NormalizeEmployerRef canonicalizes a PAYE reference for comparison.
func NormalizeEmployerRef(reference string) string {
	return strings.ToLower(strings.TrimSpace(reference))
}

// =============================================================================
// EMPLOYMENTS
// =============================================================================

type Employer struct {
	Name          string
	PayeReference string
}

// Employment wraps one employer; a person can hold several concurrently.
type Employment struct {
	Employer Employer
}

// =============================================================================
// SELF ASSESSMENT
// =============================================================================

// AnnualSelfAssessmentTaxReturn is declared self-employment income for one
// tax year. Not PAYE: excluded from all current validators' threshold math.
type AnnualSelfAssessmentTaxReturn struct {
	TaxYear              string
	SelfAssessmentIncome decimal.Decimal
}

// =============================================================================
// INCOME RECORD
// =============================================================================

// IncomeRecord is everything HMRC returned for one person. Lists may be
// empty; Individual may be nil when HMRC did not echo a matched identity.
type IncomeRecord struct {
	Paye           []Income
	SelfAssessment []AnnualSelfAssessmentTaxReturn
	Employments    []Employment
	Individual     *Individual
}

// EmployerNames returns the distinct employer names across all employments,
// in first-seen order.
func (r IncomeRecord) EmployerNames() []string {
	seen := make(map[string]bool, len(r.Employments))
	var names []string
	for _, e := range r.Employments {
		if !seen[e.Employer.Name] {
			seen[e.Employer.Name] = true
			names = append(names, e.Employer.Name)
		}
	}
	return names
}
