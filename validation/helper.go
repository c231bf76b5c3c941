/*
helper.go - Shared primitives used by every category validator

PURPOSE:
  Date-range filtering, duplicate removal, month/week grouping, summation,
  and the successor / employer-consistency tests. These are contracts shared
  across validators, not a component with state: every function is pure.

MONTH ARITHMETIC:
  DifferenceInMonths deliberately truncates both dates to the first of their
  month before subtracting. Two dates 29 days apart in different months are
  "1 month apart"; two dates in the same month are 0 apart regardless of day
  spread. Payday jitter (paid the 14th one month, the 17th the next) must
  still count as consecutive months.

SEE ALSO:
  - catb_salaried.go, cata_salaried_monthly.go: the heaviest users
*/
package validation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/income-proving/hmrc"
)

// =============================================================================
// MONTH ARITHMETIC
// =============================================================================

// DifferenceInMonths returns the number of whole calendar months from 'from'
// to 'to', after truncating both dates to the first of their month.
func DifferenceInMonths(to, from time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// IsSuccessiveMonths reports whether first's payment month immediately
// follows second's, by calendar month (day-of-month is irrelevant).
func IsSuccessiveMonths(first, second hmrc.Income) bool {
	return DifferenceInMonths(first.PaymentDate, second.PaymentDate) == 1
}

// =============================================================================
// FILTERING AND DEDUPLICATION
// =============================================================================

// FilterByDateRange keeps incomes whose payment date lies in [lower, upper],
// both ends inclusive, sorted most-recent-first. Callers that truncate the
// slice afterwards rely on that ordering.
func FilterByDateRange(incomes []hmrc.Income, lower, upper time.Time) []hmrc.Income {
	sorted := make([]hmrc.Income, len(incomes))
	copy(sorted, incomes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentDate.After(sorted[j].PaymentDate)
	})

	var inRange []hmrc.Income
	for _, income := range sorted {
		if !income.PaymentDate.Before(lower) && !income.PaymentDate.After(upper) {
			inRange = append(inRange, income)
		}
	}
	return inRange
}

// RemoveDuplicates collapses exact-value duplicate pay records, keeping
// first occurrences in order. Idempotent.
func RemoveDuplicates(incomes []hmrc.Income) []hmrc.Income {
	var distinct []hmrc.Income
	for _, income := range incomes {
		duplicate := false
		for _, kept := range distinct {
			if income.Equal(kept) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			distinct = append(distinct, income)
		}
	}
	return distinct
}

// =============================================================================
// REQUEST-WIDE ACCESS
// =============================================================================

// AllPayeIncomes flattens the PAYE records of every party in the request.
func AllPayeIncomes(request Request) []hmrc.Income {
	var paye []hmrc.Income
	for _, ai := range request.ApplicantIncomes() {
		paye = append(paye, ai.IncomeRecord.Paye...)
	}
	return paye
}

// AllPayeInDateRange flattens and filters to [assessmentStartDate, raised].
func AllPayeInDateRange(request Request, assessmentStartDate time.Time) []hmrc.Income {
	return FilterByDateRange(AllPayeIncomes(request), assessmentStartDate, request.RaisedDate())
}

// =============================================================================
// GROUPING
// =============================================================================

// GroupByMonth buckets incomes by (year, month) of payment date, buckets
// ordered ascending. A bucket's representative month is its first element.
func GroupByMonth(incomes []hmrc.Income) [][]hmrc.Income {
	byMonth := make(map[int][]hmrc.Income)
	var keys []int
	for _, income := range incomes {
		key := income.YearAndMonth()
		if _, ok := byMonth[key]; !ok {
			keys = append(keys, key)
		}
		byMonth[key] = append(byMonth[key], income)
	}

	sort.Ints(keys)
	buckets := make([][]hmrc.Income, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, byMonth[key])
	}
	return buckets
}

// =============================================================================
// SUMMATION
// =============================================================================

// TotalPayment sums the amounts, zero for empty input. Negative entries
// (employer adjustments) subtract.
func TotalPayment(incomes []hmrc.Income) decimal.Decimal {
	total := decimal.Zero
	for _, income := range incomes {
		total = total.Add(income.Amount)
	}
	return total
}

// LargestSingleEmployerIncome groups by employer PAYE reference, sums each
// group and returns the maximum group sum. Zero for empty input.
func LargestSingleEmployerIncome(incomes []hmrc.Income) decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, income := range incomes {
		ref := hmrc.NormalizeEmployerRef(income.EmployerPayeReference)
		totals[ref] = totals[ref].Add(income.Amount)
	}

	largest := decimal.Zero
	for _, total := range totals {
		if total.GreaterThan(largest) {
			largest = total
		}
	}
	return largest
}

// distinctEmployerRefCount counts distinct (normalized) employer references.
func distinctEmployerRefCount(incomes []hmrc.Income) int {
	refs := make(map[string]bool)
	for _, income := range incomes {
		refs[hmrc.NormalizeEmployerRef(income.EmployerPayeReference)] = true
	}
	return len(refs)
}

// =============================================================================
// PERIOD BUCKET CHECK
// =============================================================================

// EmployerCheck is the outcome of the combined threshold + employer
// consistency test over period buckets.
type EmployerCheck int

const (
	EmployerCheckPass EmployerCheck = iota
	EmployerCheckFailedThreshold
	EmployerCheckFailedEmployer
)

// CheckEmployerConsistencyAndThreshold walks the period buckets in order:
// each bucket's summed payment must meet the threshold, and each bucket's
// representative employer reference must match the first bucket's
// (case-insensitively). The threshold is tested before the employer within
// a bucket, so a threshold failure masks an employer mismatch there.
func CheckEmployerConsistencyAndThreshold(buckets [][]hmrc.Income, threshold decimal.Decimal) EmployerCheck {
	if len(buckets) == 0 || len(buckets[0]) == 0 {
		return EmployerCheckPass
	}

	reference := buckets[0][0].EmployerPayeReference
	for _, bucket := range buckets {
		if TotalPayment(bucket).LessThan(threshold) {
			return EmployerCheckFailedThreshold
		}
		if !bucket[0].SameEmployer(reference) {
			return EmployerCheckFailedEmployer
		}
	}
	return EmployerCheckPass
}
