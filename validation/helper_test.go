package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/income-proving/hmrc"
	"github.com/warp/income-proving/validation"
)

// =============================================================================
// MONTH ARITHMETIC
// =============================================================================

func TestDifferenceInMonthsTruncatesToFirstOfMonth(t *testing.T) {
	// GIVEN dates at opposite ends of adjacent months
	from := date(2018, time.January, 31)
	to := date(2018, time.February, 1)

	// THEN the day of month is irrelevant
	assert.Equal(t, 1, validation.DifferenceInMonths(to, from))
	assert.Equal(t, -1, validation.DifferenceInMonths(from, to))
}

func TestDifferenceInMonthsAcrossYears(t *testing.T) {
	assert.Equal(t, 13, validation.DifferenceInMonths(date(2019, time.February, 5), date(2018, time.January, 28)))
}

func TestIsSuccessiveMonthsIgnoresDayOfMonth(t *testing.T) {
	earlier := payment("1600", date(2018, time.January, 1), pizzaHutRef)
	later := payment("1600", date(2018, time.February, 28), pizzaHutRef)

	assert.True(t, validation.IsSuccessiveMonths(later, earlier))
	assert.False(t, validation.IsSuccessiveMonths(earlier, later))
}

// =============================================================================
// FILTERING AND DEDUPLICATION
// =============================================================================

func TestFilterByDateRangeIsInclusiveAndSortedDescending(t *testing.T) {
	lower := date(2018, time.March, 1)
	upper := date(2018, time.March, 31)
	incomes := []hmrc.Income{
		payment("100", date(2018, time.February, 28), pizzaHutRef), // below range
		payment("200", lower, pizzaHutRef),
		payment("300", date(2018, time.March, 15), pizzaHutRef),
		payment("400", upper, pizzaHutRef),
		payment("500", date(2018, time.April, 1), pizzaHutRef), // above range
	}

	filtered := validation.FilterByDateRange(incomes, lower, upper)

	require.Len(t, filtered, 3)
	assert.True(t, amount("400").Equal(filtered[0].Amount), "most recent first")
	assert.True(t, amount("300").Equal(filtered[1].Amount))
	assert.True(t, amount("200").Equal(filtered[2].Amount), "boundary dates included")
}

func TestRemoveDuplicatesCollapsesExactMatchesOnly(t *testing.T) {
	duplicate := payment("1600", date(2018, time.May, 25), pizzaHutRef)
	differentAmount := payment("1600.01", date(2018, time.May, 25), pizzaHutRef)
	differentEmployer := payment("1600", date(2018, time.May, 25), burgerKingRef)

	distinct := validation.RemoveDuplicates([]hmrc.Income{duplicate, differentAmount, duplicate, differentEmployer})

	assert.Len(t, distinct, 3)
}

func TestRemoveDuplicatesIsIdempotent(t *testing.T) {
	duplicate := payment("1600", date(2018, time.May, 25), pizzaHutRef)
	incomes := []hmrc.Income{duplicate, duplicate, payment("900", date(2018, time.April, 25), pizzaHutRef)}

	once := validation.RemoveDuplicates(incomes)
	twice := validation.RemoveDuplicates(once)

	assert.Equal(t, once, twice)
}

// =============================================================================
// GROUPING AND SUMMATION
// =============================================================================

func TestGroupByMonthOrdersBucketsAscending(t *testing.T) {
	incomes := []hmrc.Income{
		payment("300", date(2018, time.March, 30), pizzaHutRef),
		payment("100", date(2018, time.January, 31), pizzaHutRef),
		payment("110", date(2018, time.January, 5), pizzaHutRef),
		payment("200", date(2018, time.February, 28), pizzaHutRef),
	}

	buckets := validation.GroupByMonth(incomes)

	require.Len(t, buckets, 3)
	assert.Equal(t, time.January, buckets[0][0].PaymentDate.Month())
	assert.Len(t, buckets[0], 2, "both January payments share a bucket")
	assert.Equal(t, time.February, buckets[1][0].PaymentDate.Month())
	assert.Equal(t, time.March, buckets[2][0].PaymentDate.Month())
}

func TestTotalPaymentSupportsNegativeAdjustments(t *testing.T) {
	incomes := []hmrc.Income{
		payment("2000", date(2018, time.May, 25), pizzaHutRef),
		payment("-150.50", date(2018, time.May, 26), pizzaHutRef),
	}

	assert.True(t, amount("1849.50").Equal(validation.TotalPayment(incomes)))
	assert.True(t, validation.TotalPayment(nil).IsZero())
}

func TestLargestSingleEmployerIncome(t *testing.T) {
	incomes := []hmrc.Income{
		payment("1000", date(2018, time.May, 25), pizzaHutRef),
		payment("400", date(2018, time.April, 25), "PIZZA/REF"), // same ref, different case
		payment("1200", date(2018, time.May, 25), burgerKingRef),
	}

	assert.True(t, amount("1400").Equal(validation.LargestSingleEmployerIncome(incomes)))
	assert.True(t, validation.LargestSingleEmployerIncome(nil).IsZero())
}

// =============================================================================
// PERIOD BUCKET CHECK
// =============================================================================

func monthBuckets(amounts []string, refs []string) [][]hmrc.Income {
	buckets := make([][]hmrc.Income, len(amounts))
	for i := range amounts {
		buckets[i] = []hmrc.Income{payment(amounts[i], date(2018, time.Month(i+1), 28), refs[i])}
	}
	return buckets
}

func TestBucketCheckPassesSingleEmployerOverThreshold(t *testing.T) {
	buckets := monthBuckets(
		[]string{"1550", "1600", "1550"},
		[]string{pizzaHutRef, pizzaHutRef, pizzaHutRef},
	)

	assert.Equal(t, validation.EmployerCheckPass,
		validation.CheckEmployerConsistencyAndThreshold(buckets, amount("1550")))
}

func TestBucketCheckFailsOnAnyUnderThresholdBucket(t *testing.T) {
	buckets := monthBuckets(
		[]string{"1550", "1549.99", "1550"},
		[]string{pizzaHutRef, pizzaHutRef, pizzaHutRef},
	)

	assert.Equal(t, validation.EmployerCheckFailedThreshold,
		validation.CheckEmployerConsistencyAndThreshold(buckets, amount("1550")))
}

func TestBucketCheckFailsOnEmployerChange(t *testing.T) {
	buckets := monthBuckets(
		[]string{"1550", "1550", "1550"},
		[]string{pizzaHutRef, burgerKingRef, pizzaHutRef},
	)

	assert.Equal(t, validation.EmployerCheckFailedEmployer,
		validation.CheckEmployerConsistencyAndThreshold(buckets, amount("1550")))
}

func TestBucketCheckThresholdFailureMasksEmployerMismatch(t *testing.T) {
	// GIVEN the same bucket is both under threshold and a different employer
	buckets := monthBuckets(
		[]string{"1550", "100", "1550"},
		[]string{pizzaHutRef, burgerKingRef, pizzaHutRef},
	)

	assert.Equal(t, validation.EmployerCheckFailedThreshold,
		validation.CheckEmployerConsistencyAndThreshold(buckets, amount("1550")))
}

func TestBucketCheckEmployerMatchIsCaseInsensitive(t *testing.T) {
	buckets := monthBuckets(
		[]string{"1550", "1550"},
		[]string{"Pizza/Ref", "pizza/REF"},
	)

	assert.Equal(t, validation.EmployerCheckPass,
		validation.CheckEmployerConsistencyAndThreshold(buckets, amount("1550")))
}
