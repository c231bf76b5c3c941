package validation_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/income-proving/validation"
)

func TestYearlyThresholdSchedule(t *testing.T) {
	calculator := validation.NewThresholdCalculator()

	cases := []struct {
		dependants int
		expected   string
	}{
		{0, "18600"},
		{1, "22400"},
		{2, "24800"},
		{3, "27200"},
		{4, "29600"},
		{5, "32000"},
		{6, "34400"},
		{7, "36800"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d dependants", tc.dependants), func(t *testing.T) {
			assert.True(t, amount(tc.expected).Equal(calculator.Yearly(tc.dependants)),
				"expected %s, got %s", tc.expected, calculator.Yearly(tc.dependants))
		})
	}
}

func TestNegativeDependantsTreatedAsNone(t *testing.T) {
	calculator := validation.NewThresholdCalculator()

	assert.True(t, amount("18600").Equal(calculator.Yearly(-3)))
}

func TestYearlyThresholdIsMonotonic(t *testing.T) {
	// THEN: adding a dependant never lowers the requirement
	calculator := validation.NewThresholdCalculator()

	for d := 1; d <= 20; d++ {
		assert.True(t, calculator.Yearly(d).GreaterThanOrEqual(calculator.Yearly(d-1)),
			"threshold dropped between %d and %d dependants", d-1, d)
	}
}

func TestMonthlyAndWeeklyDeriveFromYearly(t *testing.T) {
	calculator := validation.NewThresholdCalculator()

	assert.True(t, amount("1550").Equal(calculator.Monthly(0)), "18600 / 12, got %s", calculator.Monthly(0))

	// 18600 / 52 does not terminate; fifty-two weekly thresholds must still
	// reconstruct the annual figure to within a penny
	reconstructed := calculator.Weekly(0).Mul(amount("52"))
	assert.True(t, reconstructed.Sub(amount("18600")).Abs().LessThan(amount("0.01")),
		"52 weeks at the weekly threshold came to %s", reconstructed)
}
