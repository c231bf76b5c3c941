package validation

import "github.com/shopspring/decimal"

// =============================================================================
// THRESHOLD CALCULATOR
// =============================================================================

// ThresholdCalculator converts a dependants count into annual, monthly and
// weekly income thresholds. The schedule is a fixed table, not a formula:
// the documented tiers are irregular between 0 and 1 dependants.
//
// Documented tiers (annual):
//   0 -> 18,600    1 -> 22,400    2 -> 24,800
//   3 -> 27,200    4 -> 29,600    5 -> 32,000
// Beyond 5, each additional dependant adds the per-dependant step (2,400).
type ThresholdCalculator struct {
	Base           decimal.Decimal // 0 dependants
	FirstDependant decimal.Decimal // 1 dependant
	DependantStep  decimal.Decimal // each dependant beyond the first
}

// NewThresholdCalculator returns the calculator with the documented schedule.
func NewThresholdCalculator() *ThresholdCalculator {
	return &ThresholdCalculator{
		Base:           decimal.NewFromInt(18600),
		FirstDependant: decimal.NewFromInt(22400),
		DependantStep:  decimal.NewFromInt(2400),
	}
}

// Yearly returns the annual threshold for the given dependants count.
// Never below the 0-dependants base.
func (c *ThresholdCalculator) Yearly(dependants int) decimal.Decimal {
	if dependants <= 0 {
		return c.Base
	}
	if dependants == 1 {
		return c.FirstDependant
	}
	return c.FirstDependant.Add(c.DependantStep.Mul(decimal.NewFromInt(int64(dependants - 1))))
}

// Monthly returns the annual threshold divided over 12 months.
func (c *ThresholdCalculator) Monthly(dependants int) decimal.Decimal {
	return c.Yearly(dependants).Div(decimal.NewFromInt(12))
}

// Weekly returns the annual threshold divided over 52 weeks.
func (c *ThresholdCalculator) Weekly(dependants int) decimal.Decimal {
	return c.Yearly(dependants).Div(decimal.NewFromInt(52))
}
