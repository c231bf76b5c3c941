/*
Package frequency classifies a set of PAYE pay records into a pay-frequency
category.

PURPOSE:
  Category A salaried checks need to know whether someone is paid monthly or
  weekly before the right rule-set can run. Explicit week/month pay numbers
  on the records are trusted first; only when the numbering is absent or
  inconclusive does the classifier fall back to inferring a frequency from
  the average gap between payment dates.

PRIORITY ORDER:
  1. Mixed numbering styles across records         -> Changed
  2. Every record carries a month pay number       -> CalendarMonthly
  3. Every record carries a week pay number        -> gap of 1/2/4 between
     distinct sorted week numbers gives Weekly / Fortnightly / FourWeekly
  4. Otherwise: average day gap between earliest and latest payment, mapped
     to the nearest known bucket. Fewer than 2 payments defaults to
     CalendarMonthly.

SEE ALSO:
  - validation/cata_salaried.go: the only production caller
*/
package frequency

import (
	"sort"

	"github.com/warp/income-proving/hmrc"
)

// Frequency is a pay-frequency category.
type Frequency string

const (
	CalendarMonthly Frequency = "CALENDAR_MONTHLY"
	Weekly          Frequency = "WEEKLY"
	Fortnightly     Frequency = "FORTNIGHTLY"
	FourWeekly      Frequency = "FOUR_WEEKLY"
	Changed         Frequency = "CHANGED"
	Unknown         Frequency = "UNKNOWN"
)

// Calculate classifies the PAYE list of an income record. Never returns
// Unknown: the date-gap fallback always resolves to a concrete bucket.
func Calculate(record hmrc.IncomeRecord) Frequency {
	if hasDifferentNumberStyles(record.Paye) {
		return Changed
	}

	if f := byMonthNumbers(record.Paye); f != Unknown {
		return f
	}
	if f := byWeekNumbers(record.Paye); f != Unknown {
		return f
	}
	return byPaymentDates(record.Paye)
}

// =============================================================================
// NUMBER-STYLE DETECTION
// =============================================================================

type numberStyle int

const (
	styleMonthNumber numberStyle = iota
	styleWeekNumber
	styleNone
)

func styleOf(income hmrc.Income) numberStyle {
	switch {
	case income.MonthPayNumber != nil:
		return styleMonthNumber
	case income.WeekPayNumber != nil:
		return styleWeekNumber
	default:
		return styleNone
	}
}

func hasDifferentNumberStyles(paye []hmrc.Income) bool {
	styles := make(map[numberStyle]bool)
	for _, income := range paye {
		styles[styleOf(income)] = true
	}
	return len(styles) > 1
}

// =============================================================================
// EXPLICIT NUMBERING
// =============================================================================

func byMonthNumbers(paye []hmrc.Income) Frequency {
	for _, income := range paye {
		if income.MonthPayNumber == nil {
			return Unknown
		}
	}
	return CalendarMonthly
}

func byWeekNumbers(paye []hmrc.Income) Frequency {
	weekNumbers := make(map[int]bool)
	for _, income := range paye {
		if income.WeekPayNumber == nil {
			return Unknown
		}
		weekNumbers[*income.WeekPayNumber] = true
	}
	if len(weekNumbers) == 0 {
		return Unknown
	}

	sorted := make([]int, 0, len(weekNumbers))
	for week := range weekNumbers {
		sorted = append(sorted, week)
	}
	sort.Ints(sorted)

	switch {
	case differenceAlways(sorted, 1):
		return Weekly
	case differenceAlways(sorted, 2):
		return Fortnightly
	case differenceAlways(sorted, 4):
		return FourWeekly
	}
	return Unknown
}

func differenceAlways(weekNumbers []int, difference int) bool {
	for i := 0; i < len(weekNumbers)-1; i++ {
		if weekNumbers[i+1]-weekNumbers[i] != difference {
			return false
		}
	}
	return true
}

// =============================================================================
// DATE-GAP FALLBACK
// =============================================================================

// byPaymentDates infers frequency from the average day gap between the
// earliest and latest payment. Explicit numbering always wins over this.
func byPaymentDates(paye []hmrc.Income) Frequency {
	if len(paye) < 2 {
		return CalendarMonthly
	}

	earliest, latest := paye[0].PaymentDate, paye[0].PaymentDate
	for _, income := range paye[1:] {
		if income.PaymentDate.Before(earliest) {
			earliest = income.PaymentDate
		}
		if income.PaymentDate.After(latest) {
			latest = income.PaymentDate
		}
	}

	daysInRange := int(latest.Sub(earliest).Hours() / 24)
	averageGap := int(float64(daysInRange)/float64(len(paye)-1) + 0.5)
	return ofAverageGap(averageGap)
}

// ofAverageGap maps a day gap to the nearest known bucket. Boundaries sit at
// the midpoints of the bucket gaps (7, 14, 28, ~30); anything wider than a
// four-weekly cycle reads as calendar monthly.
func ofAverageGap(days int) Frequency {
	switch {
	case days <= 10:
		return Weekly
	case days <= 21:
		return Fortnightly
	case days <= 29:
		return FourWeekly
	default:
		return CalendarMonthly
	}
}
