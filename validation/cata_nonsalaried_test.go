package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/income-proving/hmrc"
	"github.com/warp/income-proving/validation"
)

func newNonSalaried() *validation.CatAUnsalariedValidator {
	return validation.NewCatAUnsalariedValidator(validation.NewThresholdCalculator())
}

func TestNonSalariedPassesOnHalfAnnualThreshold(t *testing.T) {
	// GIVEN: two payments of 9300 in the days before the raised date,
	// totalling exactly half the 18600 annual threshold
	raised := date(2018, time.June, 1)
	request := soloRequest(raised, 0, []hmrc.Income{
		payment("9300", raised.AddDate(0, 0, -1), pizzaHutRef),
		payment("9300", raised.AddDate(0, 0, -2), pizzaHutRef),
	}, pizzaHut)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedPassed, result.Status)
	assert.Equal(t, "A", result.Category)
	assert.Equal(t, "Category A Non Salaried", result.CalculationType)
	assert.True(t, amount("18600").Equal(result.Threshold), "annual figure is the one reported")
	assert.Equal(t, raised.AddDate(0, -6, 0), result.AssessmentStartDate)
}

func TestNonSalariedFailsJustUnderHalfThreshold(t *testing.T) {
	raised := date(2018, time.June, 1)
	request := soloRequest(raised, 0, []hmrc.Income{
		payment("9299.99", raised.AddDate(0, 0, -1), pizzaHutRef),
	}, pizzaHut)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedBelowThreshold, result.Status)
}

func TestNonSalariedNoRecordsInWindow(t *testing.T) {
	// GIVEN: the only payment predates the six-month window
	raised := date(2018, time.June, 1)
	request := soloRequest(raised, 0, []hmrc.Income{
		payment("20000", raised.AddDate(0, -7, 0), pizzaHutRef),
	}, pizzaHut)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusNotEnoughRecords, result.Status)
}

func TestNonSalariedMultipleEmployersNoneSufficientAlone(t *testing.T) {
	// GIVEN: two employers whose combined pay clears the bar but neither
	// alone does
	raised := date(2018, time.June, 1)
	request := soloRequest(raised, 0, []hmrc.Income{
		payment("9299.99", raised.AddDate(0, 0, -1), pizzaHutRef),
		payment("0.01", raised.AddDate(0, 0, -2), burgerKingRef),
	}, pizzaHut, burgerKing)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusMultipleEmployers, result.Status)
}

func TestNonSalariedMultipleEmployersOneSufficientAlone(t *testing.T) {
	raised := date(2018, time.June, 1)
	request := soloRequest(raised, 0, []hmrc.Income{
		payment("9300", raised.AddDate(0, 0, -1), pizzaHutRef),
		payment("50", raised.AddDate(0, 0, -2), burgerKingRef),
	}, pizzaHut, burgerKing)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedPassed, result.Status)
}

func TestNonSalariedDuplicatePaymentsCountOnce(t *testing.T) {
	// GIVEN: one 5000 payment reported twice by the feed; counting it twice
	// would clear the bar
	raised := date(2018, time.June, 1)
	duplicate := payment("5000", raised.AddDate(0, 0, -1), pizzaHutRef)
	request := soloRequest(raised, 0, []hmrc.Income{duplicate, duplicate}, pizzaHut)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedBelowThreshold, result.Status)
}

// =============================================================================
// JOINT APPLICATIONS
// =============================================================================

func TestNonSalariedJointApplicantAloneSufficient(t *testing.T) {
	raised := date(2018, time.June, 1)
	request := jointRequest(raised, 0,
		[]hmrc.Income{payment("9300", raised.AddDate(0, 0, -1), pizzaHutRef)},
		[]hmrc.Income{payment("10", raised.AddDate(0, 0, -1), burgerKingRef)},
	)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedPassed, result.Status)
	require.Len(t, result.Individuals, 1, "only the applicant was needed")
	assert.Equal(t, applicantNino, result.Individuals[0].Nino)
}

func TestNonSalariedJointPartnerAloneSufficient(t *testing.T) {
	raised := date(2018, time.June, 1)
	request := jointRequest(raised, 0,
		[]hmrc.Income{payment("10", raised.AddDate(0, 0, -1), pizzaHutRef)},
		[]hmrc.Income{payment("9300", raised.AddDate(0, 0, -1), burgerKingRef)},
	)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedPassed, result.Status)
	require.Len(t, result.Individuals, 1)
	assert.Equal(t, partnerNino, result.Individuals[0].Nino)
}

func TestNonSalariedJointCombinedIncomeOnlyOverThreshold(t *testing.T) {
	// GIVEN: neither party qualifies alone, one employer each, combined pay
	// over the bar
	raised := date(2018, time.June, 1)
	request := jointRequest(raised, 0,
		[]hmrc.Income{payment("5000", raised.AddDate(0, 0, -1), pizzaHutRef)},
		[]hmrc.Income{payment("4300", raised.AddDate(0, 0, -1), burgerKingRef)},
	)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedPassed, result.Status)
	require.Len(t, result.Individuals, 2)
	assert.Equal(t, applicantNino, result.Individuals[0].Nino)
	assert.Equal(t, partnerNino, result.Individuals[1].Nino)
}

func TestNonSalariedJointBothSpreadAcrossEmployers(t *testing.T) {
	// GIVEN: each party paid by two employers, combined total over the bar
	// but no single employer total sufficient
	raised := date(2018, time.June, 1)
	request := jointRequest(raised, 0,
		[]hmrc.Income{
			payment("3000", raised.AddDate(0, 0, -1), pizzaHutRef),
			payment("2000", raised.AddDate(0, 0, -2), "kfc/ref"),
		},
		[]hmrc.Income{
			payment("3000", raised.AddDate(0, 0, -1), burgerKingRef),
			payment("1300", raised.AddDate(0, 0, -2), "subway/ref"),
		},
	)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusMultipleEmployers, result.Status)
}

func TestNonSalariedJointFailureReportsLastCombinationTried(t *testing.T) {
	raised := date(2018, time.June, 1)
	request := jointRequest(raised, 0,
		[]hmrc.Income{payment("100", raised.AddDate(0, 0, -1), pizzaHutRef)},
		[]hmrc.Income{payment("100", raised.AddDate(0, 0, -1), burgerKingRef)},
	)

	result := newNonSalaried().Validate(request)

	assert.Equal(t, validation.StatusCatANonSalariedBelowThreshold, result.Status)
	assert.Len(t, result.Individuals, 2, "the combined attempt is the one reported")
}
