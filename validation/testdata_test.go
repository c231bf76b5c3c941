package validation_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/income-proving/hmrc"
	"github.com/warp/income-proving/validation"
)

// =============================================================================
// SHARED TEST DATA
// =============================================================================

const (
	applicantNino = "AA123456A"
	partnerNino   = "BB123456B"

	pizzaHutRef   = "pizza/ref"
	burgerKingRef = "burger/ref"
)

var (
	pizzaHut   = hmrc.Employer{Name: "Pizza Hut", PayeReference: pizzaHutRef}
	burgerKing = hmrc.Employer{Name: "Burger King", PayeReference: burgerKingRef}
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payment(paymentAmount string, paymentDate time.Time, employerRef string) hmrc.Income {
	return hmrc.Income{
		Amount:                amount(paymentAmount),
		PaymentDate:           paymentDate,
		EmployerPayeReference: employerRef,
	}
}

func monthlyPayment(paymentAmount string, paymentDate time.Time, monthNumber int, employerRef string) hmrc.Income {
	income := payment(paymentAmount, paymentDate, employerRef)
	income.MonthPayNumber = &monthNumber
	return income
}

func weeklyPayment(paymentAmount string, paymentDate time.Time, weekNumber int, employerRef string) hmrc.Income {
	income := payment(paymentAmount, paymentDate, employerRef)
	income.WeekPayNumber = &weekNumber
	return income
}

// monthlySeries produces n payments of the given amount ending on endDate,
// one calendar month apart, with month pay numbers counting up.
func monthlySeries(paymentAmount string, n int, endDate time.Time, employerRef string) []hmrc.Income {
	incomes := make([]hmrc.Income, 0, n)
	for i := n - 1; i >= 0; i-- {
		incomes = append(incomes, monthlyPayment(paymentAmount, endDate.AddDate(0, -i, 0), n-i, employerRef))
	}
	return incomes
}

// weeklySeries produces n payments of the given amount ending on endDate,
// seven days apart, with week pay numbers counting up.
func weeklySeries(paymentAmount string, n int, endDate time.Time, employerRef string) []hmrc.Income {
	incomes := make([]hmrc.Income, 0, n)
	for i := n - 1; i >= 0; i-- {
		incomes = append(incomes, weeklyPayment(paymentAmount, endDate.AddDate(0, 0, -7*i), n-i, employerRef))
	}
	return incomes
}

func applicantRecord(paye []hmrc.Income, employers ...hmrc.Employer) validation.ApplicantIncome {
	return applicantIncomeFor(applicantNino, "Dave", "Jones", paye, employers)
}

func partnerRecord(paye []hmrc.Income, employers ...hmrc.Employer) validation.ApplicantIncome {
	return applicantIncomeFor(partnerNino, "Denise", "Jones", paye, employers)
}

func applicantIncomeFor(nino, forename, surname string, paye []hmrc.Income, employers []hmrc.Employer) validation.ApplicantIncome {
	employments := make([]hmrc.Employment, 0, len(employers))
	for _, employer := range employers {
		employments = append(employments, hmrc.Employment{Employer: employer})
	}
	return validation.ApplicantIncome{
		Applicant: validation.Applicant{Forename: forename, Surname: surname, DateOfBirth: date(1980, time.May, 13), Nino: nino},
		IncomeRecord: hmrc.IncomeRecord{
			Paye:        paye,
			Employments: employments,
			Individual:  &hmrc.Individual{Forename: forename, Surname: surname, Nino: nino},
		},
	}
}

func soloRequest(raisedDate time.Time, dependants int, paye []hmrc.Income, employers ...hmrc.Employer) validation.Request {
	return validation.NewRequest([]validation.ApplicantIncome{applicantRecord(paye, employers...)}, raisedDate, dependants)
}

func jointRequest(raisedDate time.Time, dependants int, applicantPaye, partnerPaye []hmrc.Income) validation.Request {
	return validation.NewRequest([]validation.ApplicantIncome{
		applicantRecord(applicantPaye, pizzaHut),
		partnerRecord(partnerPaye, burgerKing),
	}, raisedDate, dependants)
}
