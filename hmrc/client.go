/*
client.go - HTTP client for the HMRC income-proving service

PURPOSE:
  Retrieves one IncomeRecord per applicant from the upstream HMRC service.
  This is collaborator glue, not decision logic: the validation engine never
  calls HMRC itself and must be handed fully-formed records.

CONTRACT:
  - Empty PAYE / self-assessment / employment lists are legitimate responses.
  - A missing matched identity is legitimate; callers fall back to the
    applicant identity from the request.
  - No retry or backoff here. Retry policy belongs to the caller.

SEE ALSO:
  - types.go: the record shapes decoded from the wire
  - api/handlers.go: the only caller
*/
package hmrc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNotFound is returned when HMRC has no record for the given identity.
var ErrNotFound = errors.New("hmrc: no record for individual")

const wireDateFormat = "2006-01-02"

// RecordSource supplies an IncomeRecord for one individual over a date range.
// The HTTP client below is the production implementation; tests substitute
// in-memory sources.
type RecordSource interface {
	IncomeRecord(ctx context.Context, individual Individual, from, to time.Time) (IncomeRecord, error)
}

// Client talks to the HMRC income-proving API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

var _ RecordSource = (*Client)(nil)

// IncomeRecord fetches PAYE income, self-assessment returns and employments
// for the individual between from and to (inclusive).
func (c *Client) IncomeRecord(ctx context.Context, individual Individual, from, to time.Time) (IncomeRecord, error) {
	endpoint := fmt.Sprintf("%s/income?%s", c.baseURL, url.Values{
		"nino":      {individual.Nino},
		"forename":  {individual.Forename},
		"surname":   {individual.Surname},
		"dateOfBirth": {individual.DateOfBirth.Format(wireDateFormat)},
		"fromDate":  {from.Format(wireDateFormat)},
		"toDate":    {to.Format(wireDateFormat)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return IncomeRecord{}, fmt.Errorf("hmrc: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return IncomeRecord{}, fmt.Errorf("hmrc: call income service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decode
	case http.StatusNotFound:
		return IncomeRecord{}, ErrNotFound
	default:
		return IncomeRecord{}, fmt.Errorf("hmrc: income service returned status %d", resp.StatusCode)
	}

	var wire wireIncomeRecord
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return IncomeRecord{}, fmt.Errorf("hmrc: decode income record: %w", err)
	}

	record, err := wire.toIncomeRecord()
	if err != nil {
		return IncomeRecord{}, err
	}

	c.logger.Debug("hmrc income record retrieved",
		zap.Int("paye_records", len(record.Paye)),
		zap.Int("employments", len(record.Employments)),
		zap.Int("self_assessment_returns", len(record.SelfAssessment)),
	)
	return record, nil
}

// =============================================================================
// WIRE FORMAT
// =============================================================================

type wireIncomeRecord struct {
	Paye []struct {
		Payment               decimal.Decimal `json:"payment"`
		PaymentDate           string          `json:"paymentDate"`
		WeekPayNumber         *int            `json:"weekPayNumber"`
		MonthPayNumber        *int            `json:"monthPayNumber"`
		EmployerPayeReference string          `json:"employerPayeReference"`
	} `json:"paye"`
	SelfAssessment []struct {
		TaxYear              string          `json:"taxYear"`
		SelfAssessmentIncome decimal.Decimal `json:"selfAssessmentIncome"`
	} `json:"selfAssessment"`
	Employments []struct {
		Employer struct {
			Name          string `json:"name"`
			PayeReference string `json:"payeReference"`
		} `json:"employer"`
	} `json:"employments"`
	Individual *struct {
		Forename    string `json:"forename"`
		Surname     string `json:"surname"`
		Nino        string `json:"nino"`
		DateOfBirth string `json:"dateOfBirth"`
	} `json:"individual"`
}

func (w wireIncomeRecord) toIncomeRecord() (IncomeRecord, error) {
	record := IncomeRecord{}

	for _, p := range w.Paye {
		paymentDate, err := time.Parse(wireDateFormat, p.PaymentDate)
		if err != nil {
			return IncomeRecord{}, fmt.Errorf("hmrc: bad payment date %q: %w", p.PaymentDate, err)
		}
		record.Paye = append(record.Paye, Income{
			Amount:                p.Payment,
			PaymentDate:           paymentDate,
			WeekPayNumber:         p.WeekPayNumber,
			MonthPayNumber:        p.MonthPayNumber,
			EmployerPayeReference: p.EmployerPayeReference,
		})
	}

	for _, sa := range w.SelfAssessment {
		record.SelfAssessment = append(record.SelfAssessment, AnnualSelfAssessmentTaxReturn{
			TaxYear:              sa.TaxYear,
			SelfAssessmentIncome: sa.SelfAssessmentIncome,
		})
	}

	for _, e := range w.Employments {
		record.Employments = append(record.Employments, Employment{
			Employer: Employer{Name: e.Employer.Name, PayeReference: e.Employer.PayeReference},
		})
	}

	if w.Individual != nil {
		dob, err := time.Parse(wireDateFormat, w.Individual.DateOfBirth)
		if err != nil {
			return IncomeRecord{}, fmt.Errorf("hmrc: bad date of birth: %w", err)
		}
		record.Individual = &Individual{
			Forename:    w.Individual.Forename,
			Surname:     w.Individual.Surname,
			Nino:        w.Individual.Nino,
			DateOfBirth: dob,
		}
	}

	return record, nil
}
