/*
handlers.go - HTTP API handlers for the income proving service

PURPOSE:
  Exposes the income validation engine via REST API. Handles HTTP
  request/response, JSON serialization, income record retrieval and audit;
  all decision logic lives in the validation package.

ENDPOINTS:
  Financial status:
    POST /incomeproving/v3/individual/financialstatus
         Run the category checks for one or two individuals

  Audit:
    GET  /incomeproving/v3/individual/{nino}/audit
         Audit trail for one nino

  Feedback:
    POST /feedback  Store caseworker feedback
    GET  /feedback  List stored feedback

  Operations:
    GET  /healthz   Liveness probe
    GET  /metrics   Prometheus metrics

REQUEST FLOW (financial status):
  1. Parse and validate input
  2. Audit the incoming request
  3. Retrieve an income record per individual (366-day window)
  4. Run the validation service
  5. Audit and serialize the result

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: No income record for an individual
  - 500: Internal errors
  Failed category checks are NOT errors; they come back 200 with
  passed=false and a failureReason.

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/income-proving/audit"
	"github.com/warp/income-proving/hmrc"
	"github.com/warp/income-proving/observability"
	"github.com/warp/income-proving/store/sqlite"
	"github.com/warp/income-proving/validation"
)

// incomeRecordWindowDays is how far back income records are requested; it
// matches the widest window any category validator inspects.
const incomeRecordWindowDays = 366

// FeedbackStore persists caseworker feedback.
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, id, detail string) error
	ListFeedback(ctx context.Context) ([]sqlite.Feedback, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service  *validation.Service
	Records  hmrc.RecordSource
	Recorder *audit.Recorder
	Audit    audit.Store
	Feedback FeedbackStore
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

func NewHandler(
	service *validation.Service,
	records hmrc.RecordSource,
	recorder *audit.Recorder,
	auditStore audit.Store,
	feedback FeedbackStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Service:  service,
		Records:  records,
		Recorder: recorder,
		Audit:    auditStore,
		Feedback: feedback,
		Metrics:  metrics,
		Logger:   logger,
	}
}

// =============================================================================
// FINANCIAL STATUS
// =============================================================================

// CheckFinancialStatus runs the category checks for the individuals in the
// request body.
func (h *Handler) CheckFinancialStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { h.Metrics.ObserveRequest("financial_status", time.Since(start)) }()

	var req FinancialStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, codeInvalidRequest, "malformed request body")
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	raisedDate, _ := time.Parse(dateFormat, req.ApplicationRaisedDate)
	primaryNino := req.Individuals[0].Nino
	h.Recorder.Record(r.Context(), audit.EventIncomeProvingRequest, primaryNino, req)

	applicantIncomes, individuals, err := h.gatherIncomes(r.Context(), req, raisedDate)
	if err != nil {
		h.Metrics.CountHmrcError()
		if errors.Is(err, hmrc.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, codeNotFound, "no income record for individual")
			return
		}
		h.Logger.Error("income record retrieval failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, codeInternalError, "income record retrieval failed")
		return
	}

	checks := h.Service.Validate(validation.NewRequest(applicantIncomes, raisedDate, req.Dependants))

	response := FinancialStatusResponse{
		Status:      ResponseStatus{Code: codeOK, Message: "OK"},
		Individuals: individuals,
	}
	for _, check := range checks {
		h.Metrics.CountCheck(check.Category, string(check.Status))
		response.CategoryChecks = append(response.CategoryChecks, toCategoryCheckDTO(check))
	}

	h.Recorder.Record(r.Context(), audit.EventIncomeProvingResult, primaryNino, response)
	h.respondJSON(w, http.StatusOK, response)
}

// gatherIncomes retrieves one income record per individual over the check
// window and pairs it with the requested identity. The echoed identity is
// the HMRC-confirmed one when present, otherwise the request's own.
func (h *Handler) gatherIncomes(ctx context.Context, req FinancialStatusRequest, raisedDate time.Time) ([]validation.ApplicantIncome, []IndividualDTO, error) {
	from := raisedDate.AddDate(0, 0, -incomeRecordWindowDays)

	var incomes []validation.ApplicantIncome
	var echoed []IndividualDTO
	for _, dto := range req.Individuals {
		individual, err := dto.toDomain()
		if err != nil {
			return nil, nil, err
		}

		record, err := h.Records.IncomeRecord(ctx, individual, from, raisedDate)
		if err != nil {
			return nil, nil, err
		}

		incomes = append(incomes, validation.ApplicantIncome{
			Applicant: validation.Applicant{
				Forename:    individual.Forename,
				Surname:     individual.Surname,
				DateOfBirth: individual.DateOfBirth,
				Nino:        individual.Nino,
			},
			IncomeRecord: record,
		})

		if record.Individual != nil {
			echoed = append(echoed, toIndividualDTO(*record.Individual))
		} else {
			echoed = append(echoed, dto)
		}
	}
	return incomes, echoed, nil
}

// =============================================================================
// AUDIT
// =============================================================================

// AuditHistory returns every audit entry recorded for a nino, oldest first.
func (h *Handler) AuditHistory(w http.ResponseWriter, r *http.Request) {
	nino := chi.URLParam(r, "nino")

	entries, err := h.Audit.AuditEntriesForNino(r.Context(), nino)
	if err != nil {
		h.Logger.Error("audit history lookup failed", zap.String("nino", nino), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, codeInternalError, "audit history lookup failed")
		return
	}

	type entryDTO struct {
		ID        string          `json:"id"`
		EventType string          `json:"eventType"`
		Detail    json.RawMessage `json:"detail"`
		Timestamp string          `json:"timestamp"`
	}
	dtos := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryDTO{
			ID:        entry.ID,
			EventType: entry.EventType,
			Detail:    json.RawMessage(entry.Detail),
			Timestamp: entry.CreatedAt.Format(time.RFC3339),
		})
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"nino": nino, "entries": dtos})
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SubmitFeedback stores one feedback payload verbatim.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, codeInvalidRequest, "malformed feedback body")
		return
	}

	detail, err := json.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, codeInvalidRequest, "feedback not serializable")
		return
	}

	id := uuid.NewString()
	if err := h.Feedback.SaveFeedback(r.Context(), id, string(detail)); err != nil {
		h.Logger.Error("feedback not saved", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, codeInternalError, "feedback not saved")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListFeedback returns all stored feedback, newest first.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	all, err := h.Feedback.ListFeedback(r.Context())
	if err != nil {
		h.Logger.Error("feedback listing failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, codeInternalError, "feedback listing failed")
		return
	}

	type feedbackDTO struct {
		ID        string          `json:"id"`
		Detail    json.RawMessage `json:"detail"`
		Timestamp string          `json:"timestamp"`
	}
	dtos := make([]feedbackDTO, 0, len(all))
	for _, f := range all {
		dtos = append(dtos, feedbackDTO{ID: f.ID, Detail: json.RawMessage(f.Detail), Timestamp: f.CreatedAt.Format(time.RFC3339)})
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"feedback": dtos})
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("response encoding failed", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, ErrorResponse{Status: ResponseStatus{Code: code, Message: message}})
}
