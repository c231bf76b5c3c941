/*
Package audit records one entry per externally significant event: a
financial-status request arriving and its result leaving.

PURPOSE:
  Immigration casework decisions must be reconstructable after the fact.
  Each entry carries a UUID event id, the event type, the nino it concerns
  and a JSON detail payload. Entries are append-only; nothing here updates
  or deletes.

FAILURE POLICY:
  Auditing must never fail the request it describes. Store errors are
  logged and swallowed by the Recorder.

SEE ALSO:
  - store/sqlite: the persistent implementation of Store
*/
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types recorded by the service.
const (
	EventIncomeProvingRequest = "INCOME_PROVING_FINANCIAL_STATUS_REQUEST"
	EventIncomeProvingResult  = "INCOME_PROVING_FINANCIAL_STATUS_RESPONSE"
)

// Entry is one immutable audit record.
type Entry struct {
	ID        string
	EventType string
	Nino      string
	Detail    string
	CreatedAt time.Time
}

// Store persists audit entries.
type Store interface {
	SaveAuditEntry(ctx context.Context, entry Entry) error
	AuditEntriesForNino(ctx context.Context, nino string) ([]Entry, error)
}

// Recorder writes audit entries, absorbing storage failures.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record persists one event. The detail value is marshalled to JSON; a
// value that cannot marshal is recorded with an empty detail rather than
// dropped.
func (r *Recorder) Record(ctx context.Context, eventType, nino string, detail any) {
	payload, err := json.Marshal(detail)
	if err != nil {
		r.logger.Warn("audit detail not serializable", zap.String("event_type", eventType), zap.Error(err))
		payload = []byte("{}")
	}

	entry := Entry{
		ID:        uuid.NewString(),
		EventType: eventType,
		Nino:      nino,
		Detail:    string(payload),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.SaveAuditEntry(ctx, entry); err != nil {
		r.logger.Error("audit entry not saved", zap.String("event_type", eventType), zap.Error(err))
	}
}
