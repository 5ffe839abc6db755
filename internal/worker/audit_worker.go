package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/org-access-service/internal/events"
)

// AuditWorker writes an audit trail of identity and access events.
type AuditWorker struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	unsubs     []func()
}

// NewAuditWorker constructs the worker.
func NewAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) *AuditWorker {
	return &AuditWorker{dispatcher: dispatcher, logger: logger}
}

// Start registers the audit handlers.
func (w *AuditWorker) Start() {
	if w.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventSignedIn,
		events.EventSignedOut,
		events.EventAccessDenied,
		events.EventStaffChanged,
	} {
		w.unsubs = append(w.unsubs, w.dispatcher.Subscribe(eventType, w.record))
	}
}

// Stop drops the audit subscriptions.
func (w *AuditWorker) Stop() {
	for _, unsub := range w.unsubs {
		unsub()
	}
	w.unsubs = nil
}

func (w *AuditWorker) record(_ context.Context, event events.Event) error {
	w.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("staff_id", event.StaffID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
