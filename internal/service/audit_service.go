package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/pkg/jobs"
)

// BookingEventWriter persists booking events.
type BookingEventWriter interface {
	Create(ctx context.Context, event *models.BookingEvent) error
}

// AuditService records booking decisions asynchronously so the booking
// path never blocks on I/O. With a nil queue it degrades to a no-op.
type AuditService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService wires the audit queue. Call Start on the returned
// queue before recording.
func NewAuditService(writer BookingEventWriter, cfg jobs.QueueConfig) (*AuditService, *jobs.Queue) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if writer == nil {
		return &AuditService{logger: logger}, nil
	}

	handler := func(ctx context.Context, job jobs.Job) error {
		event, ok := job.Payload.(models.BookingEvent)
		if !ok {
			return fmt.Errorf("unexpected audit payload %T", job.Payload)
		}
		return writer.Create(ctx, &event)
	}
	queue := jobs.NewQueue("booking_audit", handler, cfg)
	return &AuditService{queue: queue, logger: logger}, queue
}

// Record enqueues one booking event. Failures are logged, never surfaced
// to the booking caller.
func (s *AuditService) Record(event models.BookingEvent) {
	if s == nil || s.queue == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	job := jobs.Job{ID: event.ID, Type: event.Kind, Payload: event}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue booking event", zap.String("kind", event.Kind), zap.Error(err))
	}
}
