package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/pkg/jobs"
)

type capturingWriter struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (w *capturingWriter) Create(ctx context.Context, event *models.BookingEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, *event)
	return nil
}

func (w *capturingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.events)
}

func TestAuditServiceRecordsThroughQueue(t *testing.T) {
	writer := &capturingWriter{}
	svc, queue := NewAuditService(writer, jobs.QueueConfig{Workers: 1})
	queue.Start(context.Background())
	defer queue.Stop()

	svc.Record(models.BookingEvent{
		Kind:        models.BookingKindAssign,
		Outcome:     models.BookingOutcomeCommitted,
		SubjectID:   "s1",
		ClassroomID: "101",
	})

	assert.Eventually(t, func() bool { return writer.count() == 1 }, time.Second, 10*time.Millisecond)

	writer.mu.Lock()
	defer writer.mu.Unlock()
	assert.NotEmpty(t, writer.events[0].ID)
	assert.Equal(t, models.BookingKindAssign, writer.events[0].Kind)
}

func TestAuditServiceNilWriterIsNoop(t *testing.T) {
	svc, queue := NewAuditService(nil, jobs.QueueConfig{})
	assert.Nil(t, queue)

	// must not panic
	svc.Record(models.BookingEvent{Kind: models.BookingKindExam})
}
