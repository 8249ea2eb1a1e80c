package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careercrafter/career-crafter-api/internal/models"
)

type recordingEnricher struct {
	mu    sync.Mutex
	calls map[uuid.UUID]int
	done  chan uuid.UUID
	block chan struct{}
}

func newRecordingEnricher() *recordingEnricher {
	return &recordingEnricher{
		calls: make(map[uuid.UUID]int),
		done:  make(chan uuid.UUID, 10),
	}
}

func (e *recordingEnricher) EnrichAnalysis(ctx context.Context, id uuid.UUID) error {
	if e.block != nil {
		<-e.block
	}
	e.mu.Lock()
	e.calls[id]++
	e.mu.Unlock()
	select {
	case e.done <- id:
	default:
	}
	return nil
}

func (e *recordingEnricher) count(id uuid.UUID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[id]
}

func waitForJob(t *testing.T, done <-chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case id := <-done:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
		return uuid.Nil
	}
}

func TestWorkerProcessesEnqueuedJob(t *testing.T) {
	logger, _ := newTestLogger()
	enricher := newRecordingEnricher()
	w := NewWorker(newFakeAnalysisRepo(), enricher, 2, time.Hour, logger)

	w.Start(context.Background())
	defer w.Stop()

	id := uuid.New()
	w.EnqueueJob(id)

	assert.Equal(t, id, waitForJob(t, enricher.done))
	assert.Equal(t, 1, enricher.count(id))
}

func TestWorkerPollsPendingJobs(t *testing.T) {
	logger, _ := newTestLogger()
	pending := &models.Analysis{ID: uuid.New(), Status: models.StatusQueued}
	enricher := newRecordingEnricher()
	w := NewWorker(newFakeAnalysisRepo(pending), enricher, 1, 10*time.Millisecond, logger)

	w.Start(context.Background())
	defer w.Stop()

	assert.Equal(t, pending.ID, waitForJob(t, enricher.done))
}

func TestWorkerSkipsJobAlreadyInFlight(t *testing.T) {
	logger, _ := newTestLogger()
	enricher := newRecordingEnricher()
	enricher.block = make(chan struct{})
	w := NewWorker(newFakeAnalysisRepo(), enricher, 1, time.Hour, logger)

	w.Start(context.Background())

	id := uuid.New()
	w.EnqueueJob(id)
	w.EnqueueJob(id)
	close(enricher.block)

	waitForJob(t, enricher.done)
	w.Stop()

	assert.Equal(t, 1, enricher.count(id))
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	logger, _ := newTestLogger()
	w := NewWorker(newFakeAnalysisRepo(), newRecordingEnricher(), 0, 0, logger)

	w.Start(context.Background())
	w.Stop()
	require.NotPanics(t, w.Stop)
}

func TestWorkerRequeuesStaleProcessingJobs(t *testing.T) {
	logger, _ := newTestLogger()
	stale := &models.Analysis{ID: uuid.New(), Status: models.StatusProcessing, UpdatedAt: time.Now().Add(-time.Hour)}
	fresh := &models.Analysis{ID: uuid.New(), Status: models.StatusProcessing, UpdatedAt: time.Now()}
	repo := newFakeAnalysisRepo(stale, fresh)
	enricher := newRecordingEnricher()
	w := NewWorker(repo, enricher, 1, 10*time.Millisecond, logger)

	w.Start(context.Background())
	defer w.Stop()

	assert.Equal(t, stale.ID, waitForJob(t, enricher.done))
	assert.Equal(t, models.StatusProcessing, repo.get(fresh.ID).Status)
	assert.Zero(t, enricher.count(fresh.ID))
}

func TestWorkerEnqueueDoesNotBlockWhenQueueIsFull(t *testing.T) {
	logger, _ := newTestLogger()
	w := NewWorker(newFakeAnalysisRepo(), newRecordingEnricher(), 1, time.Hour, logger)

	for i := 0; i < jobQueueSize; i++ {
		w.EnqueueJob(uuid.New())
	}

	overflow := uuid.New()
	returned := make(chan struct{})
	go func() {
		w.EnqueueJob(overflow)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	_, tracked := w.(*worker).inFlight.Load(overflow)
	assert.False(t, tracked)
}
