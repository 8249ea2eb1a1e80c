package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/repositories"
)

const (
	jobQueueSize    = 100
	staleJobTimeout = 15 * time.Minute
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	enricher     AnalysisEnricher
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	staleAfter   time.Duration
	inFlight     sync.Map
	wg           sync.WaitGroup
	stopOnce     sync.Once
	stopChan     chan struct{}
	log          logrus.FieldLogger
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	enricher AnalysisEnricher,
	concurrency int,
	pollInterval time.Duration,
	log logrus.FieldLogger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &worker{
		analysisRepo: analysisRepo,
		enricher:     enricher,
		jobQueue:     make(chan uuid.UUID, jobQueueSize),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		staleAfter:   staleJobTimeout,
		stopChan:     make(chan struct{}),
		log:          log,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs()

	w.log.WithFields(logrus.Fields{
		"concurrency":   w.concurrency,
		"poll_interval": w.pollInterval.String(),
	}).Info("worker started")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.log.Info("worker stopped")
}

// EnqueueJob implements Worker. A job already waiting or running is not
// queued twice. It never blocks: when the queue is full the job stays queued
// in the database and the poller picks it up later.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	if _, loaded := w.inFlight.LoadOrStore(analysisID, struct{}{}); loaded {
		return
	}

	select {
	case <-w.stopChan:
		w.inFlight.Delete(analysisID)
		w.log.WithField("analysis_id", analysisID).Warn("worker stopped, job not enqueued")
	case w.jobQueue <- analysisID:
		w.log.WithField("analysis_id", analysisID).Debug("job enqueued")
	default:
		w.inFlight.Delete(analysisID)
		w.log.WithField("analysis_id", analysisID).Warn("job queue full, leaving job for the poller")
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.WithField("worker", workerID)

	for {
		select {
		case <-w.stopChan:
			return
		case analysisID := <-w.jobQueue:
			jobLog := log.WithField("analysis_id", analysisID)
			if err := w.enricher.EnrichAnalysis(ctx, analysisID); err != nil {
				jobLog.WithError(err).Error("job failed")
			} else {
				jobLog.Debug("job finished")
			}
			w.inFlight.Delete(analysisID)
		}
	}
}

func (w *worker) pollPendingJobs() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.requeueStaleJobs()

			pendingJobs, err := w.analysisRepo.FindPendingJobs(10)
			if err != nil {
				w.log.WithError(err).Warn("failed to fetch pending jobs")
				continue
			}

			if len(pendingJobs) > 0 {
				w.log.WithField("count", len(pendingJobs)).Debug("found pending jobs")
			}
			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}

// requeueStaleJobs recovers analyses left in processing by a crash or a failed
// final write.
func (w *worker) requeueStaleJobs() {
	count, err := w.analysisRepo.RequeueStale(time.Now().Add(-w.staleAfter))
	if err != nil {
		w.log.WithError(err).Warn("failed to requeue stale jobs")
		return
	}
	if count > 0 {
		w.log.WithField("count", count).Warn("requeued stale jobs")
	}
}
