package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"careercrafter/career-crafter-api/internal/models"
	"careercrafter/career-crafter-api/internal/repositories"
)

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	return logtest.NewNullLogger()
}

type fakeAnalysisRepo struct {
	mu          sync.Mutex
	analyses    map[uuid.UUID]*models.Analysis
	statuses    []models.AnalysisStatus
	enrichments map[uuid.UUID]*repositories.AnalysisEnrichment
	errors      map[uuid.UUID]string
	createErr   error
	pendingErr  error
}

func newFakeAnalysisRepo(analyses ...*models.Analysis) *fakeAnalysisRepo {
	r := &fakeAnalysisRepo{
		analyses:    make(map[uuid.UUID]*models.Analysis),
		enrichments: make(map[uuid.UUID]*repositories.AnalysisEnrichment),
		errors:      make(map[uuid.UUID]string),
	}
	for _, a := range analyses {
		r.analyses[a.ID] = a
	}
	return r
}

func (r *fakeAnalysisRepo) Create(analysis *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	stored := *analysis
	r.analyses[analysis.ID] = &stored
	return nil
}

func (r *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeAnalysisRepo) UpdateEnrichment(id uuid.UUID, data *repositories.AnalysisEnrichment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusCompleted
	a.CoachSummary = data.CoachSummary
	a.RelatedCareers = data.RelatedCareers
	r.enrichments[id] = data
	return nil
}

func (r *fakeAnalysisRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusFailed
	a.ErrorMessage = &errorMsg
	r.errors[id] = errorMsg
	return nil
}

func (r *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pendingErr != nil {
		return nil, r.pendingErr
	}
	var pending []models.Analysis
	for _, a := range r.analyses {
		if a.Status == models.StatusQueued && len(pending) < limit {
			pending = append(pending, *a)
		}
	}
	return pending, nil
}

func (r *fakeAnalysisRepo) RequeueStale(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.analyses {
		if a.Status == models.StatusProcessing && a.UpdatedAt.Before(before) {
			a.Status = models.StatusQueued
			a.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}

func (r *fakeAnalysisRepo) get(id uuid.UUID) models.Analysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.analyses[id]
}

type fakeDocumentRepo struct {
	documents []*models.Document
	createErr error
}

func (r *fakeDocumentRepo) Create(document *models.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.documents = append(r.documents, document)
	return nil
}

func (r *fakeDocumentRepo) Delete(id uuid.UUID) error {
	for i, d := range r.documents {
		if d.ID == id {
			r.documents = append(r.documents[:i], r.documents[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Name == user.Name {
			return repositories.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	r.users = append(r.users, user)
	return nil
}

type fakeGemini struct {
	mu         sync.Mutex
	summary    string
	textErr    error
	embedErr   error
	prompts    []string
	embedCalls int
}

func (g *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.embedCalls++
	if g.embedErr != nil {
		return nil, g.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

func (g *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.textErr != nil {
		return "", g.textErr
	}
	return g.summary, nil
}

func (g *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return g.GenerateText(ctx, prompt, temperature)
}

// fakeCareerIndex returns its hit batches in order, one per search.
type fakeCareerIndex struct {
	batches  [][]CareerHit
	err      error
	searches int
}

func (f *fakeCareerIndex) InitCollection(ctx context.Context) error { return nil }

func (f *fakeCareerIndex) IndexCareer(ctx context.Context, position int, listing models.CareerListing, embedding []float32) error {
	return nil
}

func (f *fakeCareerIndex) SearchCareers(ctx context.Context, embedding []float32, limit int) ([]CareerHit, error) {
	defer func() { f.searches++ }()
	if f.err != nil {
		return nil, f.err
	}
	if f.searches < len(f.batches) {
		return f.batches[f.searches], nil
	}
	return nil, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []AnalysisEvent
	err    error
}

func (p *fakePublisher) PublishAnalysisCompleted(ctx context.Context, event AnalysisEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []AnalysisEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]AnalysisEvent(nil), p.events...)
}

type fakeQueue struct {
	ids []uuid.UUID
}

func (q *fakeQueue) EnqueueJob(id uuid.UUID) {
	q.ids = append(q.ids, id)
}

type failingStorage struct {
	StorageService
}

func (failingStorage) Save(context.Context, string, []byte, string) error {
	return errors.New("disk full")
}
