package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/models"
	"careercrafter/career-crafter-api/internal/repositories"
)

const (
	enrichChunkSize     = 1000
	enrichChunkOverlap  = 200
	enrichMaxChunks     = 3
	relatedCareerLimit  = 3
	coachingTemperature = 0.4
)

// AnalysisEnricher adds an LLM coaching summary and related careers to a
// queued analysis.
type AnalysisEnricher interface {
	EnrichAnalysis(ctx context.Context, analysisID uuid.UUID) error
}

type analysisEnricher struct {
	analysisRepo  repositories.AnalysisRepository
	geminiService GeminiService
	careerIndex   CareerIndex
	chunker       TextChunker
	publisher     EventPublisher
	promptBuilder *PromptBuilder
	maxRetries    int
	log           logrus.FieldLogger
}

// NewAnalysisEnricher builds an enricher. careerIndex may be nil, in which
// case no related careers are looked up.
func NewAnalysisEnricher(
	analysisRepo repositories.AnalysisRepository,
	geminiService GeminiService,
	careerIndex CareerIndex,
	publisher EventPublisher,
	maxRetries int,
	log logrus.FieldLogger,
) AnalysisEnricher {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &analysisEnricher{
		analysisRepo:  analysisRepo,
		geminiService: geminiService,
		careerIndex:   careerIndex,
		chunker:       NewTextChunker(),
		publisher:     publisher,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		log:           log,
	}
}

func (e *analysisEnricher) EnrichAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	log := e.log.WithField("analysis_id", analysisID)

	analysis, err := e.analysisRepo.FindByID(analysisID)
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}
	if analysis.Status != models.StatusQueued {
		log.WithField("status", analysis.Status).Debug("analysis is not queued, skipping")
		return nil
	}

	if err := e.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	log.Info("enriching analysis")

	related, err := e.relatedCareers(ctx, analysis.ResumeText)
	if err != nil {
		log.WithError(err).Warn("related career lookup failed")
		related = nil
	}

	prompt := e.promptBuilder.BuildCoachingPrompt(analysis, related)
	summary, err := e.geminiService.GenerateTextWithRetry(ctx, prompt, coachingTemperature, e.maxRetries)
	if err != nil {
		if updateErr := e.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to generate coaching summary: %v", err)); updateErr != nil {
			log.WithError(updateErr).Error("failed to record enrichment error")
		}
		return fmt.Errorf("failed to generate coaching summary: %w", err)
	}
	summary = strings.TrimSpace(summary)

	titles := make([]string, 0, len(related))
	for _, hit := range related {
		titles = append(titles, hit.Title)
	}

	if err := e.analysisRepo.UpdateEnrichment(analysisID, &repositories.AnalysisEnrichment{
		CoachSummary:   &summary,
		RelatedCareers: titles,
	}); err != nil {
		return fmt.Errorf("failed to save enrichment: %w", err)
	}

	event := AnalysisEvent{
		AnalysisID:   analysisID.String(),
		Status:       string(models.StatusCompleted),
		OverallScore: analysis.OverallScore,
		OccurredAt:   time.Now().UTC(),
	}
	if err := e.publisher.PublishAnalysisCompleted(ctx, event); err != nil {
		log.WithError(err).Warn("failed to publish analysis event")
	}

	log.WithField("related_careers", len(titles)).Info("analysis enriched")
	return nil
}

// relatedCareers embeds the first few resume chunks and keeps the best
// score seen per career title.
func (e *analysisEnricher) relatedCareers(ctx context.Context, resumeText string) ([]CareerHit, error) {
	if e.careerIndex == nil {
		return nil, nil
	}

	chunks := e.chunker.ChunkText(resumeText, enrichChunkSize, enrichChunkOverlap)
	if len(chunks) > enrichMaxChunks {
		chunks = chunks[:enrichMaxChunks]
	}

	best := make(map[string]CareerHit)
	for _, chunk := range chunks {
		embedding, err := e.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to embed resume: %w", err)
		}

		hits, err := e.careerIndex.SearchCareers(ctx, embedding, relatedCareerLimit+2)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			if prev, ok := best[hit.Title]; !ok || hit.Score > prev.Score {
				best[hit.Title] = hit
			}
		}
	}

	hits := make([]CareerHit, 0, len(best))
	for _, hit := range best {
		hits = append(hits, hit)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Title < hits[j].Title
	})
	if len(hits) > relatedCareerLimit {
		hits = hits[:relatedCareerLimit]
	}
	return hits, nil
}
