package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/models"
	"careercrafter/career-crafter-api/internal/repositories"
)

// JobQueue accepts analyses for background enrichment.
type JobQueue interface {
	EnqueueJob(analysisID uuid.UUID)
}

type ResumeAnalysisService interface {
	// AnalyzeUpload extracts and scores a resume, then stores the file and
	// the analysis. The returned analysis already carries its scores.
	AnalyzeUpload(ctx context.Context, file UploadedFile, jobDescription string) (*models.Analysis, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
}

type resumeAnalysisService struct {
	extractor    DocumentExtractor
	scorer       ResumeScorer
	storage      StorageService
	docRepo      repositories.DocumentRepository
	analysisRepo repositories.AnalysisRepository
	queue        JobQueue
	publisher    EventPublisher
	log          logrus.FieldLogger
}

// NewResumeAnalysisService wires the upload pipeline. A nil queue marks new
// analyses completed immediately and publishes their event.
func NewResumeAnalysisService(
	extractor DocumentExtractor,
	scorer ResumeScorer,
	storage StorageService,
	docRepo repositories.DocumentRepository,
	analysisRepo repositories.AnalysisRepository,
	queue JobQueue,
	publisher EventPublisher,
	log logrus.FieldLogger,
) ResumeAnalysisService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &resumeAnalysisService{
		extractor:    extractor,
		scorer:       scorer,
		storage:      storage,
		docRepo:      docRepo,
		analysisRepo: analysisRepo,
		queue:        queue,
		publisher:    publisher,
		log:          log,
	}
}

func (s *resumeAnalysisService) AnalyzeUpload(ctx context.Context, file UploadedFile, jobDescription string) (*models.Analysis, error) {
	resume, err := s.extractor.Extract(ctx, file)
	if err != nil {
		return nil, err
	}
	result := s.scorer.Analyze(resume, jobDescription)

	document, err := s.storeDocument(ctx, file, resume.Format)
	if err != nil {
		return nil, err
	}

	status := models.StatusCompleted
	if s.queue != nil {
		status = models.StatusQueued
	}

	analysis := &models.Analysis{
		ID:              uuid.New(),
		DocumentID:      document.ID,
		Status:          status,
		JobDescription:  jobDescription,
		ResumeText:      resume.Text,
		OverallScore:    result.OverallScore,
		SkillsScore:     result.Categories.Skills,
		ExperienceScore: result.Categories.Experience,
		EducationScore:  result.Categories.Education,
		MatchPercentage: result.MatchPercentage,
		YearsExperience: resume.YearsExperience,
		EducationLevel:  resume.Education,
		DetectedSkills:  resume.Skills,
		RequiredSkills:  result.RequiredSkills,
		MatchedSkills:   result.MatchedSkills,
		MissingSkills:   result.MissingSkills,
		Feedback:        result.Feedback,
	}
	if err := s.analysisRepo.Create(analysis); err != nil {
		s.discardDocument(ctx, document)
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{
		"analysis_id":   analysis.ID,
		"format":        resume.Format,
		"overall_score": analysis.OverallScore,
	})

	if s.queue != nil {
		s.queue.EnqueueJob(analysis.ID)
		log.Info("resume analyzed, enrichment queued")
		return analysis, nil
	}

	event := AnalysisEvent{
		AnalysisID:   analysis.ID.String(),
		Status:       string(analysis.Status),
		OverallScore: analysis.OverallScore,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.publisher.PublishAnalysisCompleted(ctx, event); err != nil {
		log.WithError(err).Warn("failed to publish analysis event")
	}
	log.Info("resume analyzed")
	return analysis, nil
}

func (s *resumeAnalysisService) storeDocument(ctx context.Context, file UploadedFile, format models.DocumentFormat) (*models.Document, error) {
	key := NewStorageKey("resume", file.Filename)
	if err := s.storage.Save(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	document := &models.Document{
		ID:               uuid.New(),
		StorageKey:       key,
		StorageDriver:    s.storage.Driver(),
		OriginalFileName: file.Filename,
		Format:           format,
		ContentType:      file.ContentType,
		Size:             int64(len(file.Data)),
	}
	if err := s.docRepo.Create(document); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.WithError(delErr).WithField("key", key).Warn("failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return document, nil
}

// discardDocument removes the row and file of a document no analysis points to.
func (s *resumeAnalysisService) discardDocument(ctx context.Context, document *models.Document) {
	log := s.log.WithFields(logrus.Fields{
		"document_id": document.ID,
		"key":         document.StorageKey,
	})
	if err := s.docRepo.Delete(document.ID); err != nil {
		log.WithError(err).Warn("failed to remove orphaned document")
	}
	if err := s.storage.Delete(ctx, document.StorageKey); err != nil {
		log.WithError(err).Warn("failed to remove orphaned upload")
	}
}

func (s *resumeAnalysisService) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.analysisRepo.FindByID(id)
}
