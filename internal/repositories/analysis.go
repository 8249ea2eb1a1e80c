package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"careercrafter/career-crafter-api/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	UpdateEnrichment(id uuid.UUID, data *AnalysisEnrichment) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Analysis, error)
	RequeueStale(before time.Time) (int64, error)
}

// AnalysisEnrichment is what the background worker adds to a scored analysis.
type AnalysisEnrichment struct {
	CoachSummary   *string
	RelatedCareers []string
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	return r.update(id, map[string]interface{}{
		"status": status,
	}, "failed to update status")
}

func (r *analysisRepository) UpdateEnrichment(id uuid.UUID, data *AnalysisEnrichment) error {
	updates := map[string]interface{}{
		"status": models.StatusCompleted,
	}
	if data.CoachSummary != nil {
		updates["coach_summary"] = *data.CoachSummary
	}
	if data.RelatedCareers != nil {
		// map updates bypass the field serializer
		related, err := encodeJSONColumn(data.RelatedCareers)
		if err != nil {
			return err
		}
		updates["related_careers"] = related
	}
	return r.update(id, updates, "failed to update enrichment")
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
	}, "failed to update error")
}

func (r *analysisRepository) update(id uuid.UUID, updates map[string]interface{}, failure string) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("%s: %w", failure, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return analyses, nil
}

// RequeueStale moves analyses stuck in processing since before back to queued.
func (r *analysisRepository) RequeueStale(before time.Time) (int64, error) {
	result := r.db.Model(&models.Analysis{}).
		Where("status = ? AND updated_at < ?", models.StatusProcessing, before).
		Updates(map[string]interface{}{
			"status":     models.StatusQueued,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to requeue stale jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
