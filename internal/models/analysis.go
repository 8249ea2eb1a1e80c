package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is a stored resume analysis. Scores are written once when the
// resume is scored; the coaching fields are filled in later by the worker.
type Analysis struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID      uuid.UUID      `gorm:"type:uuid;not null" json:"document_id"`
	Status          AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	JobDescription  string         `gorm:"type:text" json:"job_description,omitempty"`
	ResumeText      string         `gorm:"type:text" json:"-"`
	OverallScore    float64        `json:"overall_score"`
	SkillsScore     float64        `json:"skills_score"`
	ExperienceScore float64        `json:"experience_score"`
	EducationScore  float64        `json:"education_score"`
	MatchPercentage *float64       `json:"match_percentage,omitempty"`
	YearsExperience int            `json:"years_experience"`
	EducationLevel  EducationLevel `gorm:"type:text" json:"education_level"`
	DetectedSkills  []string       `gorm:"type:jsonb;serializer:json" json:"detected_skills"`
	RequiredSkills  []string       `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	MatchedSkills   []string       `gorm:"type:jsonb;serializer:json" json:"matched_skills"`
	MissingSkills   []string       `gorm:"type:jsonb;serializer:json" json:"missing_skills"`
	Feedback        []string       `gorm:"type:jsonb;serializer:json" json:"feedback"`
	CoachSummary    *string        `gorm:"type:text" json:"coach_summary,omitempty"`
	RelatedCareers  []string       `gorm:"type:jsonb;serializer:json" json:"related_careers,omitempty"`
	ErrorMessage    *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "resume_analyses"
}
