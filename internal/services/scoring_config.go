package services

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"careercrafter/career-crafter-api/internal/models"
)

// ScoringConfig holds every weight used by the recommendation and resume scorers.
type ScoringConfig struct {
	SkillWeight  float64
	SalaryWeight float64

	ResumeSkillsWeight     float64
	ResumeExperienceWeight float64
	ResumeEducationWeight  float64

	ExperienceCeilingYears int
	FeedbackThreshold      float64
	EducationScores        map[models.EducationLevel]float64
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SkillWeight:            0.8,
		SalaryWeight:           0.2,
		ResumeSkillsWeight:     0.5,
		ResumeExperienceWeight: 0.3,
		ResumeEducationWeight:  0.2,
		ExperienceCeilingYears: 10,
		FeedbackThreshold:      70,
		EducationScores: map[models.EducationLevel]float64{
			models.EducationHighSchool: 60,
			models.EducationBachelors:  80,
			models.EducationMasters:    90,
			models.EducationPhD:        100,
		},
	}
}

// Validate reports the first invalid setting, checking weights in declaration order.
func (c ScoringConfig) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"skill weight", c.SkillWeight},
		{"salary weight", c.SalaryWeight},
		{"resume skills weight", c.ResumeSkillsWeight},
		{"resume experience weight", c.ResumeExperienceWeight},
		{"resume education weight", c.ResumeEducationWeight},
	}
	for _, w := range weights {
		if w.value < 0 || math.IsNaN(w.value) || math.IsInf(w.value, 0) {
			return fmt.Errorf("%s must be a non-negative number, got %v", w.name, w.value)
		}
	}
	if c.SkillWeight+c.SalaryWeight == 0 {
		return fmt.Errorf("skill and salary weights cannot both be zero")
	}
	if c.ResumeSkillsWeight+c.ResumeExperienceWeight+c.ResumeEducationWeight == 0 {
		return fmt.Errorf("resume category weights cannot all be zero")
	}
	if c.ExperienceCeilingYears <= 0 {
		return fmt.Errorf("experience ceiling must be positive, got %d", c.ExperienceCeilingYears)
	}
	if c.FeedbackThreshold < 0 || c.FeedbackThreshold > 100 {
		return fmt.Errorf("feedback threshold must be within 0-100, got %v", c.FeedbackThreshold)
	}
	for _, level := range slices.Sorted(maps.Keys(c.EducationScores)) {
		score := c.EducationScores[level]
		if score < 0 || score > 100 {
			return fmt.Errorf("education score for %q must be within 0-100, got %v", level, score)
		}
	}
	return nil
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
