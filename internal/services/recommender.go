package services

import (
	"math"
	"sort"

	"careercrafter/career-crafter-api/internal/models"
)

type RecommendationEngine interface {
	// Recommend ranks the catalog for profile. topN <= 0 returns every listing
	// with a positive score. An empty slice is a valid result.
	Recommend(profile models.CandidateProfile, topN int) []models.MatchResult
}

type recommendationEngine struct {
	catalog CareerCatalog
	config  ScoringConfig
}

func NewRecommendationEngine(catalog CareerCatalog, config ScoringConfig) RecommendationEngine {
	return &recommendationEngine{
		catalog: catalog,
		config:  config,
	}
}

// SalaryPenalty is 0 when expected falls inside the range and grows linearly
// with the distance to the nearest bound, relative to that bound, up to 1.
// A non-positive expectation means the candidate stated no preference.
func SalaryPenalty(expected float64, salary models.SalaryRange) float64 {
	if expected <= 0 || salary.Contains(expected) {
		return 0
	}

	var penalty float64
	switch {
	case expected < salary.Min:
		penalty = (salary.Min - expected) / salary.Min
	case salary.Max <= 0:
		penalty = 1
	default:
		penalty = (expected - salary.Max) / salary.Max
	}
	return math.Min(1, penalty)
}

// CompositeScore blends skill coverage and salary fit into an integer 0-100.
func (c ScoringConfig) CompositeScore(skillScore, salaryPenalty float64) int {
	total := c.SkillWeight + c.SalaryWeight
	if total <= 0 {
		return 0
	}
	blended := (c.SkillWeight*skillScore + c.SalaryWeight*(1-salaryPenalty)) / total
	return int(math.Round(clampScore(blended * 100)))
}

func (e *recommendationEngine) Recommend(profile models.CandidateProfile, topN int) []models.MatchResult {
	listings := e.catalog.ListAll()
	results := make([]models.MatchResult, 0, len(listings))

	for _, listing := range listings {
		overlap := ScoreSkillOverlap(profile.Skills, listing.RequiredSkills)
		penalty := SalaryPenalty(profile.ExpectedSalary, listing.SalaryRange)
		score := e.config.CompositeScore(overlap.Score, penalty)
		if score <= 0 {
			continue
		}

		results = append(results, models.MatchResult{
			Career:        listing,
			Score:         score,
			SkillScore:    overlap.Score,
			SalaryPenalty: penalty,
			MatchedSkills: overlap.Matched,
			MissingSkills: overlap.Missing,
		})
	}

	// Stable so that equal scores and salary floors keep catalog order.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Career.SalaryRange.Min < results[j].Career.SalaryRange.Min
	})

	if topN > 0 && topN < len(results) {
		results = results[:topN]
	}
	return results
}
