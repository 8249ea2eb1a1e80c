package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careercrafter/career-crafter-api/internal/models"
)

func newTestCatalog(t *testing.T, listings ...models.CareerListing) CareerCatalog {
	t.Helper()
	catalog, err := NewCatalog(listings, nil)
	require.NoError(t, err)
	return catalog
}

func TestSalaryPenalty(t *testing.T) {
	band := models.SalaryRange{Min: 80000, Max: 150000}

	tests := []struct {
		name     string
		expected float64
		salary   models.SalaryRange
		want     float64
	}{
		{"inside range", 135000, band, 0},
		{"on lower bound", 80000, band, 0},
		{"on upper bound", 150000, band, 0},
		{"below range", 60000, band, 0.25},
		{"above range", 165000, band, 0.1},
		{"far above is capped", 400000, band, 1},
		{"no expectation", 0, band, 0},
		{"zero band exceeded", 10, models.SalaryRange{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SalaryPenalty(tt.expected, tt.salary), 1e-9)
		})
	}
}

func TestRecommendExactSkillMatchWithinSalary(t *testing.T) {
	catalog := newTestCatalog(t, models.CareerListing{
		Title:          "Senior Software Engineer",
		RequiredSkills: []string{"React", "Node.js", "AWS"},
		SalaryRange:    models.SalaryRange{Min: 120000, Max: 150000},
	})
	engine := NewRecommendationEngine(catalog, DefaultScoringConfig())

	results := engine.Recommend(models.CandidateProfile{
		Skills:         []string{"react", "node.js", "aws"},
		ExpectedSalary: 135000,
	}, 0)

	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].SkillScore)
	assert.Equal(t, 0.0, results[0].SalaryPenalty)
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, []string{"React", "Node.js", "AWS"}, results[0].MatchedSkills)
	assert.Empty(t, results[0].MissingSkills)
}

func TestRecommendEmptySkillsUsesSalaryOnly(t *testing.T) {
	catalog := newTestCatalog(t,
		models.CareerListing{Title: "A", RequiredSkills: []string{"Go"}, SalaryRange: models.SalaryRange{Min: 90000, Max: 120000}},
		models.CareerListing{Title: "B", RequiredSkills: []string{"SQL"}, SalaryRange: models.SalaryRange{Min: 50000, Max: 120000}},
		models.CareerListing{Title: "C", RequiredSkills: []string{"Excel"}, SalaryRange: models.SalaryRange{Min: 200000, Max: 300000}},
	)
	engine := NewRecommendationEngine(catalog, DefaultScoringConfig())

	results := engine.Recommend(models.CandidateProfile{ExpectedSalary: 100000}, 0)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 0.0, r.SkillScore)
	}
	// A and B fit the salary (20), C misses the floor by half (10).
	assert.Equal(t, []string{"B", "A", "C"}, titles(results))
	assert.Equal(t, []int{20, 20, 10}, scores(results))
}

func TestRecommendReturnsEmptyWhenNothingScores(t *testing.T) {
	catalog := newTestCatalog(t,
		models.CareerListing{Title: "A", RequiredSkills: []string{"Go"}, SalaryRange: models.SalaryRange{Min: 50000, Max: 60000}},
	)
	engine := NewRecommendationEngine(catalog, DefaultScoringConfig())

	results := engine.Recommend(models.CandidateProfile{Skills: []string{"cobol"}, ExpectedSalary: 1000000}, 3)
	assert.Empty(t, results)
}

func TestRecommendTieBreaks(t *testing.T) {
	catalog := newTestCatalog(t,
		models.CareerListing{Title: "High floor", RequiredSkills: []string{"Go"}, SalaryRange: models.SalaryRange{Min: 100000, Max: 200000}},
		models.CareerListing{Title: "Low floor first", RequiredSkills: []string{"Go"}, SalaryRange: models.SalaryRange{Min: 50000, Max: 200000}},
		models.CareerListing{Title: "Low floor second", RequiredSkills: []string{"Golang"}, SalaryRange: models.SalaryRange{Min: 50000, Max: 200000}},
	)
	engine := NewRecommendationEngine(catalog, DefaultScoringConfig())

	results := engine.Recommend(models.CandidateProfile{Skills: []string{"go"}, ExpectedSalary: 150000}, 0)

	assert.Equal(t, []string{"Low floor first", "Low floor second", "High floor"}, titles(results))
	assert.Equal(t, []int{100, 100, 100}, scores(results))
}

func TestRecommendTopN(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	engine := NewRecommendationEngine(catalog, DefaultScoringConfig())
	profile := models.CandidateProfile{Skills: []string{"Python", "SQL"}, ExpectedSalary: 100000}

	all := engine.Recommend(profile, 0)
	assert.Len(t, all, len(catalog.ListAll()))

	top := engine.Recommend(profile, 3)
	require.Len(t, top, 3)
	assert.Equal(t, all[:3], top)

	assert.Len(t, engine.Recommend(profile, 100), len(all))
}

func TestRecommendScoresAreBoundedAndSorted(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	engine := NewRecommendationEngine(catalog, DefaultScoringConfig())

	profiles := []models.CandidateProfile{
		{},
		{Skills: []string{"python", "sql", "machine learning", "statistics", "r", "data analysis"}, ExpectedSalary: 120000},
		{Skills: []string{"React", "Node.js", "AWS"}, ExpectedSalary: 135000},
		{Skills: []string{"figma"}, ExpectedSalary: 1e9},
		{Skills: []string{"docker", "k8s", "linux"}, ExpectedSalary: 20000, YearsExperience: 4, Education: models.EducationMasters},
	}

	for _, profile := range profiles {
		results := engine.Recommend(profile, 0)
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Score, 1)
			assert.LessOrEqual(t, r.Score, 100)
		}
		assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		}))
	}
}

func TestCompositeScoreUsesConfiguredWeights(t *testing.T) {
	cfg := DefaultScoringConfig()
	assert.Equal(t, 100, cfg.CompositeScore(1, 0))
	assert.Equal(t, 80, cfg.CompositeScore(1, 1))
	assert.Equal(t, 60, cfg.CompositeScore(0.5, 0))

	cfg.SkillWeight, cfg.SalaryWeight = 1, 0
	assert.Equal(t, 50, cfg.CompositeScore(0.5, 0))

	cfg.SkillWeight, cfg.SalaryWeight = 3, 1
	assert.Equal(t, 100, cfg.CompositeScore(1, 0))
}

func titles(results []models.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Career.Title
	}
	return out
}

func scores(results []models.MatchResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Score
	}
	return out
}
