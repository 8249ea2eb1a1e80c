package services

import (
	"context"
	"fmt"
	"strings"

	"careercrafter/career-crafter-api/internal/models"
)

const (
	msgNoSkills          = "Please provide at least one skill"
	msgNoRecommendations = "No recommendations found for the given profile"
	legacyAssessmentSize = 3
)

// legacyMockCareers is what the career-assessment endpoint has always
// answered when it cannot compute anything better.
var legacyMockCareers = []models.AssessmentCareer{
	{
		Title:       "Senior Software Engineer",
		Match:       "95%",
		Salary:      "$120,000 - $150,000",
		Skills:      []string{"React", "Node.js", "AWS"},
		Description: "Lead development teams and architect scalable solutions",
	},
	{
		Title:       "DevOps Engineer",
		Match:       "85%",
		Salary:      "$110,000 - $140,000",
		Skills:      []string{"AWS", "Docker", "CI/CD"},
		Description: "Implement and maintain cloud infrastructure",
	},
	{
		Title:       "Full Stack Developer",
		Match:       "80%",
		Salary:      "$100,000 - $130,000",
		Skills:      []string{"React", "Node.js", "MongoDB"},
		Description: "Develop end-to-end web applications",
	},
}

type RecommendationService interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.MatchResult, error)
	// Assess answers the legacy career-assessment endpoint. It never fails;
	// unusable input gets the fixed legacy payload.
	Assess(ctx context.Context, req models.AssessmentRequest) models.AssessmentResponse
}

type recommendationService struct {
	engine      RecommendationEngine
	defaultTopN int
}

func NewRecommendationService(engine RecommendationEngine, defaultTopN int) RecommendationService {
	if defaultTopN <= 0 {
		defaultTopN = 3
	}
	return &recommendationService{engine: engine, defaultTopN: defaultTopN}
}

func (s *recommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	skills := nonBlank(req.Skills)
	if len(skills) == 0 {
		return nil, NewValidationError("skills", msgNoSkills)
	}
	if req.ExpectedSalary < 0 {
		return nil, NewValidationError("expected_salary", "expected_salary must not be negative")
	}
	if req.YearsExperience < 0 {
		return nil, NewValidationError("years_experience", "years_experience must not be negative")
	}
	if req.TopN < 0 {
		return nil, NewValidationError("top_n", "top_n must not be negative")
	}
	education, ok := models.ParseEducationLevel(req.EducationLevel)
	if !ok {
		return nil, NewValidationError("education_level", fmt.Sprintf("unknown education_level %q", req.EducationLevel))
	}

	topN := req.TopN
	if topN == 0 {
		topN = s.defaultTopN
	}

	results := s.engine.Recommend(models.CandidateProfile{
		Skills:          skills,
		YearsExperience: req.YearsExperience,
		Education:       education,
		ExpectedSalary:  req.ExpectedSalary,
	}, topN)
	if len(results) == 0 {
		return nil, &NoMatchError{Message: msgNoRecommendations}
	}
	return results, nil
}

func (s *recommendationService) Assess(ctx context.Context, req models.AssessmentRequest) models.AssessmentResponse {
	skills := nonBlank(req.Skills)
	if len(skills) == 0 || ctx.Err() != nil {
		return legacyMockResponse()
	}

	education, _ := models.ParseEducationLevel(req.Education)
	results := s.engine.Recommend(models.CandidateProfile{
		Skills:          skills,
		YearsExperience: req.Experience,
		Education:       education,
		ExpectedSalary:  req.ExpectedSalary,
	}, legacyAssessmentSize)
	if len(results) == 0 {
		return legacyMockResponse()
	}

	careers := make([]models.AssessmentCareer, 0, len(results))
	for _, r := range results {
		careers = append(careers, models.AssessmentCareer{
			Title:       r.Career.Title,
			Match:       fmt.Sprintf("%d%%", r.Score),
			Salary:      r.Career.SalaryRange.String(),
			Skills:      append([]string(nil), r.Career.RequiredSkills...),
			Description: r.Career.Description,
		})
	}
	return models.AssessmentResponse{Careers: careers}
}

func legacyMockResponse() models.AssessmentResponse {
	careers := make([]models.AssessmentCareer, len(legacyMockCareers))
	for i, c := range legacyMockCareers {
		c.Skills = append([]string(nil), c.Skills...)
		careers[i] = c
	}
	return models.AssessmentResponse{Careers: careers}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
