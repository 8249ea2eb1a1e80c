package services

import (
	"fmt"
	"strings"

	"careercrafter/career-crafter-api/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCoachingPrompt asks for a short career-coach summary of a scored resume.
func (pb *PromptBuilder) BuildCoachingPrompt(analysis *models.Analysis, related []CareerHit) string {
	jobSection := "No job description was provided. Skills were compared against commonly requested skills."
	if strings.TrimSpace(analysis.JobDescription) != "" {
		jobSection = "JOB DESCRIPTION:\n" + strings.TrimSpace(analysis.JobDescription)
	}

	return fmt.Sprintf(`You are an experienced career coach reviewing a candidate's resume.

%s

AUTOMATED SCORES (0-100):
- Overall: %.2f
- Skills: %.2f
- Experience: %.2f (%d years detected)
- Education: %.2f (%s)

DETECTED SKILLS: %s
MISSING SKILLS: %s

AUTOMATED FEEDBACK:
%s

CAREERS SIMILAR TO THIS RESUME:
%s

RESUME:
%s

Write a concise summary (3-5 sentences) for the candidate covering their strongest selling points,
the most valuable gaps to close, and which career direction fits them best.
Return ONLY the summary text, no JSON or markdown.`,
		jobSection,
		analysis.OverallScore,
		analysis.SkillsScore,
		analysis.ExperienceScore, analysis.YearsExperience,
		analysis.EducationScore, educationLabel(analysis.EducationLevel),
		listOrNone(analysis.DetectedSkills),
		listOrNone(analysis.MissingSkills),
		listOrNone(analysis.Feedback),
		FormatCareerHits(related),
		analysis.ResumeText,
	)
}

// BuildCareerDocument is the text embedded for a catalog career.
func (pb *PromptBuilder) BuildCareerDocument(listing models.CareerListing) string {
	return fmt.Sprintf("Career: %s\nDescription: %s\nRequired skills: %s\nSalary range: %s",
		listing.Title,
		listing.Description,
		strings.Join(listing.RequiredSkills, ", "),
		listing.SalaryRange.String(),
	)
}

func FormatCareerHits(hits []CareerHit) string {
	if len(hits) == 0 {
		return "No similar careers found."
	}

	parts := make([]string, 0, len(hits))
	for i, hit := range hits {
		parts = append(parts, fmt.Sprintf("%d. %s (similarity %.2f): %s",
			i+1, hit.Title, hit.Score, strings.TrimSpace(hit.Description)))
	}
	return strings.Join(parts, "\n")
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func educationLabel(level models.EducationLevel) string {
	if level == models.EducationUnknown {
		return "not detected"
	}
	return strings.ReplaceAll(string(level), "_", " ")
}
