package services

import (
	"fmt"
	"math"
	"strings"

	"careercrafter/career-crafter-api/internal/models"
)

type ResumeScorer interface {
	// Analyze scores an extracted resume. A blank jobDescription compares the
	// resume against the in-demand skill set instead.
	Analyze(resume models.ResumeDocument, jobDescription string) models.ResumeAnalysis
}

type resumeScorer struct {
	config     ScoringConfig
	vocabulary *SkillVocabulary
	inDemand   []string
}

func NewResumeScorer(config ScoringConfig, vocabulary *SkillVocabulary, inDemand []string) ResumeScorer {
	return &resumeScorer{
		config:     config,
		vocabulary: vocabulary,
		inDemand:   append([]string(nil), inDemand...),
	}
}

// ExperienceScore rises linearly with years and saturates at ceiling.
func ExperienceScore(years, ceiling int) float64 {
	if years <= 0 || ceiling <= 0 {
		return 0
	}
	return round2(100 * math.Min(float64(years), float64(ceiling)) / float64(ceiling))
}

func (s *resumeScorer) Analyze(resume models.ResumeDocument, jobDescription string) models.ResumeAnalysis {
	withJob := strings.TrimSpace(jobDescription) != ""

	required := s.inDemand
	if withJob {
		required = s.vocabulary.Extract(jobDescription)
	}

	overlap := ScoreSkillOverlap(resume.Skills, required)
	categories := models.CategoryScores{
		Skills:     round2(overlap.Score * 100),
		Experience: ExperienceScore(resume.YearsExperience, s.config.ExperienceCeilingYears),
		Education:  s.config.EducationScores[resume.Education],
	}

	analysis := models.ResumeAnalysis{
		OverallScore:   s.overall(categories),
		Categories:     categories,
		RequiredSkills: NormalizeSkills(required),
		MatchedSkills:  overlap.Matched,
		MissingSkills:  overlap.Missing,
	}
	if withJob {
		match := categories.Skills
		analysis.MatchPercentage = &match
	}
	analysis.Feedback = s.feedback(resume, analysis, withJob)
	return analysis
}

func (s *resumeScorer) overall(c models.CategoryScores) float64 {
	total := s.config.ResumeSkillsWeight + s.config.ResumeExperienceWeight + s.config.ResumeEducationWeight
	if total <= 0 {
		return 0
	}
	weighted := s.config.ResumeSkillsWeight*c.Skills +
		s.config.ResumeExperienceWeight*c.Experience +
		s.config.ResumeEducationWeight*c.Education
	return round2(clampScore(weighted / total))
}

func (s *resumeScorer) feedback(resume models.ResumeDocument, analysis models.ResumeAnalysis, withJob bool) []string {
	threshold := s.config.FeedbackThreshold
	lines := []string{}

	switch {
	case withJob && len(analysis.RequiredSkills) == 0:
		lines = append(lines, "No recognizable skills were found in the job description, so skill coverage could not be measured.")
	case analysis.Categories.Skills < threshold && withJob:
		lines = append(lines, fmt.Sprintf(
			"Your resume covers %.0f%% of the skills named in the job description. Add the relevant tools and technologies you have used.",
			analysis.Categories.Skills))
	case analysis.Categories.Skills < threshold:
		lines = append(lines, "Your resume lists few of the skills employers currently ask for. Consider adding more relevant technical skills and tools.")
	}

	if analysis.Categories.Experience < threshold {
		if resume.YearsExperience <= 0 {
			lines = append(lines, `No years of experience were detected. State how long you held each role, for example "3 years".`)
		} else {
			lines = append(lines, fmt.Sprintf(
				"About %d years of experience detected. Highlight relevant work experience and quantify your achievements.",
				resume.YearsExperience))
		}
	}

	if analysis.Categories.Education < threshold {
		if resume.Education == models.EducationUnknown {
			lines = append(lines, "No education level was detected. Add an education section with your highest degree.")
		} else {
			lines = append(lines, "Consider adding more details about your education, relevant coursework, and academic projects.")
		}
	}

	if len(analysis.MissingSkills) > 0 {
		lines = append(lines, "Missing skills: "+strings.Join(analysis.MissingSkills, ", "))
	}

	if len(lines) == 0 {
		lines = append(lines, "Your resume looks strong and well-structured.")
	}
	return lines
}
