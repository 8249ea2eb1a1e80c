package handlers

import "careercrafter/career-crafter-api/internal/models"

func toAnalysisResponse(a *models.Analysis) models.AnalysisResponse {
	resp := models.AnalysisResponse{
		ID:           a.ID.String(),
		Status:       string(a.Status),
		OverallScore: a.OverallScore,
		CategoryScores: models.CategoryScores{
			Skills:     a.SkillsScore,
			Experience: a.ExperienceScore,
			Education:  a.EducationScore,
		},
		Feedback:       emptyIfNil(a.Feedback),
		DetectedSkills: emptyIfNil(a.DetectedSkills),
		CoachSummary:   a.CoachSummary,
		RelatedCareers: a.RelatedCareers,
	}

	// job-description mode
	if a.MatchPercentage != nil {
		resp.MatchPercentage = a.MatchPercentage
		resp.MatchedSkills = emptyIfNil(a.MatchedSkills)
		resp.MissingSkills = emptyIfNil(a.MissingSkills)
	}

	if a.Status == models.StatusFailed {
		resp.ErrorMessage = a.ErrorMessage
	}
	return resp
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
