package models

type RecommendationRequest struct {
	Skills          []string `json:"skills"`
	ExpectedSalary  float64  `json:"expected_salary"`
	YearsExperience int      `json:"years_experience"`
	EducationLevel  string   `json:"education_level"`
	TopN            int      `json:"top_n"`
}

type RecommendationResponse struct {
	Recommendations []RecommendationData `json:"recommendations"`
}

type RecommendationData struct {
	Career         string      `json:"career"`
	MatchScore     int         `json:"match_score"`
	Description    string      `json:"description"`
	RequiredSkills []string    `json:"required_skills"`
	MatchedSkills  []string    `json:"matched_skills"`
	MissingSkills  []string    `json:"missing_skills"`
	SalaryRange    SalaryRange `json:"salary_range"`
}

// AssessmentRequest is the body of the legacy career-assessment endpoint.
type AssessmentRequest struct {
	Skills         []string `json:"skills"`
	CurrentSalary  float64  `json:"currentSalary"`
	ExpectedSalary float64  `json:"expectedSalary"`
	Experience     int      `json:"experience"`
	Education      string   `json:"education"`
}

type AssessmentResponse struct {
	Careers []AssessmentCareer `json:"careers"`
}

type AssessmentCareer struct {
	Title       string   `json:"title"`
	Match       string   `json:"match"`
	Salary      string   `json:"salary"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
}

type AnalysisResponse struct {
	ID              string         `json:"id,omitempty"`
	Status          string         `json:"status,omitempty"`
	OverallScore    float64        `json:"overall_score"`
	CategoryScores  CategoryScores `json:"category_scores"`
	Feedback        []string       `json:"feedback"`
	DetectedSkills  []string       `json:"detected_skills"`
	MatchPercentage *float64       `json:"match_percentage,omitempty"`
	MatchedSkills   []string       `json:"matched_skills,omitempty"`
	MissingSkills   []string       `json:"missing_skills,omitempty"`
	CoachSummary    *string        `json:"coach_summary,omitempty"`
	RelatedCareers  []string       `json:"related_careers,omitempty"`
	ErrorMessage    *string        `json:"error_message,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
