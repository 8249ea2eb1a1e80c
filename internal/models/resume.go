package models

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// ResumeDocument is what the extraction step hands to the resume scorer.
type ResumeDocument struct {
	Format          DocumentFormat
	Text            string
	Skills          []string
	YearsExperience int
	Education       EducationLevel
}

type CategoryScores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

type ResumeAnalysis struct {
	OverallScore   float64
	Categories     CategoryScores
	Feedback       []string
	RequiredSkills []string
	MatchedSkills  []string
	MissingSkills  []string
	// MatchPercentage is set only when a job description was supplied.
	MatchPercentage *float64
}
