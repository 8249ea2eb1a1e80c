package models

import "fmt"

type SalaryRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r SalaryRange) Contains(amount float64) bool {
	return amount >= r.Min && amount <= r.Max
}

// String renders the range the way the legacy assessment payload did, e.g. "$120,000 - $150,000".
func (r SalaryRange) String() string {
	return fmt.Sprintf("$%s - $%s", groupThousands(int64(r.Min)), groupThousands(int64(r.Max)))
}

type CareerListing struct {
	Title          string      `json:"title" yaml:"title"`
	RequiredSkills []string    `json:"required_skills" yaml:"required_skills"`
	SalaryRange    SalaryRange `json:"salary_range" yaml:"salary_range"`
	Description    string      `json:"description" yaml:"description"`
}

// MatchResult pairs a catalog listing with the composite score computed for one profile.
type MatchResult struct {
	Career        CareerListing
	Score         int
	SkillScore    float64
	SalaryPenalty float64
	MatchedSkills []string
	MissingSkills []string
}

func groupThousands(n int64) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	out := s[:head]
	for i := head; i < len(s); i += 3 {
		out += "," + s[i:i+3]
	}
	return out
}
