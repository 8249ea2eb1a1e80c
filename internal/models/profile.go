package models

import "strings"

type EducationLevel string

const (
	EducationUnknown    EducationLevel = ""
	EducationHighSchool EducationLevel = "high_school"
	EducationBachelors  EducationLevel = "bachelors"
	EducationMasters    EducationLevel = "masters"
	EducationPhD        EducationLevel = "phd"
)

var educationAliases = map[string]EducationLevel{
	"":            EducationUnknown,
	"high_school": EducationHighSchool,
	"high school": EducationHighSchool,
	"bachelors":   EducationBachelors,
	"bachelor":    EducationBachelors,
	"bachelor's":  EducationBachelors,
	"masters":     EducationMasters,
	"master":      EducationMasters,
	"master's":    EducationMasters,
	"phd":         EducationPhD,
	"ph.d":        EducationPhD,
	"doctorate":   EducationPhD,
}

// ParseEducationLevel accepts the form values sent by the web client and a few
// common spellings. An empty value parses to EducationUnknown.
func ParseEducationLevel(value string) (EducationLevel, bool) {
	level, ok := educationAliases[strings.ToLower(strings.TrimSpace(value))]
	return level, ok
}

// CandidateProfile is the immutable input of a single recommendation call.
type CandidateProfile struct {
	Skills          []string
	YearsExperience int
	Education       EducationLevel
	ExpectedSalary  float64
}
