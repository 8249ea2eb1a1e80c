package services

import (
	"regexp"
	"strconv"
	"strings"

	"careercrafter/career-crafter-api/internal/models"
)

type resumeSection string

const (
	sectionNone       resumeSection = ""
	sectionSkills     resumeSection = "skills"
	sectionExperience resumeSection = "experience"
	sectionEducation  resumeSection = "education"
)

var sectionHeaders = map[string]resumeSection{
	"skills":                  sectionSkills,
	"technical skills":        sectionSkills,
	"expertise":               sectionSkills,
	"proficiencies":           sectionSkills,
	"experience":              sectionExperience,
	"work history":            sectionExperience,
	"employment":              sectionExperience,
	"professional experience": sectionExperience,
	"education":               sectionEducation,
	"academic background":     sectionEducation,
	"qualifications":          sectionEducation,
}

// Headers of sections we do not score. They end the current section.
var otherHeaders = map[string]bool{
	"summary":        true,
	"profile":        true,
	"objective":      true,
	"projects":       true,
	"certifications": true,
	"languages":      true,
	"interests":      true,
	"references":     true,
	"contact":        true,
}

const maxSkillEntryLength = 40

var (
	// Groups 1 and 3 flag ages ("aged 45 years", "45 years old").
	yearsPattern = regexp.MustCompile(`(\bage[d:]?\s*)?(\d+)\s*\+?\s*(?:years?|yrs?)\b(\s*-?\s*old\b|\s+of\s+age\b)?`)

	// Titles and terms that contain "master" without being a degree.
	nonDegreePattern = regexp.MustCompile(`\b(?:scrum|web|quiz|grand|chess|band|post|toast|zen)[\s-]?masters?\b|\bmaster\s+(?:data|branch|class|plan|node|record)s?\b`)

	educationPatterns = []struct {
		level   models.EducationLevel
		pattern *regexp.Regexp
	}{
		{models.EducationPhD, regexp.MustCompile(`\b(?:ph\.?\s?d|doctorate|doctoral)`)},
		{models.EducationMasters, regexp.MustCompile(`\b(?:master(?:'?s)?\b|msc\b|m\.sc|mba\b)`)},
		{models.EducationBachelors, regexp.MustCompile(`\b(?:bachelor(?:'?s)?\b|bsc\b|b\.sc|b\.s\.|b\.a\.|bs\b|ba\b)`)},
		{models.EducationHighSchool, regexp.MustCompile(`\b(?:high school|secondary school|ged\b)`)},
	}

	skillSeparators = regexp.MustCompile(`[,;|•·]`)
)

type resumeSections struct {
	skills     []string
	experience []string
	education  []string
}

// ParseResumeText pulls skills, years of experience and education level out of
// plain resume text. Skills come from the skills section and from vocabulary
// terms found anywhere in the text.
func ParseResumeText(text string, vocabulary *SkillVocabulary) models.ResumeDocument {
	sections := splitSections(text)

	var skills []string
	for _, line := range sections.skills {
		skills = append(skills, splitSkillLine(line)...)
	}
	if vocabulary != nil {
		skills = append(skills, vocabulary.Extract(text)...)
	}

	experienceText := strings.Join(sections.experience, "\n")
	if strings.TrimSpace(experienceText) == "" {
		experienceText = text
	}
	educationText := strings.Join(sections.education, "\n")
	if strings.TrimSpace(educationText) == "" {
		educationText = text
	}

	return models.ResumeDocument{
		Text:            text,
		Skills:          NormalizeSkills(skills),
		YearsExperience: DetectYearsOfExperience(experienceText),
		Education:       DetectEducationLevel(educationText),
	}
}

func splitSections(text string) resumeSections {
	var (
		out     resumeSections
		current = sectionNone
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		section, rest, isHeader := matchHeader(line)
		if isHeader {
			current = section
			if rest == "" {
				continue
			}
			line = rest
		}

		switch current {
		case sectionSkills:
			out.skills = append(out.skills, line)
		case sectionExperience:
			out.experience = append(out.experience, line)
		case sectionEducation:
			out.education = append(out.education, line)
		}
	}
	return out
}

// matchHeader recognises "Skills", "SKILLS:" and inline forms like "Skills: Go, SQL".
func matchHeader(line string) (resumeSection, string, bool) {
	head, rest, hasColon := strings.Cut(line, ":")
	key := strings.ToLower(strings.Trim(strings.TrimSpace(head), "#*-= "))
	if !hasColon {
		rest = ""
	}
	rest = strings.TrimSpace(rest)

	if section, ok := sectionHeaders[key]; ok {
		return section, rest, true
	}
	if otherHeaders[key] {
		return sectionNone, "", true
	}
	return sectionNone, "", false
}

func splitSkillLine(line string) []string {
	var out []string
	for _, part := range skillSeparators.Split(line, -1) {
		part = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(part), "-*•·"))
		if part == "" || len(part) > maxSkillEntryLength {
			continue
		}
		out = append(out, part)
	}
	return out
}

// DetectYearsOfExperience returns the largest "N years" mention, or 0.
func DetectYearsOfExperience(text string) int {
	best := 0
	for _, match := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		if match[1] != "" || match[3] != "" {
			continue
		}
		years, err := strconv.Atoi(match[2])
		if err != nil || years > 60 {
			continue
		}
		if years > best {
			best = years
		}
	}
	return best
}

// DetectEducationLevel returns the highest degree mentioned in text.
func DetectEducationLevel(text string) models.EducationLevel {
	lowered := nonDegreePattern.ReplaceAllString(strings.ToLower(text), " ")
	for _, candidate := range educationPatterns {
		if candidate.pattern.MatchString(lowered) {
			return candidate.level
		}
	}
	return models.EducationUnknown
}
