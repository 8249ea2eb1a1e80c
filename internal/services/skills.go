package services

import (
	"regexp"
	"strings"
)

var skillAliases = map[string]string{
	"js":            "javascript",
	"ts":            "typescript",
	"golang":        "go",
	"k8s":           "kubernetes",
	"postgres":      "postgresql",
	"nodejs":        "node.js",
	"node":          "node.js",
	"node js":       "node.js",
	"ci cd":         "ci/cd",
	"ci-cd":         "ci/cd",
	"rest":          "rest api",
	"restful api":   "rest api",
	"ml":            "machine learning",
	"ux/ui":         "ui/ux",
	"ui ux":         "ui/ux",
	"amazon aws":    "aws",
	"reactjs":       "react",
	"react.js":      "react",
	"vue.js":        "vue",
	"vuejs":         "vue",
	"microservice":  "microservices",
	"html5":         "html",
	"css3":          "css",
	"statistic":     "statistics",
}

// Aliases that are also ordinary English words are only honoured when they
// come from an explicit skill list, never when scanning free text.
var freeTextUnsafeAliases = map[string]bool{
	"rest": true,
	"node": true,
	"ml":   true,
	"ts":   true,
}

// DefaultSkillKeywords are always recognised in resume and job description text.
var DefaultSkillKeywords = []string{
	"python", "java", "javascript", "html", "css", "react", "angular", "vue",
	"sql", "database", "aws", "azure", "docker", "kubernetes", "git",
	"machine learning", "data analysis", "project management", "leadership",
	"communication", "problem solving", "teamwork", "agile", "scrum",
}

// NormalizeSkill lowercases, trims and collapses whitespace, then folds known aliases.
func NormalizeSkill(skill string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(skill)), " ")
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills returns the distinct normalized skills in first-seen order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized := NormalizeSkill(skill)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

type SkillOverlap struct {
	Score float64
	// Matched and Missing keep the spelling and order of the required list.
	Matched []string
	Missing []string
}

// ScoreSkillOverlap measures how much of required is covered by candidate:
// |candidate ∩ required| / |required|. Extra candidate skills never raise the
// score and an empty required set scores 0.
func ScoreSkillOverlap(candidate, required []string) SkillOverlap {
	have := make(map[string]struct{}, len(candidate))
	for _, skill := range NormalizeSkills(candidate) {
		have[skill] = struct{}{}
	}

	result := SkillOverlap{Matched: []string{}, Missing: []string{}}
	seen := make(map[string]struct{}, len(required))
	for _, skill := range required {
		normalized := NormalizeSkill(skill)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}

		if _, ok := have[normalized]; ok {
			result.Matched = append(result.Matched, strings.TrimSpace(skill))
		} else {
			result.Missing = append(result.Missing, strings.TrimSpace(skill))
		}
	}

	if len(seen) == 0 {
		return result
	}
	result.Score = float64(len(result.Matched)) / float64(len(seen))
	return result
}

func SkillOverlapScore(candidate, required []string) float64 {
	return ScoreSkillOverlap(candidate, required).Score
}

// SkillVocabulary finds known skills inside free text.
type SkillVocabulary struct {
	terms []vocabularyTerm
}

type vocabularyTerm struct {
	skill   string
	pattern *regexp.Regexp
}

func NewSkillVocabulary(groups ...[]string) *SkillVocabulary {
	var all []string
	for _, group := range groups {
		all = append(all, group...)
	}

	spellings := make(map[string][]string)
	for alias, canonical := range skillAliases {
		if freeTextUnsafeAliases[alias] || alias == canonical {
			continue
		}
		spellings[canonical] = append(spellings[canonical], alias)
	}

	vocab := &SkillVocabulary{}
	for _, skill := range NormalizeSkills(all) {
		alternatives := []string{phrasePattern(skill)}
		for _, alias := range spellings[skill] {
			alternatives = append(alternatives, phrasePattern(alias))
		}
		vocab.terms = append(vocab.terms, vocabularyTerm{
			skill:   skill,
			pattern: regexp.MustCompile(`(?:^|[^a-z0-9+#])(?:` + strings.Join(alternatives, "|") + `)(?:[^a-z0-9+#]|$)`),
		})
	}
	return vocab
}

func phrasePattern(phrase string) string {
	words := strings.Fields(phrase)
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}
	return strings.Join(words, `\s+`)
}

// Skills lists the vocabulary in normalized form.
func (v *SkillVocabulary) Skills() []string {
	out := make([]string, len(v.terms))
	for i, term := range v.terms {
		out[i] = term.skill
	}
	return out
}

// Extract returns the vocabulary skills mentioned in text, in vocabulary order.
func (v *SkillVocabulary) Extract(text string) []string {
	lowered := strings.ToLower(text)
	found := []string{}
	for _, term := range v.terms {
		if term.pattern.MatchString(lowered) {
			found = append(found, term.skill)
		}
	}
	return found
}
