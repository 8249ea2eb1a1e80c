package services

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"careercrafter/career-crafter-api/internal/models"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// CareerCatalog is read-only after construction and safe for concurrent use.
type CareerCatalog interface {
	ListAll() []models.CareerListing
	InDemandSkills() []string
	// Skills returns every distinct required skill across the catalog.
	Skills() []string
}

type catalogFile struct {
	InDemandSkills []string               `yaml:"in_demand_skills"`
	Careers        []models.CareerListing `yaml:"careers"`
}

type staticCatalog struct {
	listings []models.CareerListing
	inDemand []string
}

// LoadCatalog reads the catalog from path, or the embedded default when path is empty.
func LoadCatalog(path string) (CareerCatalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (CareerCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(file.Careers, file.InDemandSkills)
}

// NewCatalog validates and copies the listings.
func NewCatalog(listings []models.CareerListing, inDemand []string) (CareerCatalog, error) {
	if len(listings) == 0 {
		return nil, fmt.Errorf("catalog has no careers")
	}

	titles := make(map[string]struct{}, len(listings))
	copied := make([]models.CareerListing, 0, len(listings))
	for i, listing := range listings {
		title := strings.TrimSpace(listing.Title)
		if title == "" {
			return nil, fmt.Errorf("catalog entry %d has no title", i)
		}
		key := strings.ToLower(title)
		if _, dup := titles[key]; dup {
			return nil, fmt.Errorf("duplicate career %q", title)
		}
		titles[key] = struct{}{}

		if listing.SalaryRange.Min < 0 || listing.SalaryRange.Min > listing.SalaryRange.Max {
			return nil, fmt.Errorf("career %q has invalid salary range %v-%v", title, listing.SalaryRange.Min, listing.SalaryRange.Max)
		}
		if len(NormalizeSkills(listing.RequiredSkills)) == 0 {
			return nil, fmt.Errorf("career %q has no required skills", title)
		}

		listing.Title = title
		listing.RequiredSkills = append([]string(nil), listing.RequiredSkills...)
		copied = append(copied, listing)
	}

	return &staticCatalog{
		listings: copied,
		inDemand: append([]string(nil), inDemand...),
	}, nil
}

func (c *staticCatalog) ListAll() []models.CareerListing {
	out := make([]models.CareerListing, len(c.listings))
	for i, listing := range c.listings {
		listing.RequiredSkills = append([]string(nil), listing.RequiredSkills...)
		out[i] = listing
	}
	return out
}

func (c *staticCatalog) InDemandSkills() []string {
	return append([]string(nil), c.inDemand...)
}

func (c *staticCatalog) Skills() []string {
	var all []string
	for _, listing := range c.listings {
		all = append(all, listing.RequiredSkills...)
	}
	return NormalizeSkills(all)
}
