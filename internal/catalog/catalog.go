package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when no record carries the requested ID.
	ErrNotFound = errors.New("catalog: record not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("catalog: invalid")
)

// Catalog is the read-only content of the page. Accessors hand out copies,
// so a Catalog can be shared between goroutines without locking.
type Catalog struct {
	profile     Profile
	caseStudies []CaseStudy
	apps        []AppProfile
	index       map[string]int
}

// fileFormat is the on-disk YAML layout of a catalog file.
type fileFormat struct {
	Profile     Profile      `yaml:"profile"`
	CaseStudies []CaseStudy  `yaml:"case_studies"`
	Apps        []AppProfile `yaml:"apps"`
}

// New builds a Catalog from the given records after validating them.
func New(profile Profile, studies []CaseStudy, apps []AppProfile) (*Catalog, error) {
	c := &Catalog{
		profile: profile.clone(),
		index:   make(map[string]int, len(studies)),
	}
	for _, s := range studies {
		c.caseStudies = append(c.caseStudies, s.clone())
	}
	for _, a := range apps {
		c.apps = append(c.apps, a.clone())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i, s := range c.caseStudies {
		c.index[s.ID] = i
	}
	return c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	cat, err := New(f.Profile, f.CaseStudies, f.Apps)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Save writes the catalog as YAML, in the format Load reads.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(fileFormat{
		Profile:     c.Profile(),
		CaseStudies: c.CaseStudies(),
		Apps:        c.Apps(),
	})
	if err != nil {
		return fmt.Errorf("marshalling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog to %s: %w", path, err)
	}
	return nil
}

// Validate checks identity uniqueness and required fields. Empty
// collections are valid.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.caseStudies))
	for i, s := range c.caseStudies {
		if s.ID == "" {
			return fmt.Errorf("%w: case study %d has no id", ErrInvalid, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate case study id %q", ErrInvalid, s.ID)
		}
		seen[s.ID] = true

		required := []struct{ field, value string }{
			{"title", s.Title},
			{"role", s.Role},
			{"challenge", s.Challenge},
			{"solution", s.Solution},
		}
		for _, r := range required {
			if r.value == "" {
				return fmt.Errorf("%w: case study %q: %s is required", ErrInvalid, s.ID, r.field)
			}
		}
		if !s.Color.Valid() {
			return fmt.Errorf("%w: case study %q: color %q must be blue or green", ErrInvalid, s.ID, s.Color)
		}
	}

	seenApps := make(map[string]bool, len(c.apps))
	for i, a := range c.apps {
		if a.ID == "" {
			return fmt.Errorf("%w: app %d has no id", ErrInvalid, i)
		}
		if seenApps[a.ID] {
			return fmt.Errorf("%w: duplicate app id %q", ErrInvalid, a.ID)
		}
		seenApps[a.ID] = true
		if a.Name == "" {
			return fmt.Errorf("%w: app %q: name is required", ErrInvalid, a.ID)
		}
	}
	return nil
}

// Profile returns the shell content.
func (c *Catalog) Profile() Profile { return c.profile.clone() }

// CaseStudies returns the case studies in authored order.
func (c *Catalog) CaseStudies() []CaseStudy {
	out := make([]CaseStudy, len(c.caseStudies))
	for i, s := range c.caseStudies {
		out[i] = s.clone()
	}
	return out
}

// Apps returns the app profiles in authored order.
func (c *Catalog) Apps() []AppProfile {
	out := make([]AppProfile, len(c.apps))
	for i, a := range c.apps {
		out[i] = a.clone()
	}
	return out
}

// CaseStudy looks up a case study by ID.
func (c *Catalog) CaseStudy(id string) (CaseStudy, error) {
	i, ok := c.index[id]
	if !ok {
		return CaseStudy{}, fmt.Errorf("%w: case study %q", ErrNotFound, id)
	}
	return c.caseStudies[i].clone(), nil
}
