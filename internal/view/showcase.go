package view

import "github.com/somtogreat69/portfolio/internal/catalog"

// Feature is a numbered app feature line.
type Feature struct {
	Number int
	Text   string
}

// AppShowcase is the projection of one app profile.
type AppShowcase struct {
	ID        string
	Name      string
	Tagline   string
	Overview  string
	Features  []Feature
	TechStack []string
	Image     string
}

// NewAppShowcase projects an app profile.
func NewAppShowcase(a catalog.AppProfile) AppShowcase {
	features := make([]Feature, len(a.Features))
	for i, f := range a.Features {
		features[i] = Feature{Number: i + 1, Text: f}
	}
	return AppShowcase{
		ID:        a.ID,
		Name:      a.Name,
		Tagline:   a.Tagline,
		Overview:  a.Overview,
		Features:  features,
		TechStack: append([]string(nil), a.TechStack...),
		Image:     a.Image,
	}
}
