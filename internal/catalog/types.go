package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Color is the visual category of a case study. It selects styling only.
type Color string

const (
	ColorBlue  Color = "blue"
	ColorGreen Color = "green"
)

// Valid reports whether c is one of the known colors.
func (c Color) Valid() bool {
	return c == ColorBlue || c == ColorGreen
}

// UnmarshalYAML rejects colors outside the closed set.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	col := Color(s)
	if !col.Valid() {
		return fmt.Errorf("%w: color %q must be blue or green", ErrInvalid, s)
	}
	*c = col
	return nil
}

// WorkflowStep is one numbered step of a case study build.
type WorkflowStep struct {
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}

// CaseStudy describes one automation project.
type CaseStudy struct {
	ID        string         `yaml:"id" json:"id"`
	Title     string         `yaml:"title" json:"title"`
	Role      string         `yaml:"role" json:"role"`
	Challenge string         `yaml:"challenge" json:"challenge"`
	Solution  string         `yaml:"solution" json:"solution"`
	Tools     []string       `yaml:"tools" json:"tools"`
	Workflow  []WorkflowStep `yaml:"workflow" json:"workflow"`
	Color     Color          `yaml:"color" json:"color"`
	VideoURL  string         `yaml:"video_url,omitempty" json:"video_url,omitempty"`
}

// HasVideo reports whether a demo video link should be offered.
func (c CaseStudy) HasVideo() bool { return c.VideoURL != "" }

func (c CaseStudy) clone() CaseStudy {
	out := c
	out.Tools = append([]string(nil), c.Tools...)
	out.Workflow = append([]WorkflowStep(nil), c.Workflow...)
	return out
}

// AppProfile describes one mobile app showcase.
type AppProfile struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Tagline   string   `yaml:"tagline" json:"tagline"`
	Overview  string   `yaml:"overview" json:"overview"`
	Features  []string `yaml:"features" json:"features"`
	TechStack []string `yaml:"tech_stack" json:"tech_stack"`
	Image     string   `yaml:"image" json:"image"`
}

func (a AppProfile) clone() AppProfile {
	out := a
	out.Features = append([]string(nil), a.Features...)
	out.TechStack = append([]string(nil), a.TechStack...)
	return out
}

// Link is an outbound profile link shown in the footer.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Profile holds the hero and footer shell content.
type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Headline    string `yaml:"headline" json:"headline"`
	Intro       string `yaml:"intro" json:"intro"`
	Mission     string `yaml:"mission" json:"mission"`
	Portrait    string `yaml:"portrait" json:"portrait"`
	ClientBadge string `yaml:"client_badge" json:"client_badge"`
	About       string `yaml:"about" json:"about"`
	Email       string `yaml:"email" json:"email"`
	Phone       string `yaml:"phone" json:"phone"`
	Location    string `yaml:"location" json:"location"`
	Region      string `yaml:"region" json:"region"`
	Links       []Link `yaml:"links" json:"links"`
	Copyright   string `yaml:"copyright" json:"copyright"`
}

// PhoneDigits returns the phone number reduced to its dialable characters,
// for a tel: link.
func (p Profile) PhoneDigits() string {
	digits := make([]rune, 0, len(p.Phone))
	for _, r := range p.Phone {
		if r == '+' || (r >= '0' && r <= '9') {
			digits = append(digits, r)
		}
	}
	return string(digits)
}

func (p Profile) clone() Profile {
	out := p
	out.Links = append([]Link(nil), p.Links...)
	return out
}
