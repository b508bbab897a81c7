package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogOrder(t *testing.T) {
	cat := Default()

	var ids []string
	for _, s := range cat.CaseStudies() {
		ids = append(ids, s.ID)
	}
	want := []string{"lead-qual", "onboarding", "content-engine", "crm-erp", "slack-bot"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("case study order mismatch (-want +got):\n%s", diff)
	}

	apps := cat.Apps()
	if len(apps) != 1 || apps[0].ID != "2easy" {
		t.Errorf("apps = %+v, want single 2easy", apps)
	}
}

func TestDefaultVideoURLs(t *testing.T) {
	cat := Default()
	tests := []struct {
		id        string
		wantVideo bool
	}{
		{"lead-qual", true},
		{"onboarding", true},
		{"content-engine", false},
		{"crm-erp", true},
		{"slack-bot", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cs, err := cat.CaseStudy(tt.id)
			if err != nil {
				t.Fatalf("CaseStudy(%q): %v", tt.id, err)
			}
			if cs.HasVideo() != tt.wantVideo {
				t.Errorf("HasVideo() = %v, want %v", cs.HasVideo(), tt.wantVideo)
			}
		})
	}
}

func TestCaseStudyNotFound(t *testing.T) {
	_, err := Default().CaseStudy("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	cat := Default()

	studies := cat.CaseStudies()
	studies[0].Title = "mutated"
	studies[0].Tools[0] = "mutated"
	studies[0].Workflow[0].Label = "mutated"

	cs, err := cat.CaseStudy("lead-qual")
	if err != nil {
		t.Fatalf("CaseStudy: %v", err)
	}
	if cs.Title == "mutated" || cs.Tools[0] == "mutated" || cs.Workflow[0].Label == "mutated" {
		t.Error("catalog content was mutated through an accessor copy")
	}

	apps := cat.Apps()
	apps[0].Features[0] = "mutated"
	if cat.Apps()[0].Features[0] == "mutated" {
		t.Error("app features were mutated through an accessor copy")
	}
}

func TestEmptyCatalogIsValid(t *testing.T) {
	cat, err := New(Profile{}, nil, nil)
	if err != nil {
		t.Fatalf("New with empty collections: %v", err)
	}
	if len(cat.CaseStudies()) != 0 || len(cat.Apps()) != 0 {
		t.Error("expected empty collections")
	}
}

func TestValidate(t *testing.T) {
	valid := CaseStudy{ID: "a", Title: "t", Role: "r", Challenge: "c", Solution: "s", Color: ColorBlue}

	tests := []struct {
		name    string
		studies []CaseStudy
		apps    []AppProfile
	}{
		{"missing id", []CaseStudy{{Title: "t", Role: "r", Challenge: "c", Solution: "s", Color: ColorBlue}}, nil},
		{"duplicate id", []CaseStudy{valid, valid}, nil},
		{"missing solution", []CaseStudy{{ID: "a", Title: "t", Role: "r", Challenge: "c", Color: ColorBlue}}, nil},
		{"bad color", []CaseStudy{{ID: "a", Title: "t", Role: "r", Challenge: "c", Solution: "s", Color: "red"}}, nil},
		{"duplicate app", nil, []AppProfile{{ID: "x", Name: "X"}, {ID: "x", Name: "Y"}}},
		{"app without name", nil, []AppProfile{{ID: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Profile{}, tt.studies, tt.apps)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}

	// An empty workflow is allowed by convention.
	if _, err := New(Profile{}, []CaseStudy{valid}, nil); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	original := Default()

	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(original.CaseStudies(), loaded.CaseStudies()); diff != "" {
		t.Errorf("case studies differ after reload (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(original.Profile(), loaded.Profile()); diff != "" {
		t.Errorf("profile differs after reload (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	content := `case_studies:
  - id: one
    title: One
    role: Builder
    challenge: Hard
    solution: Easy
    color: purple
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestOpenEmptyPathUsesDefault(t *testing.T) {
	cat, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(cat.CaseStudies()) != 5 {
		t.Errorf("case studies = %d, want 5", len(cat.CaseStudies()))
	}
}

func TestPhoneDigits(t *testing.T) {
	p := Profile{Phone: "+234 7077336381"}
	if got := p.PhoneDigits(); got != "+2347077336381" {
		t.Errorf("PhoneDigits() = %q, want %q", got, "+2347077336381")
	}
}
