package view

import (
	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/page"
)

// Section is an in-page navigation target.
type Section struct {
	ID    string
	Label string
}

// Sections are the anchors reachable from the navigation bar.
var Sections = []Section{
	{ID: "automation", Label: "01. Automation"},
	{ID: "mobile", Label: "02. Mobile Apps"},
	{ID: "contact", Label: "03. Hire Me"},
}

// Callbacks connect rendered affordances to a page controller.
type Callbacks struct {
	OnViewLogic func(catalog.CaseStudy)
	OnClose     func()
}

// PageData is everything the page template needs.
type PageData struct {
	Profile        catalog.Profile
	Sections       []Section
	Cards          []Card
	Apps           []AppShowcase
	Overlay        *Overlay
	Submit         Button
	Form           page.ContactForm
	ServiceOptions []string
	Live           bool
}

// BuildPage composes the catalog and a controller snapshot into page data.
func BuildPage(cat *catalog.Catalog, snap page.Snapshot, cb Callbacks) PageData {
	apps := cat.Apps()
	showcases := make([]AppShowcase, len(apps))
	for i, a := range apps {
		showcases[i] = NewAppShowcase(a)
	}

	return PageData{
		Profile:  cat.Profile(),
		Sections: Sections,
		Cards:    Cards(cat.CaseStudies(), cb.OnViewLogic),
		Apps:     showcases,
		Overlay: NewOverlay(OverlayProps{
			Selected: snap.Selection.Selected,
			IsOpen:   snap.Selection.OverlayOpen,
			OnClose:  cb.OnClose,
		}),
		Submit:         SubmitButtonFor(snap.Submission),
		Form:           snap.Form,
		ServiceOptions: page.ServiceOptions,
	}
}

// FindCard returns the card for the case study id.
func (d PageData) FindCard(id string) (Card, bool) {
	for _, c := range d.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
