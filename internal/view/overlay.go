package view

import "github.com/somtogreat69/portfolio/internal/catalog"

// Step is one numbered workflow step of the detail view.
type Step struct {
	Number      int
	Label       string
	Description string
}

// OverlayProps are the inputs of the detail overlay.
type OverlayProps struct {
	Selected *catalog.CaseStudy
	IsOpen   bool
	OnClose  func()
}

// Overlay is the expanded projection of the selected case study.
type Overlay struct {
	ID        string
	Title     string
	Role      string
	Challenge string
	Solution  string
	Tools     []string
	Steps     []Step
	VideoURL  string
	Color     catalog.Color

	onClose func()
}

// NewOverlay returns the overlay to render, or nil when there is nothing to
// show: no selected record, or the overlay is closed.
func NewOverlay(props OverlayProps) *Overlay {
	if props.Selected == nil || !props.IsOpen {
		return nil
	}
	s := props.Selected
	steps := make([]Step, len(s.Workflow))
	for i, w := range s.Workflow {
		steps[i] = Step{Number: i + 1, Label: w.Label, Description: w.Description}
	}
	return &Overlay{
		ID:        s.ID,
		Title:     s.Title,
		Role:      s.Role,
		Challenge: s.Challenge,
		Solution:  s.Solution,
		Tools:     append([]string(nil), s.Tools...),
		Steps:     steps,
		VideoURL:  s.VideoURL,
		Color:     s.Color,
		onClose:   props.OnClose,
	}
}

// Close signals closing intent to the owner. The overlay does not change
// its own visibility.
func (o *Overlay) Close() {
	if o != nil && o.onClose != nil {
		o.onClose()
	}
}
