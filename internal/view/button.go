package view

import "github.com/somtogreat69/portfolio/internal/page"

// Icon names an inline SVG drawn next to a button label.
type Icon string

const (
	IconArrow   Icon = "arrow"
	IconSpinner Icon = "spinner"
	IconCheck   Icon = "check"
)

// Button is the rendered submit affordance.
type Button struct {
	Label    string
	Icon     Icon
	Disabled bool
	State    page.SubmissionState
}

// SubmitButtonFor derives the submit affordance from the submission state
// alone.
func SubmitButtonFor(s page.SubmissionState) Button {
	switch s {
	case page.Sending:
		return Button{Label: "SENDING REQUEST...", Icon: IconSpinner, Disabled: true, State: s}
	case page.Success:
		return Button{Label: "REQUEST SENT", Icon: IconCheck, Disabled: true, State: s}
	default:
		return Button{Label: "INITIATE PROJECT PROTOCOL", Icon: IconArrow, Disabled: !s.CanSubmit(), State: s}
	}
}
