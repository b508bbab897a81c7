// Package page holds the per-page-instance UI state: which case study is
// selected, whether its overlay is open, and where the contact form is in
// its submission lifecycle.
package page

import (
	"errors"
	"fmt"

	"github.com/somtogreat69/portfolio/internal/catalog"
)

var (
	// ErrSubmitDisabled is returned when a submission is attempted while
	// the submit affordance is disabled.
	ErrSubmitDisabled = errors.New("page: submit is disabled")
	// ErrInvalidTransition is returned for an event the current state does
	// not accept.
	ErrInvalidTransition = errors.New("page: invalid transition")
)

// Selection is the detail overlay state. OverlayOpen implies Selected is set.
type Selection struct {
	Selected    *catalog.CaseStudy
	OverlayOpen bool
}

// Open selects record and opens the overlay.
func (s Selection) Open(record catalog.CaseStudy) Selection {
	return Selection{Selected: &record, OverlayOpen: true}
}

// Close hides the overlay. The selected record is kept; a closed overlay
// renders nothing, so the stale reference is harmless.
func (s Selection) Close() Selection {
	s.OverlayOpen = false
	return s
}

// Valid reports whether the open-implies-selected invariant holds.
func (s Selection) Valid() bool {
	return !s.OverlayOpen || s.Selected != nil
}

// SelectedID returns the selected record's ID, or "" when none is selected.
func (s Selection) SelectedID() string {
	if s.Selected == nil {
		return ""
	}
	return s.Selected.ID
}

// SubmissionState is the contact form lifecycle.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Sending
	Success
)

func (s SubmissionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Success:
		return "success"
	default:
		return fmt.Sprintf("SubmissionState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s SubmissionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (s *SubmissionState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "sending":
		*s = Sending
	case "success":
		*s = Success
	default:
		return fmt.Errorf("page: unknown submission state %q", text)
	}
	return nil
}

// CanSubmit reports whether the submit affordance is activatable.
func (s SubmissionState) CanSubmit() bool { return s == Idle }

// Event drives SubmissionState transitions.
type Event int

const (
	// EventSubmit is the user activating the submit affordance.
	EventSubmit Event = iota
	// EventResolved is the relay call completing without a transport error.
	EventResolved
	// EventRejected is the relay call failing.
	EventRejected
)

func (e Event) String() string {
	switch e {
	case EventSubmit:
		return "submit"
	case EventResolved:
		return "resolved"
	case EventRejected:
		return "rejected"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

type transition struct {
	from SubmissionState
	on   Event
}

// transitions is the complete table. Success has no outgoing edge.
var transitions = map[transition]SubmissionState{
	{Idle, EventSubmit}:      Sending,
	{Sending, EventResolved}: Success,
	{Sending, EventRejected}: Idle,
}

// Next returns the state reached from s on ev.
func (s SubmissionState) Next(ev Event) (SubmissionState, error) {
	next, ok := transitions[transition{s, ev}]
	if !ok {
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, s, ev)
	}
	return next, nil
}
