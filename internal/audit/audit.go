// Package audit records contact form submission attempts for operators.
// It is a diagnostic log: page state itself is never persisted.
package audit

import (
	"time"

	"github.com/somtogreat69/portfolio/internal/page"
)

// Outcome is how the relay call settled.
type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeRejected Outcome = "rejected"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeResolved || o == OutcomeRejected
}

// OutcomeOf classifies a finished submission.
func OutcomeOf(r page.Result) Outcome {
	if r.Err != nil {
		return OutcomeRejected
	}
	return OutcomeResolved
}

// Attempt is a single submission audit record.
type Attempt struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	SessionID     string        `json:"session_id"`
	Outcome       Outcome       `json:"outcome"`
	Error         string        `json:"error,omitempty"`
	ServiceDomain string        `json:"service_domain"`
	SenderEmail   string        `json:"sender_email"`
	Duration      time.Duration `json:"duration"`
}

// AttemptFrom builds the audit record for a finished submission.
func AttemptFrom(r page.Result) Attempt {
	a := Attempt{
		SessionID:     r.SessionID,
		Outcome:       OutcomeOf(r),
		ServiceDomain: r.Form.ServiceDomain,
		SenderEmail:   r.Form.Email,
		Duration:      r.Duration,
	}
	if r.Err != nil {
		a.Error = r.Err.Error()
	}
	return a
}
