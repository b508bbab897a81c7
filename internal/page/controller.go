package page

import (
	"context"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/catalog"
)

// Channel delivers a contact form to the external form processor. A nil
// error means the call resolved, whatever the processor answered.
type Channel interface {
	Send(ctx context.Context, fields url.Values) error
}

// Result describes one finished submission.
type Result struct {
	SessionID string
	Form      ContactForm
	State     SubmissionState
	Err       error
	Duration  time.Duration
}

// Observer receives finished submissions. Observers run synchronously on the
// settle path, after the state transition and before it is published, so the
// final state reaches OnChange only once every observer has returned.
// Implementations must bound their own work.
type Observer interface {
	ObserveSubmission(ctx context.Context, r Result)
}

// Snapshot is a consistent copy of a controller's state.
type Snapshot struct {
	SessionID  string
	Selection  Selection
	Submission SubmissionState
	Form       ContactForm
}

// Option configures a Controller.
type Option func(*Controller)

// WithSessionID tags logs and results with the owning page session.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.sessionID = id }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver adds a submission observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithOnChange registers a hook run after every state change, outside the
// controller lock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns the state of one page instance.
type Controller struct {
	channel   Channel
	sessionID string
	logger    *zap.Logger
	observers []Observer
	onChange  func(Snapshot)

	mu         sync.Mutex
	selection  Selection
	submission SubmissionState
	form       ContactForm
}

// NewController creates a controller in its initial state: nothing
// selected, overlay closed, submission idle, form empty.
func NewController(ch Channel, opts ...Option) *Controller {
	c := &Controller{
		channel: ch,
		logger:  zap.NewNop(),
		form:    EmptyForm(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		SessionID:  c.sessionID,
		Selection:  c.selection,
		Submission: c.submission,
		Form:       c.form,
	}
	if c.selection.Selected != nil {
		rec := *c.selection.Selected
		s.Selection.Selected = &rec
	}
	return s
}

// OpenDetail selects record and opens its overlay. It is the target of the
// card "view logic" callback.
func (c *Controller) OpenDetail(record catalog.CaseStudy) {
	c.mu.Lock()
	c.selection = c.selection.Open(record)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.changed(snap)
}

// CloseDetail closes the overlay and keeps the selection.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.selection = c.selection.Close()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.changed(snap)
}

// Submit sends form through the channel unless a submission is already in
// flight or has succeeded. It returns immediately with the state in
// Sending; the returned channel yields the final state (Success or Idle)
// once the call settles and is then closed.
//
// The call is detached from ctx cancellation: once sending starts there is
// no way to abort it. Bound its duration in the Channel instead.
func (c *Controller) Submit(ctx context.Context, form ContactForm) (<-chan SubmissionState, error) {
	c.mu.Lock()
	next, err := c.submission.Next(EventSubmit)
	if err != nil {
		c.mu.Unlock()
		return nil, ErrSubmitDisabled
	}
	c.submission = next
	c.form = form
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.changed(snap)

	done := make(chan SubmissionState, 1)
	callCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		start := time.Now()
		sendErr := c.channel.Send(callCtx, form.Values())
		done <- c.settle(callCtx, form, sendErr, time.Since(start))
	}()
	return done, nil
}

// settle applies the outcome of the relay call.
func (c *Controller) settle(ctx context.Context, form ContactForm, sendErr error, elapsed time.Duration) SubmissionState {
	ev := EventResolved
	if sendErr != nil {
		ev = EventRejected
	}

	c.mu.Lock()
	next, err := c.submission.Next(ev)
	if err != nil {
		// Nothing but settle leaves Sending, so this is unreachable.
		c.mu.Unlock()
		c.logger.Error("submission settled in unexpected state", zap.Error(err))
		return c.Snapshot().Submission
	}
	c.submission = next
	if next == Success {
		c.form = EmptyForm()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if sendErr != nil {
		c.logger.Warn("contact form submission failed",
			zap.String("session", c.sessionID),
			zap.Duration("elapsed", elapsed),
			zap.Error(sendErr))
	} else {
		c.logger.Info("contact form submitted",
			zap.String("session", c.sessionID),
			zap.Duration("elapsed", elapsed))
	}

	res := Result{
		SessionID: c.sessionID,
		Form:      form,
		State:     next,
		Err:       sendErr,
		Duration:  elapsed,
	}
	for _, o := range c.observers {
		o.ObserveSubmission(ctx, res)
	}

	c.changed(snap)
	return next
}

func (c *Controller) changed(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
