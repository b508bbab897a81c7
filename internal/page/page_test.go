package page

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/somtogreat69/portfolio/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeChannel records calls and returns err. When release is non-nil each
// call blocks until it is closed.
type fakeChannel struct {
	mu      sync.Mutex
	calls   []url.Values
	err     error
	release chan struct{}
	started chan struct{}
}

func (f *fakeChannel) Send(_ context.Context, fields url.Values) error {
	f.mu.Lock()
	f.calls = append(f.calls, fields)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakeChannel) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingObserver struct {
	mu      sync.Mutex
	results []Result
}

func (r *recordingObserver) ObserveSubmission(_ context.Context, res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func validForm() ContactForm {
	return ContactForm{
		Name:          "Ada Lovelace",
		Email:         "ada@example.com",
		ServiceDomain: ServiceOptions[1],
		Message:       "Automate my invoices.",
	}
}

func TestSelectionTransitions(t *testing.T) {
	var s Selection
	if s.OverlayOpen || s.Selected != nil {
		t.Fatal("initial selection should be empty and closed")
	}

	rec, err := catalog.Default().CaseStudy("crm-erp")
	if err != nil {
		t.Fatal(err)
	}
	s = s.Open(rec)
	if !s.OverlayOpen || s.SelectedID() != "crm-erp" {
		t.Errorf("after Open: %+v", s)
	}
	if !s.Valid() {
		t.Error("open selection should be valid")
	}

	s = s.Close()
	if s.OverlayOpen {
		t.Error("Close should hide the overlay")
	}
	if s.SelectedID() != "crm-erp" {
		t.Errorf("Close should keep the selection, got %q", s.SelectedID())
	}

	if (Selection{OverlayOpen: true}).Valid() {
		t.Error("open overlay without a record must be invalid")
	}
}

func TestSubmissionTransitionClosure(t *testing.T) {
	states := []SubmissionState{Idle, Sending, Success}
	events := []Event{EventSubmit, EventResolved, EventRejected}

	want := map[SubmissionState]map[Event]SubmissionState{
		Idle:    {EventSubmit: Sending},
		Sending: {EventResolved: Success, EventRejected: Idle},
		Success: {},
	}

	for _, from := range states {
		for _, ev := range events {
			next, err := from.Next(ev)
			target, allowed := want[from][ev]
			if allowed {
				if err != nil {
					t.Errorf("%s on %s: unexpected error %v", from, ev, err)
				}
				if next != target {
					t.Errorf("%s on %s = %s, want %s", from, ev, next, target)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s on %s: err = %v, want ErrInvalidTransition", from, ev, err)
			}
			if next != from {
				t.Errorf("%s on %s: state changed to %s on rejected event", from, ev, next)
			}
		}
	}
}

func TestCanSubmit(t *testing.T) {
	if !Idle.CanSubmit() {
		t.Error("idle should be submittable")
	}
	if Sending.CanSubmit() || Success.CanSubmit() {
		t.Error("sending and success must not be submittable")
	}
}

func TestControllerInitialState(t *testing.T) {
	c := NewController(&fakeChannel{})
	snap := c.Snapshot()
	if snap.Submission != Idle {
		t.Errorf("submission = %s, want idle", snap.Submission)
	}
	if snap.Selection.OverlayOpen || snap.Selection.Selected != nil {
		t.Errorf("selection = %+v, want empty", snap.Selection)
	}
	if diff := cmp.Diff(EmptyForm(), snap.Form); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerOpenClose(t *testing.T) {
	var changes []Snapshot
	c := NewController(&fakeChannel{}, WithOnChange(func(s Snapshot) { changes = append(changes, s) }))

	rec, _ := catalog.Default().CaseStudy("lead-qual")
	c.OpenDetail(rec)
	c.CloseDetail()

	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2", len(changes))
	}
	if !changes[0].Selection.OverlayOpen || changes[0].Selection.SelectedID() != "lead-qual" {
		t.Errorf("first change = %+v", changes[0].Selection)
	}
	if changes[1].Selection.OverlayOpen || changes[1].Selection.SelectedID() != "lead-qual" {
		t.Errorf("second change = %+v", changes[1].Selection)
	}
}

func TestSubmitSuccessClearsForm(t *testing.T) {
	ch := &fakeChannel{}
	obs := &recordingObserver{}
	c := NewController(ch, WithObserver(obs), WithSessionID("s-1"))

	done, err := c.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if final := <-done; final != Success {
		t.Errorf("final = %s, want success", final)
	}

	snap := c.Snapshot()
	if snap.Submission != Success {
		t.Errorf("submission = %s, want success", snap.Submission)
	}
	if diff := cmp.Diff(EmptyForm(), snap.Form); diff != "" {
		t.Errorf("form not cleared (-want +got):\n%s", diff)
	}
	if ch.count() != 1 {
		t.Errorf("channel calls = %d, want 1", ch.count())
	}
	if got := ch.calls[0].Get("email"); got != "ada@example.com" {
		t.Errorf("posted email = %q", got)
	}
	if len(obs.results) != 1 || obs.results[0].SessionID != "s-1" || obs.results[0].Err != nil {
		t.Errorf("observer results = %+v", obs.results)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	ch := &fakeChannel{err: errors.New("network unreachable")}
	obs := &recordingObserver{}
	c := NewController(ch, WithObserver(obs))

	form := validForm()
	done, err := c.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if final := <-done; final != Idle {
		t.Errorf("final = %s, want idle", final)
	}

	snap := c.Snapshot()
	if diff := cmp.Diff(form, snap.Form); diff != "" {
		t.Errorf("form should be preserved (-want +got):\n%s", diff)
	}
	if len(obs.results) != 1 || obs.results[0].Err == nil || obs.results[0].State != Idle {
		t.Errorf("observer results = %+v", obs.results)
	}

	// The user may retry by submitting again.
	ch.err = nil
	done, err = c.Submit(context.Background(), snap.Form)
	if err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if final := <-done; final != Success {
		t.Errorf("retry final = %s, want success", final)
	}
}

// orderObserver appends to a shared log so the test can see where observers
// run relative to the published state change.
type orderObserver struct {
	mu  *sync.Mutex
	log *[]string
}

func (o orderObserver) ObserveSubmission(_ context.Context, res Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.log = append(*o.log, "observe "+res.State.String())
}

func TestObserversRunBeforeFinalChange(t *testing.T) {
	var (
		mu  sync.Mutex
		log []string
	)
	c := NewController(&fakeChannel{},
		WithObserver(orderObserver{mu: &mu, log: &log}),
		WithOnChange(func(s Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			log = append(log, "change "+s.Submission.String())
		}),
	)

	done, err := c.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatal(err)
	}
	<-done

	mu.Lock()
	defer mu.Unlock()
	want := []string{"change sending", "observe success", "change success"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitDisabledWhileSending(t *testing.T) {
	ch := &fakeChannel{release: make(chan struct{}), started: make(chan struct{}, 1)}
	var states []SubmissionState
	var mu sync.Mutex
	c := NewController(ch, WithOnChange(func(s Snapshot) {
		mu.Lock()
		states = append(states, s.Submission)
		mu.Unlock()
	}))

	done, err := c.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-ch.started

	if got := c.Snapshot().Submission; got != Sending {
		t.Errorf("in-flight state = %s, want sending", got)
	}
	if _, err := c.Submit(context.Background(), validForm()); !errors.Is(err, ErrSubmitDisabled) {
		t.Errorf("second Submit err = %v, want ErrSubmitDisabled", err)
	}

	close(ch.release)
	<-done

	if ch.count() != 1 {
		t.Errorf("channel calls = %d, want 1", ch.count())
	}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]SubmissionState{Sending, Success}, states); diff != "" {
		t.Errorf("state sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitDisabledAfterSuccess(t *testing.T) {
	c := NewController(&fakeChannel{})
	done, err := c.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatal(err)
	}
	<-done

	if _, err := c.Submit(context.Background(), validForm()); !errors.Is(err, ErrSubmitDisabled) {
		t.Errorf("Submit after success err = %v, want ErrSubmitDisabled", err)
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	ch := &fakeChannel{release: make(chan struct{}), started: make(chan struct{}, 1)}
	c := NewController(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done, err := c.Submit(ctx, validForm())
	if err != nil {
		t.Fatal(err)
	}
	<-ch.started
	cancel()
	close(ch.release)

	if final := <-done; final != Success {
		t.Errorf("final = %s, want success", final)
	}
}

func TestFormFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("name", "  Grace ")
	v.Set("email", "grace@example.com")
	v.Set("message", "hi")

	got := FormFromValues(v)
	want := ContactForm{Name: "Grace", Email: "grace@example.com", ServiceDomain: ServiceOptions[0], Message: "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormFromValues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(v.Get("email"), got.Values().Get("email")); diff != "" {
		t.Errorf("Values mismatch: %s", diff)
	}

	v.Set("service_domain", ServiceOptions[3])
	if got := FormFromValues(v).ServiceDomain; got != ServiceOptions[3] {
		t.Errorf("ServiceDomain = %q, want %q", got, ServiceOptions[3])
	}
	v.Set("service_domain", "Crypto Mining Rig")
	if got := FormFromValues(v).ServiceDomain; got != ServiceOptions[0] {
		t.Errorf("unknown ServiceDomain = %q, want default %q", got, ServiceOptions[0])
	}
}

func TestContactFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form ContactForm
		ok   bool
	}{
		{"valid", validForm(), true},
		{"missing name", ContactForm{Email: "a@b.co"}, false},
		{"blank name", ContactForm{Name: "  ", Email: "a@b.co"}, false},
		{"missing email", ContactForm{Name: "A"}, false},
		{"no at sign", ContactForm{Name: "A", Email: "ab.co"}, false},
		{"nothing after at", ContactForm{Name: "A", Email: "a@"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrIncompleteForm) {
				t.Errorf("Validate() = %v, want ErrIncompleteForm", err)
			}
		})
	}
}

func TestSubmissionStateText(t *testing.T) {
	for _, s := range []SubmissionState{Idle, Sending, Success} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", s, err)
		}
		var got SubmissionState
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != s {
			t.Errorf("round trip %s = %s", s, got)
		}
	}
	var s SubmissionState
	if err := s.UnmarshalText([]byte("error")); err == nil {
		t.Error("UnmarshalText(error) succeeded, want failure")
	}
}
