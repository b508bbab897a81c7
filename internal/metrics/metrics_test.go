package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/somtogreat69/portfolio/internal/page"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(body)
}

func assertLine(t *testing.T, out, line string) {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if l == line {
			return
		}
	}
	t.Errorf("metrics output missing line %q", line)
}

func TestObserveSubmission(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveSubmission(ctx, page.Result{State: page.Success, Duration: 200 * time.Millisecond})
	m.ObserveSubmission(ctx, page.Result{State: page.Idle, Err: errors.New("refused")})
	m.ObserveSubmission(ctx, page.Result{State: page.Idle, Err: errors.New("timeout")})

	out := scrape(t, m)
	assertLine(t, out, `portfolio_submissions_total{outcome="resolved"} 1`)
	assertLine(t, out, `portfolio_submissions_total{outcome="rejected"} 2`)
	assertLine(t, out, `portfolio_submission_duration_seconds_count 3`)
	assertLine(t, out, `portfolio_submission_duration_seconds_bucket{le="0.25"} 3`)
}

func TestCounters(t *testing.T) {
	m := New()

	m.PageView()
	m.PageView()
	m.DetailOpened("lead-qual")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	out := scrape(t, m)
	assertLine(t, out, `portfolio_page_views_total 2`)
	assertLine(t, out, `portfolio_detail_opens_total{case="lead-qual"} 1`)
	assertLine(t, out, `portfolio_live_sessions 1`)
	if !strings.Contains(out, "go_goroutines") {
		t.Error("runtime collector not registered")
	}
}

func TestNewIsIndependent(t *testing.T) {
	a, b := New(), New()
	a.PageView()
	assertLine(t, scrape(t, b), `portfolio_page_views_total 0`)
}
