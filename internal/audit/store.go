package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/db"
	"github.com/somtogreat69/portfolio/internal/page"
)

// ErrNotFound is returned when no attempt carries the requested ID.
var ErrNotFound = errors.New("audit: attempt not found")

// logTimeout bounds how long an observed submission may spend writing.
const logTimeout = 5 * time.Second

// Store persists submission attempts.
type Store struct {
	db     *db.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: database, logger: logger, now: time.Now}
}

// Log inserts a new attempt. If a.ID is empty a UUID is generated; a zero
// Timestamp is set to the current time.
func (s *Store) Log(ctx context.Context, a Attempt) (Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}
	a.Timestamp = a.Timestamp.UTC().Truncate(time.Second)
	if !a.Outcome.Valid() {
		return a, fmt.Errorf("logging attempt %s: unknown outcome %q", a.ID, a.Outcome)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submission_attempts (
			id, timestamp, session_id, outcome, error,
			service_domain, sender_email, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Timestamp.Format(time.DateTime),
		a.SessionID,
		string(a.Outcome),
		a.Error,
		a.ServiceDomain,
		a.SenderEmail,
		a.Duration.Milliseconds(),
	)
	if err != nil {
		return a, fmt.Errorf("inserting submission attempt: %w", err)
	}
	return a, nil
}

// ObserveSubmission records r before the settled state is published. The
// write is bounded by logTimeout; failures are logged, not returned.
func (s *Store) ObserveSubmission(ctx context.Context, r page.Result) {
	ctx, cancel := context.WithTimeout(ctx, logTimeout)
	defer cancel()
	if _, err := s.Log(ctx, AttemptFrom(r)); err != nil {
		s.logger.Error("recording submission attempt", zap.String("session", r.SessionID), zap.Error(err))
	}
}

// GetByID retrieves a single attempt.
func (s *Store) GetByID(ctx context.Context, id string) (*Attempt, error) {
	row := s.db.QueryRowContext(ctx, selectAttempts+" WHERE id = ?", id)
	a, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading attempt %s: %w", id, err)
	}
	return a, nil
}

// QueryFilter controls which attempts are returned by Query.
type QueryFilter struct {
	Outcome   Outcome
	SessionID string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

const selectAttempts = `SELECT id, timestamp, session_id, outcome, error, service_domain, sender_email, duration_ms FROM submission_attempts`

// Query returns attempts matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Attempt, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := selectAttempts
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying submission attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		a, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

// Counts returns the number of attempts per outcome.
func (s *Store) Counts(ctx context.Context) (map[Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM submission_attempts GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("counting submission attempts: %w", err)
	}
	defer rows.Close()

	counts := map[Outcome]int{OutcomeResolved: 0, OutcomeRejected: 0}
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[Outcome(outcome)] = n
	}
	return counts, rows.Err()
}

// DeleteBefore removes all attempts older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM submission_attempts WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old submission attempts: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Attempt, error) {
	var (
		a          Attempt
		ts         string
		outcome    string
		durationMS int64
	)

	err := sc.Scan(&a.ID, &ts, &a.SessionID, &outcome, &a.Error,
		&a.ServiceDomain, &a.SenderEmail, &durationMS)
	if err != nil {
		return nil, err
	}

	a.Outcome = Outcome(outcome)
	a.Duration = time.Duration(durationMS) * time.Millisecond

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		a.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		a.Timestamp = t
	}

	return &a, nil
}
