package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the audit endpoints under /api/submissions.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/submissions", func(r chi.Router) {
		r.Get("/", handleQuery(store))
		r.Get("/counts", handleCounts(store))
		r.Get("/{id}", handleGetByID(store))
	})
}

func handleQuery(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := QueryFilter{SessionID: q.Get("session")}

		if v := q.Get("outcome"); v != "" {
			filter.Outcome = Outcome(v)
			if !filter.Outcome.Valid() {
				http.Error(w, "unknown outcome", http.StatusBadRequest)
				return
			}
		}
		var err error
		if filter.Since, err = parseTimeParam(q.Get("since")); err != nil {
			http.Error(w, "invalid since", http.StatusBadRequest)
			return
		}
		if filter.Until, err = parseTimeParam(q.Get("until")); err != nil {
			http.Error(w, "invalid until", http.StatusBadRequest)
			return
		}
		if filter.Limit, err = parseCountParam(q.Get("limit")); err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		if filter.Offset, err = parseCountParam(q.Get("offset")); err != nil {
			http.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}

		attempts, err := store.Query(r.Context(), filter)
		if err != nil {
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}
		if attempts == nil {
			attempts = []Attempt{}
		}

		writeJSON(w, http.StatusOK, attempts)
	}
}

// parseTimeParam reads an optional RFC 3339 timestamp. Empty means unset.
func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseCountParam reads an optional non-negative integer. Empty means zero.
func parseCountParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

func handleCounts(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := store.Counts(r.Context())
		if err != nil {
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		attempt, err := store.GetByID(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "lookup failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, attempt)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
