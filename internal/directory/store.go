// Package directory owns the in-memory activity directory: the seeded
// activity records plus the signup and unregister rules that mutate them.
package directory

import (
	"context"
	"sync"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

// Outcome labels for the signup/unregister counters.
const (
	outcomeOK          = "ok"
	outcomeNotFound    = "not_found"
	outcomeDuplicate   = "already_signed_up"
	outcomeFull        = "full"
	outcomeNotSignedUp = "not_signed_up"

	// unknownActivity keeps arbitrary client input out of the label set.
	unknownActivity = "unknown"
)

// Store holds every activity for the lifetime of the process. A single
// RWMutex makes each read-check-mutate sequence atomic; List hands out deep
// copies so callers never observe a partially applied mutation.
type Store struct {
	mu         sync.RWMutex
	activities map[string]*models.Activity
	logger     logger.Logger
}

// New builds a Store from a seed roster. The seed is deep-copied, so the
// caller's map stays untouched by later mutations.
func New(seed map[string]models.Activity, log logger.Logger) *Store {
	activities := make(map[string]*models.Activity, len(seed))
	for name, activity := range seed {
		a := activity.Clone()
		activities[name] = &a
		metrics.ActivityParticipants.WithLabelValues(name).Set(float64(len(a.Participants)))
	}

	return &Store{
		activities: activities,
		logger:     log.WithFields(map[string]interface{}{"component": "directory"}),
	}
}

// List returns a deep-copied snapshot of every activity keyed by name.
func (s *Store) List(ctx context.Context) map[string]models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Activity, len(s.activities))
	for name, activity := range s.activities {
		out[name] = activity.Clone()
	}
	return out
}

// Has reports whether an activity with the given name exists.
func (s *Store) Has(ctx context.Context, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.activities[name]
	return ok
}

// Len returns the number of activities in the directory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Signup registers email for the named activity. Checks run in contract
// order: existence, then duplicate, then capacity, so a duplicate signup on
// a full activity still reports the duplicate.
func (s *Store) Signup(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[name]
	if !ok {
		metrics.SignupsTotal.WithLabelValues(unknownActivity, outcomeNotFound).Inc()
		return apperrors.NewActivityNotFoundError(name)
	}
	if activity.HasParticipant(email) {
		metrics.SignupsTotal.WithLabelValues(name, outcomeDuplicate).Inc()
		return apperrors.NewAlreadySignedUpError(email, name)
	}
	if activity.IsFull() {
		metrics.SignupsTotal.WithLabelValues(name, outcomeFull).Inc()
		return apperrors.NewActivityFullError(name, activity.MaxParticipants)
	}

	activity.Participants = append(activity.Participants, email)
	metrics.SignupsTotal.WithLabelValues(name, outcomeOK).Inc()
	metrics.ActivityParticipants.WithLabelValues(name).Set(float64(len(activity.Participants)))

	s.logger.Info("participant signed up", map[string]interface{}{
		"activity":     name,
		"email":        email,
		"participants": len(activity.Participants),
	})

	return nil
}

// Unregister removes email from the named activity's roster.
func (s *Store) Unregister(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[name]
	if !ok {
		metrics.UnregistrationsTotal.WithLabelValues(unknownActivity, outcomeNotFound).Inc()
		return apperrors.NewActivityNotFoundError(name)
	}

	idx := -1
	for i, p := range activity.Participants {
		if p == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics.UnregistrationsTotal.WithLabelValues(name, outcomeNotSignedUp).Inc()
		return apperrors.NewNotSignedUpError(email, name)
	}

	activity.Participants = append(activity.Participants[:idx], activity.Participants[idx+1:]...)
	metrics.UnregistrationsTotal.WithLabelValues(name, outcomeOK).Inc()
	metrics.ActivityParticipants.WithLabelValues(name).Set(float64(len(activity.Participants)))

	s.logger.Info("participant unregistered", map[string]interface{}{
		"activity":     name,
		"email":        email,
		"participants": len(activity.Participants),
	})

	return nil
}
