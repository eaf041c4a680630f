// internal/httpapi/handlers.go
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/models"
)

// handleRoot redirects to the static front end.
func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSuffix(a.cfg.Static.Route, "/") + "/index.html"
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// handleListActivities returns the full directory keyed by activity name.
func (a *API) handleListActivities(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, a.store.List(r.Context()))
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		a.responder.Respond(w, r, apperrors.NewActivityNotFoundError(name))
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		a.responder.Respond(w, r, apperrors.NewEmailRequiredError())
		return
	}

	name = a.resolveActivity(r.Context(), name)
	if err := a.store.Signup(r.Context(), name, email); err != nil {
		a.responder.Respond(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("%s signed up for %s", email, name),
	})
}

func (a *API) handleUnregister(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		a.responder.Respond(w, r, apperrors.NewActivityNotFoundError(name))
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		a.responder.Respond(w, r, apperrors.NewEmailRequiredError())
		return
	}

	name = a.resolveActivity(r.Context(), name)
	if err := a.store.Unregister(r.Context(), name, email); err != nil {
		a.responder.Respond(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("%s unregistered from %s", email, name),
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, models.HealthStatus{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleReady(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, models.HealthStatus{Status: "ready"})
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("failed to encode response", map[string]interface{}{
			"requestId": requestIDFrom(r.Context()),
			"path":      r.URL.Path,
			"error":     err.Error(),
		})
	}
}

// activityName extracts and percent-decodes the {name} path parameter.
func activityName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw, err
	}
	return name, nil
}

// resolveActivity picks the stored name for a decoded path segment. A
// literal "+" in the path is not percent-decoded, so a client sending
// "Chess+Club" for "Chess Club" misses on the literal lookup; when that
// happens the plus-for-space reading is tried. An activity literally named
// with "+" still wins the first check.
func (a *API) resolveActivity(ctx context.Context, name string) string {
	if a.store.Has(ctx, name) {
		return name
	}
	if !strings.Contains(name, "+") {
		return name
	}
	if spaced := strings.ReplaceAll(name, "+", " "); a.store.Has(ctx, spaced) {
		return spaced
	}
	return name
}
