// pkg/roster/roster.go

// Package roster defines the JSON roster-file format that can seed the
// activity directory, with JSON-schema and invariant validation on load.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
)

// ActivityRoster is the top-level roster document.
type ActivityRoster struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity is one roster entry. The JSON field names match the directory's
// wire contract, plus the name that keys the entry.
type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// LoadRoster reads and validates a roster file.
func LoadRoster(path string) (*ActivityRoster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(data)
}

// Parse validates raw roster JSON against the schema and the directory
// invariants, then unmarshals it.
func Parse(data []byte) (*ActivityRoster, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var r ActivityRoster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate enforces the invariants the schema alone cannot express: unique
// activity names, rosters within capacity, and no duplicate participants.
func (r *ActivityRoster) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("roster has no activities")
	}

	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.Name == "" {
			return fmt.Errorf("activity with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate activity name: %s", a.Name)
		}
		seen[a.Name] = true

		if a.MaxParticipants < 1 {
			return fmt.Errorf("activity %q: max_participants must be positive", a.Name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return fmt.Errorf("activity %q: %d participants exceed capacity %d",
				a.Name, len(a.Participants), a.MaxParticipants)
		}

		participants := make(map[string]bool, len(a.Participants))
		for _, p := range a.Participants {
			if p == "" {
				return fmt.Errorf("activity %q: empty participant email", a.Name)
			}
			if participants[p] {
				return fmt.Errorf("activity %q: duplicate participant %s", a.Name, p)
			}
			participants[p] = true
		}
	}

	return nil
}
