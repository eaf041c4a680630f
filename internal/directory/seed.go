// internal/directory/seed.go
package directory

import "mergington-activities/internal/models"

// DefaultSeed returns the school's initial activity roster. The server seeds
// the store with it whenever no roster file is configured.
func DefaultSeed() map[string]models.Activity {
	return map[string]models.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Competitive basketball training and inter-school matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu"},
		},
		"Swimming Club": {
			Description:     "Swimming lessons and competitive swim training",
			Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"sarah@mergington.edu", "alex@mergington.edu"},
		},
		"Art Studio": {
			Description:     "Explore various art mediums including painting and sculpture",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"emily@mergington.edu"},
		},
		"Theater Club": {
			Description:     "Acting, stage performance, and theatrical productions",
			Schedule:        "Tuesdays and Fridays, 3:30 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"lily@mergington.edu", "noah@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop critical thinking and public speaking skills through debates",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"william@mergington.edu"},
		},
		"Science Club": {
			Description:     "Conduct experiments and explore scientific concepts",
			Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 18,
			Participants:    []string{"ava@mergington.edu", "ethan@mergington.edu"},
		},
	}
}
