// cmd/tools/roster-lint/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"mergington-activities/pkg/roster"
)

var rosterPath string

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	validateCmd.StringVar(&rosterPath, "path", "configs/activity-roster.json", "Path to roster file")
	listCmd.StringVar(&rosterPath, "path", "configs/activity-roster.json", "Path to roster file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		ros, err := roster.LoadRoster(rosterPath)
		if err != nil {
			fmt.Printf("Roster validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Roster validation passed. Found %d activities.\n", len(ros.Activities))

	case "list":
		listCmd.Parse(os.Args[2:])
		ros, err := roster.LoadRoster(rosterPath)
		if err != nil {
			fmt.Printf("Error loading roster: %v\n", err)
			os.Exit(1)
		}
		listActivities(ros)

	case "help":
		fallthrough
	default:
		help()
	}
}

func listActivities(ros *roster.ActivityRoster) {
	fmt.Printf("Roster version %s, last updated %s\n\n", ros.Version, ros.LastUpdated)
	for _, act := range ros.Activities {
		fmt.Printf("%s\n", act.Name)
		fmt.Printf("  Schedule: %s\n", act.Schedule)
		fmt.Printf("  Seats:    %d/%d filled\n", len(act.Participants), act.MaxParticipants)
		for _, email := range act.Participants {
			fmt.Printf("    - %s\n", email)
		}
	}
}

func help() {
	fmt.Println(`
Usage: roster-lint <command> [flags]

Commands:
  validate Validate the roster file against the schema and invariants
  list     Print the roster contents with seat counts
  help     Show this help message

Examples:
  roster-lint validate -path configs/activity-roster.json
  roster-lint list

Use 'roster-lint <command> -h' for more information about a command.`)
}
