// Package seed provides the activity catalog the registry is built from
// at startup.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

const koanfDelimiter = "."

// catalogFile is the shape of an external seed file:
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [a@mergington.edu]
type catalogFile struct {
	Activities []model.Definition `koanf:"activities"`
}

// Default returns the built-in school catalog.
func Default() []model.Definition {
	return []model.Definition{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Practice tennis skills and compete in school tournaments",
			Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"lucas@mergington.edu", "ethan@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and participate in math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

// Load returns the validated catalog from path, or the built-in catalog
// when path is empty.
func Load(_ context.Context, path string) ([]model.Definition, error) {
	if path == "" {
		defs := Default()
		if err := Validate(defs); err != nil {
			return nil, err
		}
		return defs, nil
	}

	k := koanf.New(koanfDelimiter)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}

	var c catalogFile
	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if err := Validate(c.Activities); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return c.Activities, nil
}

// Validate checks catalog consistency: at least one activity, non-blank
// unique names, positive capacities. Duplicate participant emails within
// one definition are allowed here; the registry collapses them to the
// first occurrence on seeding.
func Validate(defs []model.Definition) error {
	if len(defs) == 0 {
		return fmt.Errorf("catalog has no activities")
	}

	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf("activity %d has a blank name", i)
		}
		if _, dup := seen[def.Name]; dup {
			return fmt.Errorf("duplicate activity name %q", def.Name)
		}
		seen[def.Name] = struct{}{}

		if def.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q has non-positive max_participants %d", def.Name, def.MaxParticipants)
		}
	}
	return nil
}
