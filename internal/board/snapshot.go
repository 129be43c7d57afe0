package board

import (
	"sort"

	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/backend"
)

// Participant is one roster entry together with the identifiers its remove
// control submits.
type Participant struct {
	Activity string
	Email    string
}

// Card is the rendered form of one activity.
type Card struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []Participant
}

// Snapshot is the immutable view state the web layer renders. It is rebuilt
// wholesale from every fetch; nothing is diffed or patched in place.
type Snapshot struct {
	Cards []Card
	// Options holds the activity names offered by the signup selector. A
	// failed refresh replaces Cards with the failure notice but leaves
	// Options as they were.
	Options    []string
	LoadFailed bool
}

// buildSnapshot folds a fetched activity map into view state. Names are
// sorted so rendering order is stable across refreshes; the wire format is a
// JSON object and carries no usable order of its own.
func buildSnapshot(activities map[string]backend.Activity) Snapshot {
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)

	cards := make([]Card, 0, len(names))
	for _, name := range names {
		activity := activities[name]
		card := Card{
			Name:        name,
			Description: activity.Description,
			Schedule:    activity.Schedule,
			// May go negative if the backend over-books; rendered as-is.
			SpotsLeft:    activity.MaxParticipants - len(activity.Participants),
			Participants: make([]Participant, 0, len(activity.Participants)),
		}
		for _, email := range activity.Participants {
			card.Participants = append(card.Participants, Participant{Activity: name, Email: email})
		}
		cards = append(cards, card)
	}

	return Snapshot{Cards: cards, Options: names}
}
