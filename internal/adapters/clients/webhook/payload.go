package webhook

import (
	"time"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// EventBoardChanged is the only event type sent today.
const EventBoardChanged = "board.changed"

// Payload is the JSON body posted to a webhook target.
type Payload struct {
	Event    string           `json:"event"`
	Sequence uint64           `json:"sequence"`
	SentAt   time.Time        `json:"sent_at"`
	Counts   map[string]int   `json:"counts"`
	Projects []ProjectPayload `json:"projects"`
}

// ProjectPayload is one project on the wire.
type ProjectPayload struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	NumberOfPeople int       `json:"number_of_people"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// toPayload translates a board change into its wire form. Counts carries an
// entry for every status, zero included.
func toPayload(change ports.BoardChange) Payload {
	p := Payload{
		Event:    EventBoardChanged,
		Sequence: change.Sequence,
		SentAt:   change.At.UTC(),
		Counts:   make(map[string]int, len(project.Statuses)),
		Projects: make([]ProjectPayload, 0, change.Snapshot.Len()),
	}
	for _, s := range project.Statuses {
		p.Counts[s.String()] = 0
	}
	for _, pr := range change.Snapshot.All() {
		p.Counts[pr.Status.String()]++
		p.Projects = append(p.Projects, ProjectPayload{
			ID:             pr.ID,
			Title:          pr.Title,
			Description:    pr.Description,
			NumberOfPeople: pr.NumberOfPeople,
			Status:         pr.Status.String(),
			CreatedAt:      pr.CreatedAt.UTC(),
		})
	}
	return p
}
