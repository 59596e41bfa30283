package bracket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ParticipantKind string

const (
	TeamKind       ParticipantKind = "team"
	IndividualKind ParticipantKind = "individual"
)

func ParseParticipantKind(s string) (ParticipantKind, error) {
	switch s {
	case string(TeamKind):
		return TeamKind, nil
	case string(IndividualKind), "solo":
		return IndividualKind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParticipantKind, s)
}

// Entrant is an opaque reference to a team or an individual. The engine never
// looks behind the ID.
type Entrant struct {
	Kind ParticipantKind `db:"kind" json:"kind"`
	ID   int64           `db:"entrant_id" json:"id"`
}

type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationWithdrawn RegistrationStatus = "withdrawn"
)

// Registration is a roster row: one entrant signed up for one tournament.
type Registration struct {
	TournamentID uuid.UUID          `db:"tournament_id"`
	Kind         ParticipantKind    `db:"kind"`
	EntrantID    int64              `db:"entrant_id"`
	Status       RegistrationStatus `db:"status"`
	CreatedAt    time.Time          `db:"created_at"`
}

func (r Registration) Entrant() Entrant {
	return Entrant{Kind: r.Kind, ID: r.EntrantID}
}
