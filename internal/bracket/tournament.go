package bracket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentStarted   TournamentStatus = "started"
	TournamentCompleted TournamentStatus = "completed"
)

type Format string

const (
	SingleElimination Format = "single_elimination"
	DoubleElimination Format = "double_elimination"
	RoundRobin        Format = "round_robin"
)

// ParseFormat accepts the canonical tags plus the short names older clients send.
func ParseFormat(s string) (Format, error) {
	switch s {
	case string(SingleElimination), "single":
		return SingleElimination, nil
	case string(DoubleElimination), "double":
		return DoubleElimination, nil
	case string(RoundRobin), "group":
		return RoundRobin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// IsElimination reports whether the format produces a tree with a single terminal match.
func (f Format) IsElimination() bool {
	return f == SingleElimination || f == DoubleElimination
}

type Tournament struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	Name            string           `db:"name" json:"name"`
	ParticipantKind ParticipantKind  `db:"participant_kind" json:"participant_kind"`
	Format          Format           `db:"format" json:"format"`
	Status          TournamentStatus `db:"status" json:"status"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}
