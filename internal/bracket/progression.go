package bracket

import (
	"fmt"

	"github.com/google/uuid"
)

// SlotWrite places an entrant into a downstream match.
type SlotWrite struct {
	Target    SlotRef
	EntrantID int64
}

// Decide records winnerID on m and returns the downstream writes: one for the
// winner target and, when there is a loser and a loser target, one for that.
// m is left untouched when an error is returned.
func Decide(m *Match, winnerID int64) ([]SlotWrite, error) {
	var loser *int64
	switch {
	case m.Slot1ID != nil && *m.Slot1ID == winnerID:
		loser = m.Slot2ID
	case m.Slot2ID != nil && *m.Slot2ID == winnerID:
		loser = m.Slot1ID
	default:
		return nil, fmt.Errorf("%w: entrant %d in match %s", ErrInvalidWinner, winnerID, m.ID)
	}
	if loser == nil && !m.IsBye {
		return nil, fmt.Errorf("%w: match %s", ErrMatchNotReady, m.ID)
	}

	m.WinnerID = &winnerID

	writes := make([]SlotWrite, 0, 2)
	if to := m.WinnerAdvancesTo(); to != nil {
		writes = append(writes, SlotWrite{Target: *to, EntrantID: winnerID})
	}
	if to := m.LoserAdvancesTo(); to != nil && loser != nil {
		writes = append(writes, SlotWrite{Target: *to, EntrantID: *loser})
	}
	return writes, nil
}

// Graph is an in-memory match set keyed by id.
type Graph map[uuid.UUID]*Match

func NewGraph(matches []Match) Graph {
	g := make(Graph, len(matches))
	for i := range matches {
		m := matches[i]
		g[m.ID] = &m
	}
	return g
}

// ReportWinner decides a match and applies its writes. Nothing changes when
// the match, the winner or one of the targets is invalid.
func (g Graph) ReportWinner(matchID uuid.UUID, winnerID int64) error {
	m, ok := g[matchID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	decided := *m
	writes, err := Decide(&decided, winnerID)
	if err != nil {
		return err
	}
	for _, w := range writes {
		if _, ok := g[w.Target.MatchID]; !ok {
			return fmt.Errorf("%w: advancement target %s", ErrMatchNotFound, w.Target.MatchID)
		}
	}

	*m = decided
	for _, w := range writes {
		g[w.Target.MatchID].SetOccupant(w.Target.Slot, w.EntrantID)
	}
	return nil
}
