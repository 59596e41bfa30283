package bracket

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededBuilder(seed uint64, opts ...Option) *Builder {
	return NewBuilder(append([]Option{WithRand(rand.New(rand.NewPCG(seed, seed+1)))}, opts...)...)
}

func teams(n int) []Entrant {
	entrants := make([]Entrant, 0, n)
	for i := 1; i <= n; i++ {
		entrants = append(entrants, Entrant{Kind: TeamKind, ID: int64(i)})
	}
	return entrants
}

func bySide(matches []Match, side BracketSide) []Match {
	var out []Match
	for _, m := range matches {
		if m.BracketSide == side {
			out = append(out, m)
		}
	}
	return out
}

func countByes(matches []Match) int {
	byes := 0
	for _, m := range matches {
		if m.IsBye {
			byes++
		}
	}
	return byes
}

// assertWellLinked checks the structural invariants every generated bracket
// has to satisfy: pointers land on existing later matches, no slot is fed
// twice, and every empty slot of a playable match has a feeder.
func assertWellLinked(t *testing.T, matches []Match) {
	t.Helper()

	byID := make(map[uuid.UUID]Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	fed := make(map[SlotRef]int)
	for _, m := range matches {
		for _, to := range []*SlotRef{m.WinnerAdvancesTo(), m.LoserAdvancesTo()} {
			if to == nil {
				continue
			}
			target, ok := byID[to.MatchID]
			require.True(t, ok, "match %d points at a missing match", m.Seq)
			assert.Contains(t, []int{1, 2}, to.Slot)
			assert.Greater(t, target.Seq, m.Seq, "pointers must go forward")
			fed[*to]++
		}
	}

	for ref, count := range fed {
		assert.Equal(t, 1, count, "slot %d of match %s fed more than once", ref.Slot, ref.MatchID)
	}

	for _, m := range matches {
		if m.IsBye {
			assert.True(t, m.Slot1ID != nil || m.Slot2ID != nil, "bye match %d has no entrant", m.Seq)
			assert.Nil(t, m.LoserAdvancesTo(), "bye match %d must not send a loser anywhere", m.Seq)
			continue
		}
		for slot := 1; slot <= 2; slot++ {
			if m.Occupant(slot) == nil {
				assert.Equal(t, 1, fed[SlotRef{MatchID: m.ID, Slot: slot}], "slot %d of match %d can never be filled", slot, m.Seq)
			}
		}
	}
}

// playOut decides every match in creation order, slot 1 always winning, and
// returns how often each entrant lost. A single pass must be enough.
func playOut(t *testing.T, matches []Match) (Graph, map[int64]int) {
	t.Helper()

	g := NewGraph(matches)
	order := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		order = append(order, m.ID)
	}
	sort.SliceStable(order, func(i, j int) bool { return g[order[i]].Seq < g[order[j]].Seq })

	losses := make(map[int64]int)
	for _, id := range order {
		m := g[id]
		if m.IsDecided() {
			continue
		}
		winner := m.Slot1ID
		if winner == nil {
			winner = m.Slot2ID
		}
		require.NotNil(t, winner, "match %d reached with no entrant", m.Seq)
		require.NoError(t, g.ReportWinner(id, *winner))
		if !m.IsBye {
			if *m.Slot1ID == *winner {
				losses[*m.Slot2ID]++
			} else {
				losses[*m.Slot1ID]++
			}
		}
	}

	for _, m := range g {
		require.True(t, m.IsDecided(), "match %d left undecided", m.Seq)
	}
	return g, losses
}
