package bracket

import (
	"github.com/AdamBeresnev/op-brackets/internal/utils"
	"github.com/google/uuid"
)

// node is a match under construction. Links are kept as node pointers until
// the graph is flattened so that byes can re-point them cheaply.
type node struct {
	match Match
	leaf  bool

	// closed[s] is set once nothing can ever arrive in slot s.
	closed  [3]bool
	feeders [3]*feed

	winnerTo   *node
	winnerSlot int
	loserTo    *node
	loserSlot  int

	dropped bool
}

type feed struct {
	from  *node
	loser bool
}

type graph struct {
	tournamentID uuid.UUID
	kind         ParticipantKind
	nodes        []*node
}

func (g *graph) newMatch(side BracketSide, round, order int) *node {
	n := &node{
		match: Match{
			ID:              uuid.New(),
			TournamentID:    g.tournamentID,
			ParticipantKind: g.kind,
			BracketSide:     side,
			RoundNumber:     round,
			MatchOrder:      order,
		},
	}
	g.nodes = append(g.nodes, n)
	return n
}

// newLeaf creates a match whose slots are filled straight from the entrant
// list. A nil slot is a bye.
func (g *graph) newLeaf(side BracketSide, round, order int, slot1, slot2 *int64) *node {
	n := g.newMatch(side, round, order)
	n.leaf = true
	n.match.Slot1ID = slot1
	n.match.Slot2ID = slot2
	n.closed[1] = slot1 == nil
	n.closed[2] = slot2 == nil
	return n
}

func advanceWinner(from, to *node, slot int) {
	from.winnerTo, from.winnerSlot = to, slot
	to.feeders[slot] = &feed{from: from}
}

func advanceLoser(from, to *node, slot int) {
	from.loserTo, from.loserSlot = to, slot
	to.feeders[slot] = &feed{from: from, loser: true}
}

func closeSlot(n *node, slot int) {
	if n == nil {
		return
	}
	n.closed[slot] = true
	n.feeders[slot] = nil
}

// matches flattens the surviving nodes into records in creation order.
func (g *graph) matches() []Match {
	out := make([]Match, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.dropped {
			continue
		}
		m := n.match
		if n.winnerTo != nil {
			m.WinnerNextMatchID = utils.Ptr(n.winnerTo.match.ID)
			m.WinnerNextSlot = utils.Ptr(n.winnerSlot)
		}
		if n.loserTo != nil {
			m.LoserNextMatchID = utils.Ptr(n.loserTo.match.ID)
			m.LoserNextSlot = utils.Ptr(n.loserSlot)
		}
		m.Seq = len(out) + 1
		out = append(out, m)
	}
	return out
}
