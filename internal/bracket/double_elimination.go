package bracket

// doubleElimination builds the full padded bracket first so that winners and
// losers rounds line up by index, then lets resolveByes prune what byes make
// unreachable.
func (b *Builder) doubleElimination(g *graph, ids []int64) {
	winners := g.winnersRounds(g.firstRound(WinnersSide, padToBracket(ids), false))
	winnersFinal := winners[len(winners)-1][0]

	// Two entrants: no losers bracket, the grand final is the rematch.
	if len(winners) == 1 {
		grandFinal := g.newMatch(FinalsSide, 1, 1)
		advanceWinner(winnersFinal, grandFinal, 1)
		advanceLoser(winnersFinal, grandFinal, 2)
		g.resolveByes(b.autoByes)
		return
	}

	losers := g.losersRounds(winners)
	losersFinal := losers[len(losers)-1][0]

	grandFinal := g.newMatch(FinalsSide, 1, 1)
	advanceWinner(winnersFinal, grandFinal, 1)
	advanceWinner(losersFinal, grandFinal, 2)

	g.resolveByes(b.autoByes)
}

// losersRounds expects a full power of two winners bracket.
//
// Round one pairs the first round losers. Then for every later winners round
// a merge round takes the previous losers winner in slot 1 and the matching
// winners loser in slot 2. Whenever the losers side is twice as wide as the
// winners round it merges with, a reduction round halves it first.
func (g *graph) losersRounds(winners [][]*node) [][]*node {
	first := winners[0]
	round := make([]*node, 0, len(first)/2)
	for i := 0; i+1 < len(first); i += 2 {
		m := g.newMatch(LosersSide, 1, len(round)+1)
		advanceLoser(first[i], m, 1)
		advanceLoser(first[i+1], m, 2)
		round = append(round, m)
	}
	rounds := [][]*node{round}

	for r := 1; r < len(winners); r++ {
		prev := rounds[len(rounds)-1]

		if len(prev) > len(winners[r]) {
			reduced := make([]*node, 0, len(prev)/2)
			for i := 0; i+1 < len(prev); i += 2 {
				m := g.newMatch(LosersSide, len(rounds)+1, len(reduced)+1)
				advanceWinner(prev[i], m, 1)
				advanceWinner(prev[i+1], m, 2)
				reduced = append(reduced, m)
			}
			rounds = append(rounds, reduced)
			prev = reduced
		}

		merged := make([]*node, 0, len(winners[r]))
		for i, w := range winners[r] {
			m := g.newMatch(LosersSide, len(rounds)+1, i+1)
			advanceWinner(prev[i], m, 1)
			advanceLoser(w, m, 2)
			merged = append(merged, m)
		}
		rounds = append(rounds, merged)
	}
	return rounds
}
