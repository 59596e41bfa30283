package bracket

func (b *Builder) singleElimination(g *graph, ids []int64) {
	first := g.firstRound(WinnersSide, padToBracket(ids), true)
	g.winnersRounds(first)
	g.resolveByes(b.autoByes)
}

// firstRound pairs consecutive slots. With skipDoubleByes a pairing of two
// byes is not created at all.
func (g *graph) firstRound(side BracketSide, slots []*int64, skipDoubleByes bool) []*node {
	round := make([]*node, 0, len(slots)/2)
	for i := 0; i+1 < len(slots); i += 2 {
		if skipDoubleByes && slots[i] == nil && slots[i+1] == nil {
			continue
		}
		round = append(round, g.newLeaf(side, 1, len(round)+1, slots[i], slots[i+1]))
	}
	return round
}

// winnersRounds pairs each round into parents until one match is left. An odd
// match out is carried into the next round unpaired. All rounds are returned,
// the first one included.
func (g *graph) winnersRounds(first []*node) [][]*node {
	rounds := [][]*node{first}
	round := first
	for r := 2; len(round) > 1; r++ {
		next := make([]*node, 0, (len(round)+1)/2)
		for i := 0; i < len(round); i += 2 {
			if i+1 == len(round) {
				next = append(next, round[i])
				break
			}
			parent := g.newMatch(WinnersSide, r, len(next)+1)
			advanceWinner(round[i], parent, 1)
			advanceWinner(round[i+1], parent, 2)
			next = append(next, parent)
		}
		rounds = append(rounds, next)
		round = next
	}
	return rounds
}
