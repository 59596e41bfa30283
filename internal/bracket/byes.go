package bracket

// resolveByes walks the graph in creation order. Every feeder is created
// before the match it feeds, so by the time a node is visited its slots are
// final: either something will arrive or the slot is closed for good.
//
//   - both slots closed: the match can never be played and is dropped
//   - first round pairing against a bye: kept as a bye match, optionally
//     decided on the spot
//   - later match with one closed slot: spliced out, its live feeder now
//     advances straight to where this match's winner would have gone
func (g *graph) resolveByes(autoAdvance bool) {
	for _, n := range g.nodes {
		open1, open2 := !n.closed[1], !n.closed[2]
		if open1 && open2 {
			continue
		}

		if !open1 && !open2 {
			n.dropped = true
			closeSlot(n.winnerTo, n.winnerSlot)
			closeSlot(n.loserTo, n.loserSlot)
			continue
		}

		live := 1
		if !open1 {
			live = 2
		}
		if n.leaf || n.winnerTo == nil {
			walkover(n, live, autoAdvance)
		} else {
			splice(n, live)
		}
	}
}

func walkover(n *node, live int, autoAdvance bool) {
	n.match.IsBye = true

	// Nobody loses a bye.
	closeSlot(n.loserTo, n.loserSlot)
	n.loserTo, n.loserSlot = nil, 0

	if !autoAdvance {
		return
	}
	entrant := n.match.Occupant(live)
	if entrant == nil {
		return
	}
	id := *entrant
	n.match.WinnerID = &id
	if n.winnerTo != nil {
		n.winnerTo.match.SetOccupant(n.winnerSlot, id)
	}
}

func splice(n *node, live int) {
	n.dropped = true
	closeSlot(n.loserTo, n.loserSlot)

	if entrant := n.match.Occupant(live); entrant != nil {
		n.winnerTo.match.SetOccupant(n.winnerSlot, *entrant)
	}

	f := n.feeders[live]
	if f == nil {
		return
	}
	if f.loser {
		f.from.loserTo, f.from.loserSlot = n.winnerTo, n.winnerSlot
	} else {
		f.from.winnerTo, f.from.winnerSlot = n.winnerTo, n.winnerSlot
	}
	n.winnerTo.feeders[n.winnerSlot] = f
}
