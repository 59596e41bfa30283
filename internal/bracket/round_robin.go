package bracket

// roundRobin pairs every entrant with every other one exactly once. The
// shuffle upstream only changes the order matches are created in.
func (b *Builder) roundRobin(g *graph, ids []int64) {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			p1, p2 := ids[i], ids[j]
			g.newLeaf(GroupSide, 1, len(g.nodes)+1, &p1, &p2)
		}
	}
}
