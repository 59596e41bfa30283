package bracket

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

type Option func(*Builder)

// WithRand makes seeding reproducible. The builder serialises access to r.
func WithRand(r *rand.Rand) Option {
	return func(b *Builder) {
		b.rng = r
	}
}

// WithByeAutoAdvance controls whether first round byes are decided at
// generation time. When off, the lone entrant has to be reported as the
// winner like any other match.
func WithByeAutoAdvance(on bool) Option {
	return func(b *Builder) {
		b.autoByes = on
	}
}

// Builder turns an entrant list into a linked set of matches. It never
// touches storage; the caller persists the result in one unit of work.
type Builder struct {
	mu       sync.Mutex
	rng      *rand.Rand
	autoByes bool
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{autoByes: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Generate builds the bracket for one tournament. Entrants of another kind
// than kind are ignored. Matches come back in creation order, which is also a
// valid order to play them in.
func (b *Builder) Generate(tournamentID uuid.UUID, kind ParticipantKind, entrants []Entrant, format Format) ([]Match, error) {
	var build func(g *graph, ids []int64)
	switch format {
	case SingleElimination:
		build = b.singleElimination
	case DoubleElimination:
		build = b.doubleElimination
	case RoundRobin:
		build = b.roundRobin
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	ids := eligible(entrants, kind)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: found %d %s entrants", ErrInsufficientParticipants, len(ids), kind)
	}
	b.shuffle(ids)

	g := &graph{tournamentID: tournamentID, kind: kind}
	build(g, ids)
	return g.matches(), nil
}

func eligible(entrants []Entrant, kind ParticipantKind) []int64 {
	ids := make([]int64, 0, len(entrants))
	for _, e := range entrants {
		if e.Kind == kind {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (b *Builder) shuffle(ids []int64) {
	swap := func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }
	if b.rng == nil {
		rand.Shuffle(len(ids), swap)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rng.Shuffle(len(ids), swap)
}

// Gets the nearest power of 2 while rounding up, so with input 5 it returns 8 and so on
func calcBracketSize(count int) int {
	if count <= 0 {
		return 0
	}

	// Log2 -> Ceil -> 2^^log2 to round up
	log2 := math.Ceil(math.Log2(float64(count)))
	return int(math.Pow(2, log2))
}

// padToBracket returns the first round slots, byes (nil) at the tail.
func padToBracket(ids []int64) []*int64 {
	slots := make([]*int64, calcBracketSize(len(ids)))
	for i := range ids {
		id := ids[i]
		slots[i] = &id
	}
	return slots
}
