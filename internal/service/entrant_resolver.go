package service

import (
	"context"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/AdamBeresnev/op-brackets/internal/store"
	"github.com/google/uuid"
)

// EntrantResolver supplies the entrants a bracket is generated for.
type EntrantResolver interface {
	Resolve(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Entrant, error)
}

// StoreEntrantResolver reads the active roster of a tournament.
type StoreEntrantResolver struct {
	store *store.TournamentStore
}

func NewStoreEntrantResolver(store *store.TournamentStore) *StoreEntrantResolver {
	return &StoreEntrantResolver{store: store}
}

func (r *StoreEntrantResolver) Resolve(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Entrant, error) {
	if _, err := r.store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return r.store.ListActiveEntrants(ctx, tournamentID)
}
