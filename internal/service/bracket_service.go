package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/AdamBeresnev/op-brackets/internal/store"
	"github.com/AdamBeresnev/op-brackets/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BracketService struct {
	db       *sqlx.DB
	store    *store.TournamentStore
	builder  *bracket.Builder
	resolver EntrantResolver
}

func NewBracketService(db *sqlx.DB, store *store.TournamentStore, builder *bracket.Builder, resolver EntrantResolver) *BracketService {
	return &BracketService{db: db, store: store, builder: builder, resolver: resolver}
}

type GenerateResult struct {
	MatchIDs []uuid.UUID
	Count    int
}

// Generate builds and stores the bracket for a tournament in one transaction.
// An empty format falls back to the tournament's own. A tournament either
// ends up with a complete bracket or with no matches at all.
func (s *BracketService) Generate(ctx context.Context, tournamentID uuid.UUID, format bracket.Format, entrants []bracket.Entrant) (*GenerateResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = tournament.Format
	}

	existing, err := s.store.CountMatchesTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: %d matches", bracket.ErrBracketExists, existing)
	}

	matches, err := s.builder.Generate(tournamentID, tournament.ParticipantKind, entrants, format)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to create matches: %w", err)
	}

	patch := store.TournamentPatch{
		Status: utils.Ptr(bracket.TournamentStarted),
		Format: &format,
	}
	if err := s.store.UpdateTournamentTx(ctx, tx, tournamentID, patch); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}

	slog.Info("bracket generated", "tournament_id", tournamentID, "format", format, "entrants", len(entrants), "matches", len(matches))
	return &GenerateResult{MatchIDs: ids, Count: len(ids)}, nil
}

// GenerateFromRoster generates the bracket for the tournament's active roster.
func (s *BracketService) GenerateFromRoster(ctx context.Context, tournamentID uuid.UUID, format bracket.Format) (*GenerateResult, error) {
	entrants, err := s.resolver.Resolve(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, tournamentID, format, entrants)
}

// ListMatches returns the stored bracket in play order.
func (s *BracketService) ListMatches(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Match, error) {
	if _, err := s.store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []bracket.Match{}
	}
	return matches, nil
}
