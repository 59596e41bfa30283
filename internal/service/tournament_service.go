package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/AdamBeresnev/op-brackets/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrInvalidInput marks caller mistakes that are not covered by a bracket error.
var ErrInvalidInput = errors.New("invalid input")

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore) *TournamentService {
	return &TournamentService{db: db, store: store}
}

type TournamentInput struct {
	Name            string
	ParticipantKind bracket.ParticipantKind
	Format          bracket.Format
}

func (s *TournamentService) CreateTournament(ctx context.Context, input TournamentInput) (uuid.UUID, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	kind, err := bracket.ParseParticipantKind(string(input.ParticipantKind))
	if err != nil {
		return uuid.Nil, err
	}
	format, err := bracket.ParseFormat(string(input.Format))
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	tournament := &bracket.Tournament{
		ID:              uuid.New(),
		Name:            name,
		ParticipantKind: kind,
		Format:          format,
		Status:          bracket.TournamentDraft,
	}
	if err := s.store.CreateTournament(ctx, tx, tournament); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	slog.Info("tournament created", "tournament_id", tournament.ID, "format", tournament.Format)
	return tournament.ID, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.store.GetTournament(ctx, id)
}

// RegisterEntrant adds an entrant of the tournament's participant kind to the
// roster. Registering a withdrawn entrant reactivates it.
func (s *TournamentService) RegisterEntrant(ctx context.Context, tournamentID uuid.UUID, entrantID int64) error {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	if entrantID <= 0 {
		return fmt.Errorf("%w: entrant id must be positive, got %d", ErrInvalidInput, entrantID)
	}

	err = s.store.RegisterEntrant(ctx, &bracket.Registration{
		TournamentID: tournamentID,
		Kind:         tournament.ParticipantKind,
		EntrantID:    entrantID,
		Status:       bracket.RegistrationActive,
	})
	if err != nil {
		return fmt.Errorf("failed to register entrant: %w", err)
	}

	slog.Info("entrant registered", "tournament_id", tournamentID, "entrant_id", entrantID)
	return nil
}

// WithdrawEntrant keeps the registration row but drops the entrant from the
// roster used for generation.
func (s *TournamentService) WithdrawEntrant(ctx context.Context, tournamentID uuid.UUID, entrantID int64) error {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	entrant := bracket.Entrant{Kind: tournament.ParticipantKind, ID: entrantID}
	if err := s.store.SetEntrantStatus(ctx, tournamentID, entrant, bracket.RegistrationWithdrawn); err != nil {
		return err
	}

	slog.Info("entrant withdrawn", "tournament_id", tournamentID, "entrant_id", entrantID)
	return nil
}
