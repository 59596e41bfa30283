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

type MatchService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore) *MatchService {
	return &MatchService{db: db, store: store}
}

func (s *MatchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*bracket.Match, error) {
	return s.store.GetMatch(ctx, matchID)
}

// ReportWinner records the occupant of slot as the winner and moves the
// winner and the loser on to their next matches. Reporting the same winner
// again changes nothing.
func (s *MatchService) ReportWinner(ctx context.Context, matchID uuid.UUID, slot int) (*bracket.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	if slot != 1 && slot != 2 {
		return nil, fmt.Errorf("%w: slot %d", bracket.ErrInvalidWinner, slot)
	}
	winner := match.Occupant(slot)
	if winner == nil {
		return nil, fmt.Errorf("%w: slot %d of match %s is empty", bracket.ErrInvalidWinner, slot, matchID)
	}

	if match.IsDecided() {
		if *match.WinnerID == *winner {
			return match, nil
		}
		return nil, fmt.Errorf("%w: match %s was won by %d", bracket.ErrMatchAlreadyDecided, matchID, *match.WinnerID)
	}

	writes, err := bracket.Decide(match, *winner)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateMatchTx(ctx, tx, match.ID, store.MatchPatch{WinnerID: match.WinnerID}); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	for _, w := range writes {
		if err := s.store.UpdateMatchTx(ctx, tx, w.Target.MatchID, store.SlotPatch(w.Target.Slot, w.EntrantID)); err != nil {
			return nil, fmt.Errorf("failed to advance entrant %d: %w", w.EntrantID, err)
		}
	}

	completed, err := s.isCompleted(ctx, tx, match)
	if err != nil {
		return nil, err
	}
	if completed {
		patch := store.TournamentPatch{Status: utils.Ptr(bracket.TournamentCompleted)}
		if err := s.store.UpdateTournamentTx(ctx, tx, match.TournamentID, patch); err != nil {
			return nil, fmt.Errorf("failed to update tournament status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	slog.Info("match decided", "match_id", match.ID, "tournament_id", match.TournamentID, "winner_id", *winner, "advanced", len(writes))
	if completed {
		slog.Info("tournament completed", "tournament_id", match.TournamentID, "winner_id", *winner)
	}
	return match, nil
}

// An elimination bracket is over once its terminal match is decided, a round
// robin once nothing is left to play.
func (s *MatchService) isCompleted(ctx context.Context, tx *sqlx.Tx, decided *bracket.Match) (bool, error) {
	tournament, err := s.store.GetTournamentTx(ctx, tx, decided.TournamentID)
	if err != nil {
		return false, err
	}
	if tournament.Format.IsElimination() {
		return decided.IsTerminal(), nil
	}

	undecided, err := s.store.CountUndecidedMatchesTx(ctx, tx, decided.TournamentID)
	if err != nil {
		return false, fmt.Errorf("failed to count undecided matches: %w", err)
	}
	return undecided == 0, nil
}
