package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Keeps a multi-row insert well under SQLite's bound parameter limit.
const matchInsertBatch = 500

const (
	createMatchesQuery = `INSERT INTO matches (id, tournament_id, participant_kind, seq, bracket_side, round_number, match_order,
            slot_1_id, slot_2_id, winner_id, winner_next_match_id, winner_next_slot, loser_next_match_id, loser_next_slot, is_bye)
        VALUES (:id, :tournament_id, :participant_kind, :seq, :bracket_side, :round_number, :match_order,
            :slot_1_id, :slot_2_id, :winner_id, :winner_next_match_id, :winner_next_slot, :loser_next_match_id, :loser_next_slot, :is_bye)`
	getMatchQuery       = "SELECT * FROM matches WHERE id = ?"
	getMatchesQuery     = "SELECT * FROM matches WHERE tournament_id = ? ORDER BY seq ASC"
	countMatchesQuery   = "SELECT COUNT(*) FROM matches WHERE tournament_id = ?"
	countUndecidedQuery = "SELECT COUNT(*) FROM matches WHERE tournament_id = ? AND winner_id IS NULL"
)

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []bracket.Match) error {
	for start := 0; start < len(matches); start += matchInsertBatch {
		end := min(start+matchInsertBatch, len(matches))
		if _, err := tx.NamedExecContext(ctx, createMatchesQuery, matches[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *TournamentStore) GetMatch(ctx context.Context, id uuid.UUID) (*bracket.Match, error) {
	return getMatch(ctx, s.db, id)
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*bracket.Match, error) {
	return getMatch(ctx, tx, id)
}

func getMatch(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*bracket.Match, error) {
	var match bracket.Match
	err := sqlx.GetContext(ctx, q, &match, q.Rebind(getMatchQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", bracket.ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Match, error) {
	var matches []bracket.Match
	err := s.db.SelectContext(ctx, &matches, s.db.Rebind(getMatchesQuery), tournamentID)
	return matches, err
}

func (s *TournamentStore) CountMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, tx.Rebind(countMatchesQuery), tournamentID)
	return count, err
}

func (s *TournamentStore) CountUndecidedMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, tx.Rebind(countUndecidedQuery), tournamentID)
	return count, err
}

func (s *TournamentStore) UpdateMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, patch MatchPatch) error {
	columns, args := patch.assignments()
	if len(columns) == 0 {
		return nil
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(updateQuery("matches", columns)), append(args, id)...)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, fmt.Errorf("%w: %s", bracket.ErrMatchNotFound, id))
}
