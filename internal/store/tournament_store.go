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

type TournamentStore struct {
	db *sqlx.DB
}

const (
	createTournamentQuery = `INSERT INTO tournaments (id, name, participant_kind, format, status)
        VALUES (:id, :name, :participant_kind, :format, :status)`
	getTournamentQuery = "SELECT * FROM tournaments WHERE id = ?"
	upsertEntrantQuery = `INSERT INTO entrants (tournament_id, kind, entrant_id, status)
        VALUES (:tournament_id, :kind, :entrant_id, :status)
        ON CONFLICT (tournament_id, kind, entrant_id) DO UPDATE SET status = excluded.status`
	setEntrantStatusQuery = `
        UPDATE entrants SET status = ?
        WHERE tournament_id = ? AND kind = ? AND entrant_id = ?
    `
	listActiveEntrantsQuery = `
        SELECT DISTINCT kind, entrant_id FROM entrants
        WHERE tournament_id = ? AND status = ?
        ORDER BY kind, entrant_id
    `
)

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) DB() *sqlx.DB {
	return s.db
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	_, err := tx.NamedExecContext(ctx, createTournamentQuery, tournament)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return getTournament(ctx, s.db, id)
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*bracket.Tournament, error) {
	return getTournament(ctx, tx, id)
}

func getTournament(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := sqlx.GetContext(ctx, q, &tournament, q.Rebind(getTournamentQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", bracket.ErrTournamentNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) UpdateTournamentTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, patch TournamentPatch) error {
	columns, args := patch.assignments()
	if len(columns) == 0 {
		return nil
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(updateQuery("tournaments", columns)), append(args, id)...)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, fmt.Errorf("%w: %s", bracket.ErrTournamentNotFound, id))
}

// RegisterEntrant adds an entrant to the roster, reactivating a withdrawn one.
func (s *TournamentStore) RegisterEntrant(ctx context.Context, registration *bracket.Registration) error {
	_, err := s.db.NamedExecContext(ctx, upsertEntrantQuery, registration)
	return err
}

func (s *TournamentStore) SetEntrantStatus(ctx context.Context, tournamentID uuid.UUID, entrant bracket.Entrant, status bracket.RegistrationStatus) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(setEntrantStatusQuery), status, tournamentID, entrant.Kind, entrant.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, fmt.Errorf("%w: %s %d", bracket.ErrEntrantNotRegistered, entrant.Kind, entrant.ID))
}

func (s *TournamentStore) ListActiveEntrants(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Entrant, error) {
	var entrants []bracket.Entrant
	err := s.db.SelectContext(ctx, &entrants, s.db.Rebind(listActiveEntrantsQuery), tournamentID, bracket.RegistrationActive)
	return entrants, err
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
