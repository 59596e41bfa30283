package service

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/AdamBeresnev/op-brackets/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

type services struct {
	store       *store.TournamentStore
	tournaments *TournamentService
	brackets    *BracketService
	matches     *MatchService
}

func newServices(t *testing.T, opts ...bracket.Option) *services {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	tournamentStore := store.NewTournamentStore(db)
	builder := bracket.NewBuilder(append([]bracket.Option{bracket.WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)...)

	return &services{
		store:       tournamentStore,
		tournaments: NewTournamentService(db, tournamentStore),
		brackets:    NewBracketService(db, tournamentStore, builder, NewStoreEntrantResolver(tournamentStore)),
		matches:     NewMatchService(db, tournamentStore),
	}
}

func (s *services) createTournament(t *testing.T, format bracket.Format) uuid.UUID {
	t.Helper()

	id, err := s.tournaments.CreateTournament(context.Background(), TournamentInput{
		Name:            "Spring Cup",
		ParticipantKind: bracket.TeamKind,
		Format:          format,
	})
	require.NoError(t, err)
	return id
}

func teams(n int) []bracket.Entrant {
	entrants := make([]bracket.Entrant, 0, n)
	for i := 1; i <= n; i++ {
		entrants = append(entrants, bracket.Entrant{Kind: bracket.TeamKind, ID: int64(i * 10)})
	}
	return entrants
}

// playAll reports slot 1 on the first playable match until none is left.
func (s *services) playAll(t *testing.T, tournamentID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	for {
		matches, err := s.brackets.ListMatches(ctx, tournamentID)
		require.NoError(t, err)

		var next *bracket.Match
		for i := range matches {
			m := &matches[i]
			if !m.IsDecided() && m.Slot1ID != nil && (m.Slot2ID != nil || m.IsBye) {
				next = m
				break
			}
		}
		if next == nil {
			return
		}

		_, err = s.matches.ReportWinner(ctx, next.ID, 1)
		require.NoError(t, err)
	}
}
