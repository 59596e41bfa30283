package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	id := s.createTournament(t, bracket.SingleElimination)

	result, err := s.brackets.Generate(ctx, id, "", teams(5))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Count)
	assert.Len(t, result.MatchIDs, 5)

	matches, err := s.brackets.ListMatches(ctx, id)
	require.NoError(t, err)
	require.Len(t, matches, 5)
	for i, m := range matches {
		assert.Equal(t, result.MatchIDs[i], m.ID)
		assert.Equal(t, i+1, m.Seq)
		assert.Equal(t, id, m.TournamentID)
	}

	tournament, err := s.tournaments.GetTournament(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, bracket.TournamentStarted, tournament.Status)

	_, err = s.brackets.Generate(ctx, id, "", teams(5))
	assert.ErrorIs(t, err, bracket.ErrBracketExists)

	matches, err = s.brackets.ListMatches(ctx, id)
	require.NoError(t, err)
	assert.Len(t, matches, 5)
}

func TestGenerate_OverridesFormat(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	id := s.createTournament(t, bracket.SingleElimination)

	result, err := s.brackets.Generate(ctx, id, bracket.RoundRobin, teams(4))
	require.NoError(t, err)
	assert.Equal(t, 6, result.Count)

	tournament, err := s.tournaments.GetTournament(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, bracket.RoundRobin, tournament.Format)
}

func TestGenerate_FailureLeavesNoMatches(t *testing.T) {
	testCases := []struct {
		name     string
		format   bracket.Format
		entrants []bracket.Entrant
		wantErr  error
	}{
		{"Single entrant", bracket.SingleElimination, teams(1), bracket.ErrInsufficientParticipants},
		{"Wrong kind only", bracket.SingleElimination, []bracket.Entrant{{Kind: bracket.IndividualKind, ID: 1}, {Kind: bracket.IndividualKind, ID: 2}}, bracket.ErrInsufficientParticipants},
		{"Unknown format", "swiss", teams(4), bracket.ErrUnknownFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newServices(t)
			ctx := context.Background()
			id := s.createTournament(t, bracket.SingleElimination)

			_, err := s.brackets.Generate(ctx, id, tc.format, tc.entrants)
			assert.ErrorIs(t, err, tc.wantErr)

			matches, err := s.brackets.ListMatches(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, matches)

			tournament, err := s.tournaments.GetTournament(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, bracket.TournamentDraft, tournament.Status)
			assert.Equal(t, bracket.SingleElimination, tournament.Format)
		})
	}

	s := newServices(t)
	_, err := s.brackets.Generate(context.Background(), uuid.New(), bracket.SingleElimination, teams(4))
	assert.ErrorIs(t, err, bracket.ErrTournamentNotFound)
	_, err = s.brackets.ListMatches(context.Background(), uuid.New())
	assert.ErrorIs(t, err, bracket.ErrTournamentNotFound)
}

func TestGenerateFromRoster(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	id := s.createTournament(t, bracket.DoubleElimination)

	for _, entrantID := range []int64{1, 2, 3, 4} {
		require.NoError(t, s.tournaments.RegisterEntrant(ctx, id, entrantID))
	}
	require.NoError(t, s.tournaments.WithdrawEntrant(ctx, id, 3))

	result, err := s.brackets.GenerateFromRoster(ctx, id, "")
	require.NoError(t, err)

	matches, err := s.brackets.ListMatches(ctx, id)
	require.NoError(t, err)
	assert.Len(t, matches, result.Count)

	playable := 0
	for _, m := range matches {
		for _, occupant := range []*int64{m.Slot1ID, m.Slot2ID} {
			if occupant != nil {
				assert.NotEqual(t, int64(3), *occupant)
			}
		}
		if !m.IsBye {
			playable++
		}
	}
	// Every entrant but the champion loses twice, the champion at most once.
	assert.Equal(t, 2*3-2, playable)
	assert.Equal(t, bracket.FinalsSide, matches[len(matches)-1].BracketSide)

	_, err = s.brackets.GenerateFromRoster(ctx, uuid.New(), "")
	assert.ErrorIs(t, err, bracket.ErrTournamentNotFound)
}
