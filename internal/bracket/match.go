package bracket

import (
	"time"

	"github.com/google/uuid"
)

type BracketSide string

const (
	WinnersSide BracketSide = "winners"
	LosersSide  BracketSide = "losers"
	FinalsSide  BracketSide = "finals"
	GroupSide   BracketSide = "group"
)

// SlotRef points at one side of a match.
type SlotRef struct {
	MatchID uuid.UUID `json:"match_id"`
	Slot    int       `json:"slot"`
}

type Match struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TournamentID    uuid.UUID       `db:"tournament_id" json:"tournament_id"`
	ParticipantKind ParticipantKind `db:"participant_kind" json:"participant_kind"`

	// Position in the tournament for reconstructing the view
	Seq         int         `db:"seq" json:"seq"`
	BracketSide BracketSide `db:"bracket_side" json:"bracket_side"`
	RoundNumber int         `db:"round_number" json:"round_number"`
	MatchOrder  int         `db:"match_order" json:"match_order"`

	Slot1ID  *int64 `db:"slot_1_id" json:"slot_1_id"`
	Slot2ID  *int64 `db:"slot_2_id" json:"slot_2_id"`
	WinnerID *int64 `db:"winner_id" json:"winner_id"`

	WinnerNextMatchID *uuid.UUID `db:"winner_next_match_id" json:"winner_next_match_id"`
	WinnerNextSlot    *int       `db:"winner_next_slot" json:"winner_next_slot"`

	LoserNextMatchID *uuid.UUID `db:"loser_next_match_id" json:"loser_next_match_id"`
	LoserNextSlot    *int       `db:"loser_next_slot" json:"loser_next_slot"`

	IsBye bool `db:"is_bye" json:"is_bye"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (m *Match) Occupant(slot int) *int64 {
	switch slot {
	case 1:
		return m.Slot1ID
	case 2:
		return m.Slot2ID
	}
	return nil
}

func (m *Match) SetOccupant(slot int, entrantID int64) {
	switch slot {
	case 1:
		m.Slot1ID = &entrantID
	case 2:
		m.Slot2ID = &entrantID
	}
}

func (m *Match) IsDecided() bool {
	return m.WinnerID != nil
}

func (m *Match) IsTerminal() bool {
	return m.WinnerNextMatchID == nil
}

func (m *Match) WinnerAdvancesTo() *SlotRef {
	if m.WinnerNextMatchID == nil || m.WinnerNextSlot == nil {
		return nil
	}
	return &SlotRef{MatchID: *m.WinnerNextMatchID, Slot: *m.WinnerNextSlot}
}

func (m *Match) LoserAdvancesTo() *SlotRef {
	if m.LoserNextMatchID == nil || m.LoserNextSlot == nil {
		return nil
	}
	return &SlotRef{MatchID: *m.LoserNextMatchID, Slot: *m.LoserNextSlot}
}

// WinnerSlot returns 1 or 2 for a decided match, 0 otherwise.
func (m *Match) WinnerSlot() int {
	if m.WinnerID == nil {
		return 0
	}
	if m.Slot1ID != nil && *m.Slot1ID == *m.WinnerID {
		return 1
	}
	if m.Slot2ID != nil && *m.Slot2ID == *m.WinnerID {
		return 2
	}
	return 0
}
