package store

import (
	"strings"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
)

// MatchPatch lists the match columns that may change after generation. Nil
// fields are left alone.
type MatchPatch struct {
	Slot1ID  *int64
	Slot2ID  *int64
	WinnerID *int64
}

// SlotPatch writes entrantID into slot 1 or 2.
func SlotPatch(slot int, entrantID int64) MatchPatch {
	if slot == 1 {
		return MatchPatch{Slot1ID: &entrantID}
	}
	return MatchPatch{Slot2ID: &entrantID}
}

func (p MatchPatch) assignments() ([]string, []any) {
	var columns []string
	var args []any
	if p.Slot1ID != nil {
		columns = append(columns, "slot_1_id")
		args = append(args, *p.Slot1ID)
	}
	if p.Slot2ID != nil {
		columns = append(columns, "slot_2_id")
		args = append(args, *p.Slot2ID)
	}
	if p.WinnerID != nil {
		columns = append(columns, "winner_id")
		args = append(args, *p.WinnerID)
	}
	return columns, args
}

type TournamentPatch struct {
	Status *bracket.TournamentStatus
	Format *bracket.Format
}

func (p TournamentPatch) assignments() ([]string, []any) {
	var columns []string
	var args []any
	if p.Status != nil {
		columns = append(columns, "status")
		args = append(args, *p.Status)
	}
	if p.Format != nil {
		columns = append(columns, "format")
		args = append(args, *p.Format)
	}
	return columns, args
}

// updateQuery builds "UPDATE table SET a = ?, b = ? WHERE id = ?". Column
// names only ever come from the patch types above.
func updateQuery(table string, columns []string) string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteString(" = ?")
	}
	b.WriteString(" WHERE id = ?")
	return b.String()
}
