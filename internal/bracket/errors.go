package bracket

import "errors"

var (
	ErrInsufficientParticipants = errors.New("at least two participants are required")
	ErrUnknownFormat            = errors.New("unknown bracket format")
	ErrUnknownParticipantKind   = errors.New("unknown participant kind")

	ErrInvalidWinner       = errors.New("winner is not part of this match")
	ErrMatchNotReady       = errors.New("match is still waiting for an opponent")
	ErrMatchAlreadyDecided = errors.New("match already has a different winner")

	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrBracketExists      = errors.New("bracket already generated for this tournament")

	ErrEntrantNotRegistered = errors.New("entrant is not registered for this tournament")
)
