package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/op-brackets/internal/bracket"
	"github.com/AdamBeresnev/op-brackets/internal/httputil"
	"github.com/AdamBeresnev/op-brackets/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type application struct {
	tournaments *service.TournamentService
	brackets    *service.BracketService
	matches     *service.MatchService
}

type createTournamentRequest struct {
	Name            string `json:"name"`
	ParticipantKind string `json:"participant_kind"`
	Format          string `json:"format"`
}

type registerEntrantRequest struct {
	EntrantID int64 `json:"entrant_id"`
}

type reportWinnerRequest struct {
	Winner int `json:"winner"`
}

type generateResponse struct {
	Created  int         `json:"created"`
	MatchIDs []uuid.UUID `json:"match_ids"`
}

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		id, err := app.tournaments.CreateTournament(r.Context(), service.TournamentInput{
			Name:            req.Name,
			ParticipantKind: bracket.ParticipantKind(req.ParticipantKind),
			Format:          bracket.Format(req.Format),
		})
		if err != nil {
			writeServiceError(w, "Failed to create tournament", err)
			return
		}

		httputil.WriteJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
	})

	r.Route("/tournaments/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, ok := uuidParam(w, r, "id")
			if !ok {
				return
			}

			tournament, err := app.tournaments.GetTournament(r.Context(), id)
			if err != nil {
				writeServiceError(w, "Failed to get tournament", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournament)
		})

		r.Post("/entrants", func(w http.ResponseWriter, r *http.Request) {
			id, ok := uuidParam(w, r, "id")
			if !ok {
				return
			}

			var req registerEntrantRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			if err := app.tournaments.RegisterEntrant(r.Context(), id, req.EntrantID); err != nil {
				writeServiceError(w, "Failed to register entrant", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Delete("/entrants/{entrantID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := uuidParam(w, r, "id")
			if !ok {
				return
			}
			entrantID, err := strconv.ParseInt(chi.URLParam(r, "entrantID"), 10, 64)
			if err != nil {
				httputil.BadRequest(w, "Invalid entrant ID", err)
				return
			}

			if err := app.tournaments.WithdrawEntrant(r.Context(), id, entrantID); err != nil {
				writeServiceError(w, "Failed to withdraw entrant", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/generate-matches", func(w http.ResponseWriter, r *http.Request) {
			id, ok := uuidParam(w, r, "id")
			if !ok {
				return
			}

			var format bracket.Format
			if raw := r.URL.Query().Get("format"); raw != "" {
				parsed, err := bracket.ParseFormat(raw)
				if err != nil {
					httputil.BadRequest(w, "Unknown format", err)
					return
				}
				format = parsed
			}

			result, err := app.brackets.GenerateFromRoster(r.Context(), id, format)
			if err != nil {
				writeServiceError(w, "Failed to generate matches", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, generateResponse{Created: result.Count, MatchIDs: result.MatchIDs})
		})

		r.Get("/matches", func(w http.ResponseWriter, r *http.Request) {
			id, ok := uuidParam(w, r, "id")
			if !ok {
				return
			}

			matches, err := app.brackets.ListMatches(r.Context(), id)
			if err != nil {
				writeServiceError(w, "Failed to list matches", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, matches)
		})
	})

	r.Get("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		match, err := app.matches.GetMatch(r.Context(), id)
		if err != nil {
			writeServiceError(w, "Failed to get match", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, match)
	})

	r.Put("/matches/{id}/winner", func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		var req reportWinnerRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		if req.Winner != 1 && req.Winner != 2 {
			httputil.BadRequest(w, "Winner must be 1 or 2", nil)
			return
		}

		match, err := app.matches.ReportWinner(r.Context(), id, req.Winner)
		if err != nil {
			writeServiceError(w, "Failed to report winner", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, match)
	})

	return r
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httputil.BadRequest(w, "Invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, bracket.ErrTournamentNotFound),
		errors.Is(err, bracket.ErrMatchNotFound),
		errors.Is(err, bracket.ErrEntrantNotRegistered):
		httputil.NotFound(w, err.Error(), err)
	case errors.Is(err, bracket.ErrBracketExists),
		errors.Is(err, bracket.ErrMatchAlreadyDecided),
		errors.Is(err, bracket.ErrMatchNotReady):
		httputil.Conflict(w, err.Error(), err)
	case errors.Is(err, bracket.ErrInsufficientParticipants),
		errors.Is(err, bracket.ErrUnknownFormat),
		errors.Is(err, bracket.ErrUnknownParticipantKind),
		errors.Is(err, bracket.ErrInvalidWinner),
		errors.Is(err, service.ErrInvalidInput):
		httputil.BadRequest(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}
