package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/logger"
	"github.com/blockhaven/playersync/internal/repository"
)

// playerID extracts and validates the player id URL parameter.
func playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "playerId")
	if _, err := uuid.Parse(id); err != nil {
		logger.FromContext(r.Context()).Warn("Invalid player id in request", "player_id", id)
		respondError(w, http.StatusBadRequest, "invalid player id")
		return "", false
	}
	return id, true
}

// HandleGetProfile returns the stored profile for a player.
func HandleGetProfile(repo repository.Player) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := playerID(w, r)
		if !ok {
			return
		}

		profile, err := repo.GetProfile(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				respondError(w, http.StatusNotFound, domain.ErrMsgProfileNotFound)
				return
			}
			log.Error("Failed to get profile", "player_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to get profile")
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: profile})
	}
}

// HandleGetVitals returns the shared vitals snapshot for a player.
func HandleGetVitals(repo repository.Player) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := playerID(w, r)
		if !ok {
			return
		}

		vitals, err := repo.GetVitals(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrVitalsNotFound) {
				respondError(w, http.StatusNotFound, domain.ErrMsgVitalsNotFound)
				return
			}
			log.Error("Failed to get vitals", "player_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to get vitals")
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: vitals})
	}
}

// HandleGetSlots returns a player's stored slot rows, empty rows included,
// ordered by slot index.
func HandleGetSlots(repo repository.Player) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := playerID(w, r)
		if !ok {
			return
		}

		slots, err := repo.GetSlots(r.Context(), id)
		if err != nil {
			log.Error("Failed to get slots", "player_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to get slots")
			return
		}
		if slots == nil {
			slots = []domain.SlotRecord{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: slots})
	}
}
