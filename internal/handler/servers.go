package handler

import (
	"net/http"

	"github.com/blockhaven/playersync/internal/sync"
)

// HandleListServers returns the configured transfer destinations.
func HandleListServers(syncService sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: syncService.Destinations()})
	}
}
