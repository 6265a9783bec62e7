package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockhaven/playersync/internal/codec"
	"github.com/blockhaven/playersync/internal/config"
	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/handler"
	"github.com/blockhaven/playersync/internal/session"
	"github.com/blockhaven/playersync/internal/sync"
)

const testPlayerID = "9b2a6f4e-1c3d-4e5f-8a7b-6c5d4e3f2a1b"

func newTestRouter(repo *sync.FakeRepository, destinations *config.ServerList) *chi.Mux {
	if destinations == nil {
		destinations = &config.ServerList{}
	}
	svc := sync.NewService(repo, codec.New(), session.NewTracker(), &sync.FakeNotifier{}, destinations, "survival-1")

	r := chi.NewRouter()
	r.Get("/api/v1/servers", handler.HandleListServers(svc))
	r.Route("/api/v1/player/{playerId}", func(r chi.Router) {
		r.Get("/profile", handler.HandleGetProfile(repo))
		r.Get("/vitals", handler.HandleGetVitals(repo))
		r.Get("/slots", handler.HandleGetSlots(repo))
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetProfile(t *testing.T) {
	repo := sync.NewFakeRepository()
	repo.SeedProfile(&domain.PlayerProfile{
		PlayerID:         testPlayerID,
		DisplayName:      "Steve",
		TotalPlaySeconds: 3600,
		IsOnline:         true,
	})
	router := newTestRouter(repo, nil)

	rec := doRequest(t, router, "/api/v1/player/"+testPlayerID+"/profile")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.PlayerProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Steve", resp.Data.DisplayName)
	assert.Equal(t, int64(3600), resp.Data.TotalPlaySeconds)
	assert.True(t, resp.Data.IsOnline)
}

func TestHandleGetProfile_NotFound(t *testing.T) {
	router := newTestRouter(sync.NewFakeRepository(), nil)

	rec := doRequest(t, router, "/api/v1/player/"+testPlayerID+"/profile")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetProfile_InvalidID(t *testing.T) {
	router := newTestRouter(sync.NewFakeRepository(), nil)

	rec := doRequest(t, router, "/api/v1/player/not-a-uuid/profile")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetVitals(t *testing.T) {
	repo := sync.NewFakeRepository()
	require.NoError(t, repo.UpsertVitals(context.Background(), &domain.VitalsRecord{
		PlayerID:         testPlayerID,
		OriginServerName: "survival-2",
		Health:           18,
		MaxHealth:        20,
	}))
	router := newTestRouter(repo, nil)

	rec := doRequest(t, router, "/api/v1/player/"+testPlayerID+"/vitals")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.VitalsRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 18, resp.Data.Health)
	assert.Equal(t, "survival-2", resp.Data.OriginServerName)
}

func TestHandleGetVitals_NotFound(t *testing.T) {
	router := newTestRouter(sync.NewFakeRepository(), nil)

	rec := doRequest(t, router, "/api/v1/player/"+testPlayerID+"/vitals")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetSlots(t *testing.T) {
	repo := sync.NewFakeRepository()
	_, err := repo.ReplaceSlots(context.Background(), testPlayerID, "survival-1", []domain.SlotRecord{
		{SlotIndex: 0, ItemTypeID: "minecraft:diamond_sword", StackCount: 1},
		{SlotIndex: 1},
	})
	require.NoError(t, err)
	router := newTestRouter(repo, nil)

	rec := doRequest(t, router, "/api/v1/player/"+testPlayerID+"/slots")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.SlotRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "minecraft:diamond_sword", resp.Data[0].ItemTypeID)
	assert.True(t, resp.Data[1].IsEmpty())
}

func TestHandleGetSlots_NoRowsYieldsEmptyArray(t *testing.T) {
	router := newTestRouter(sync.NewFakeRepository(), nil)

	rec := doRequest(t, router, "/api/v1/player/"+testPlayerID+"/slots")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": []}`, rec.Body.String())
}

func TestHandleListServers(t *testing.T) {
	destinations := &config.ServerList{Servers: []config.Destination{
		{Name: "lobby", Address: "lobby.internal", Port: 19132},
	}}
	router := newTestRouter(sync.NewFakeRepository(), destinations)

	rec := doRequest(t, router, "/api/v1/servers")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []config.Destination `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "lobby", resp.Data[0].Name)
}
