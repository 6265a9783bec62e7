package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockhaven/playersync/internal/codec"
	"github.com/blockhaven/playersync/internal/config"
	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
	"github.com/blockhaven/playersync/internal/session"
)

const (
	testPlayerID = "9b2a6f4e-1c3d-4e5f-8a7b-6c5d4e3f2a1b"
	testServer   = "survival-1"
)

// testClock is a controllable time source for session math.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(repo *FakeRepository, notifier *FakeNotifier, destinations *config.ServerList) (*service, *testClock) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	if destinations == nil {
		destinations = &config.ServerList{}
	}
	svc := &service{
		repo:         repo,
		codec:        codec.New(),
		sessions:     session.NewTracker(),
		notifier:     notifier,
		destinations: destinations,
		serverName:   testServer,
		now:          clock.Now,
	}
	return svc, clock
}

func TestHandleJoin_RejectsInvalidPlayerID(t *testing.T) {
	svc, _ := newTestService(NewFakeRepository(), &FakeNotifier{}, nil)

	err := svc.HandleJoin(context.Background(), NewFakePlayer("not-a-uuid", "Steve"))
	assert.Error(t, err)
}

func TestHandleJoin_BootstrapsFirstContact(t *testing.T) {
	repo := NewFakeRepository()
	svc, _ := newTestService(repo, &FakeNotifier{}, nil)

	player := NewFakePlayer(testPlayerID, "Steve")
	player.Vitals[live.VitalHealth] = live.Vital{Current: 14, Max: 20}
	player.Vitals[live.VitalExperience] = live.Vital{Current: 0.45, Max: 12}
	player.Pos = live.Position{X: 100, Y: 64, Z: -30, Dimension: domain.DimensionNether}
	player.Inventory[0] = &live.ItemStack{TypeID: "minecraft:diamond_sword", Count: 1}
	player.Equipment[live.EquipmentHead] = &live.ItemStack{TypeID: "minecraft:iron_helmet", Count: 1}

	require.NoError(t, svc.HandleJoin(context.Background(), player))

	// The store now mirrors the live player.
	vitals, err := repo.GetVitals(context.Background(), testPlayerID)
	require.NoError(t, err)
	assert.Equal(t, 14, vitals.Health)
	assert.Equal(t, 20, vitals.MaxHealth)
	assert.Equal(t, 12, vitals.ExperienceLevel)
	assert.Equal(t, 45, vitals.ExperienceProgressHundredths)
	assert.Equal(t, testServer, vitals.OriginServerName)
	assert.Equal(t, domain.DimensionNether, vitals.Dimension)

	slots, err := repo.GetSlots(context.Background(), testPlayerID)
	require.NoError(t, err)
	assert.Len(t, slots, domain.TotalSlots)

	byIndex := make(map[int]domain.SlotRecord, len(slots))
	for _, s := range slots {
		byIndex[s.SlotIndex] = s
	}
	assert.Equal(t, "minecraft:diamond_sword", byIndex[0].ItemTypeID)
	assert.Equal(t, "minecraft:iron_helmet", byIndex[domain.SlotHead].ItemTypeID)
	assert.True(t, byIndex[1].IsEmpty())

	// Bootstrap leaves the live player alone.
	assert.Zero(t, player.ResyncHits)
	assert.Equal(t, live.Vital{Current: 14, Max: 20}, player.Vitals[live.VitalHealth])

	profile, ok := repo.StoredProfile(testPlayerID)
	require.True(t, ok)
	assert.True(t, profile.IsOnline)
	assert.Equal(t, "Steve", profile.DisplayName)
}

func TestHandleJoin_LoadOverwritesLiveState(t *testing.T) {
	repo := NewFakeRepository()
	svc, _ := newTestService(repo, &FakeNotifier{}, nil)

	repo.SeedProfile(&domain.PlayerProfile{PlayerID: testPlayerID, DisplayName: "Steve"})
	require.NoError(t, repo.UpsertVitals(context.Background(), &domain.VitalsRecord{
		PlayerID:                     testPlayerID,
		OriginServerName:             "survival-2",
		Health:                       6,
		MaxHealth:                    20,
		FoodLevel:                    11,
		FoodSaturation:               2.5,
		ExperienceLevel:              30,
		ExperienceProgressHundredths: 75,
		GameMode:                     domain.GameModeCreative,
	}))
	stored := []domain.SlotRecord{
		{SlotIndex: 3, ItemTypeID: "minecraft:bread", StackCount: 7},
		{SlotIndex: domain.SlotTorso, ItemTypeID: "minecraft:netherite_chestplate", StackCount: 1},
	}
	_, err := repo.ReplaceSlots(context.Background(), testPlayerID, "survival-2", stored)
	require.NoError(t, err)

	player := NewFakePlayer(testPlayerID, "Steve")
	// Local leftovers that must not survive the load.
	player.Inventory[0] = &live.ItemStack{TypeID: "minecraft:dirt", Count: 64}
	player.Equipment[live.EquipmentFeet] = &live.ItemStack{TypeID: "minecraft:leather_boots", Count: 1}

	require.NoError(t, svc.HandleJoin(context.Background(), player))

	assert.Equal(t, live.Vital{Current: 6, Max: 20}, player.Vitals[live.VitalHealth])
	assert.Equal(t, float64(11), player.Vitals[live.VitalHunger].Current)
	assert.Equal(t, live.Vital{Current: 0.75, Max: 30}, player.Vitals[live.VitalExperience])
	assert.Equal(t, domain.GameModeCreative, player.Mode)

	assert.Nil(t, player.Inventory[0], "local item should be cleared")
	assert.Nil(t, player.Equipment[live.EquipmentFeet], "local equipment should be cleared")
	require.NotNil(t, player.Inventory[3])
	assert.Equal(t, "minecraft:bread", player.Inventory[3].TypeID)
	assert.Equal(t, 7, player.Inventory[3].Count)
	require.NotNil(t, player.Equipment[live.EquipmentTorso])
	assert.Equal(t, "minecraft:netherite_chestplate", player.Equipment[live.EquipmentTorso].TypeID)

	assert.Equal(t, 1, player.ResyncHits)
}

func TestHandleJoin_SeedsMissingVitalsInsteadOfWiping(t *testing.T) {
	repo := NewFakeRepository()
	svc, _ := newTestService(repo, &FakeNotifier{}, nil)

	// Profile row exists but neither vitals nor slots were ever written.
	repo.SeedProfile(&domain.PlayerProfile{PlayerID: testPlayerID})

	player := NewFakePlayer(testPlayerID, "Alex")
	player.Vitals[live.VitalHealth] = live.Vital{Current: 17, Max: 20}
	player.Inventory[5] = &live.ItemStack{TypeID: "minecraft:torch", Count: 32}

	require.NoError(t, svc.HandleJoin(context.Background(), player))

	// Live state survived and seeded the store.
	require.NotNil(t, player.Inventory[5])
	assert.Equal(t, "minecraft:torch", player.Inventory[5].TypeID)
	assert.Zero(t, player.ResyncHits)

	vitals, err := repo.GetVitals(context.Background(), testPlayerID)
	require.NoError(t, err)
	assert.Equal(t, 17, vitals.Health)

	slots, err := repo.GetSlots(context.Background(), testPlayerID)
	require.NoError(t, err)
	assert.Len(t, slots, domain.TotalSlots)
}

func TestHandleJoin_CaptureFallsBackToDefaults(t *testing.T) {
	repo := NewFakeRepository()
	svc, _ := newTestService(repo, &FakeNotifier{}, nil)

	player := NewFakePlayer(testPlayerID, "Steve")
	player.FailRead[live.VitalHealth] = errors.New("attribute unavailable")
	player.FailRead[live.VitalExperience] = errors.New("attribute unavailable")

	require.NoError(t, svc.HandleJoin(context.Background(), player))

	vitals, err := repo.GetVitals(context.Background(), testPlayerID)
	require.NoError(t, err)
	assert.Equal(t, DefaultHealth, vitals.Health)
	assert.Equal(t, DefaultMaxHealth, vitals.MaxHealth)
	assert.Equal(t, DefaultExperienceLevel, vitals.ExperienceLevel)
	assert.Equal(t, DefaultExperienceProgress, vitals.ExperienceProgressHundredths)
}

func TestHandleLeave_AccumulatesPlayTime(t *testing.T) {
	repo := NewFakeRepository()
	svc, clock := newTestService(repo, &FakeNotifier{}, nil)
	player := NewFakePlayer(testPlayerID, "Steve")

	require.NoError(t, svc.HandleJoin(context.Background(), player))
	clock.Advance(90 * time.Second)
	require.NoError(t, svc.HandleLeave(context.Background(), player))

	profile, ok := repo.StoredProfile(testPlayerID)
	require.True(t, ok)
	assert.Equal(t, int64(90), profile.TotalPlaySeconds)
	assert.False(t, profile.IsOnline)

	// A second session adds to the accumulator.
	require.NoError(t, svc.HandleJoin(context.Background(), player))
	clock.Advance(45 * time.Second)
	require.NoError(t, svc.HandleLeave(context.Background(), player))

	profile, ok = repo.StoredProfile(testPlayerID)
	require.True(t, ok)
	assert.Equal(t, int64(135), profile.TotalPlaySeconds)
	assert.Zero(t, svc.sessions.Len())
}

func TestHandleLeave_UntrackedSessionContributesZero(t *testing.T) {
	repo := NewFakeRepository()
	svc, _ := newTestService(repo, &FakeNotifier{}, nil)
	player := NewFakePlayer(testPlayerID, "Steve")

	require.NoError(t, svc.HandleLeave(context.Background(), player))

	profile, ok := repo.StoredProfile(testPlayerID)
	require.True(t, ok)
	assert.Zero(t, profile.TotalPlaySeconds)
	assert.False(t, profile.IsOnline)
}

func TestTransfer_SavesThenNotifies(t *testing.T) {
	repo := NewFakeRepository()
	notifier := &FakeNotifier{}
	destinations := &config.ServerList{Servers: []config.Destination{
		{Name: "lobby", Address: "lobby.internal", Port: 19132},
	}}
	svc, clock := newTestService(repo, notifier, destinations)

	player := NewFakePlayer(testPlayerID, "Steve")
	player.Inventory[2] = &live.ItemStack{TypeID: "minecraft:compass", Count: 1}

	require.NoError(t, svc.HandleJoin(context.Background(), player))
	clock.Advance(2 * time.Minute)

	require.NoError(t, svc.Transfer(context.Background(), player, "lobby"))

	require.Len(t, notifier.Sent, 1)
	directive := notifier.Sent[0]
	assert.Equal(t, testPlayerID, directive.PlayerID)
	assert.Equal(t, "lobby", directive.DestinationName)
	assert.Equal(t, "lobby.internal", directive.DestinationAddress)
	assert.Equal(t, 19132, directive.DestinationPort)
	assert.Equal(t, testServer, directive.OriginServerName)

	// Play time banked, player still online and still tracked.
	profile, ok := repo.StoredProfile(testPlayerID)
	require.True(t, ok)
	assert.Equal(t, int64(120), profile.TotalPlaySeconds)
	assert.True(t, profile.IsOnline)
	assert.Equal(t, 1, svc.sessions.Len())

	// The subsequent engine disconnect contributes only residual time.
	clock.Advance(5 * time.Second)
	require.NoError(t, svc.HandleLeave(context.Background(), player))
	profile, _ = repo.StoredProfile(testPlayerID)
	assert.Equal(t, int64(125), profile.TotalPlaySeconds)
}

func TestTransfer_UnknownDestination(t *testing.T) {
	repo := NewFakeRepository()
	notifier := &FakeNotifier{}
	svc, _ := newTestService(repo, notifier, nil)

	player := NewFakePlayer(testPlayerID, "Steve")
	require.NoError(t, svc.HandleJoin(context.Background(), player))
	before := repo.ReplaceSlotsCalls

	err := svc.Transfer(context.Background(), player, "nowhere")
	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
	assert.Empty(t, notifier.Sent)
	assert.Equal(t, before, repo.ReplaceSlotsCalls, "unknown destination must not trigger a save")
}

func TestTransfer_SaveFailureAbortsBeforeNotify(t *testing.T) {
	repo := NewFakeRepository()
	notifier := &FakeNotifier{}
	destinations := &config.ServerList{Servers: []config.Destination{
		{Name: "lobby", Address: "lobby.internal", Port: 19132},
	}}
	svc, _ := newTestService(repo, notifier, destinations)

	player := NewFakePlayer(testPlayerID, "Steve")
	require.NoError(t, svc.HandleJoin(context.Background(), player))

	repo.FailReplaceSlots = errors.New("connection reset")

	err := svc.Transfer(context.Background(), player, "lobby")
	assert.ErrorIs(t, err, domain.ErrTransferSaveFailed)
	assert.Empty(t, notifier.Sent, "failed save must not publish a directive")
	assert.Equal(t, 1, svc.sessions.Len(), "session stays tracked after a failed transfer")
}

func TestHandleShutdown_DrainsEverySession(t *testing.T) {
	repo := NewFakeRepository()
	svc, clock := newTestService(repo, &FakeNotifier{}, nil)

	reachable := NewFakePlayer(testPlayerID, "Steve")
	reachable.Inventory[0] = &live.ItemStack{TypeID: "minecraft:map", Count: 1}
	goneID := "4f8e2d1c-0a9b-4c7d-b6e5-3f2a1d0c9b8e"
	gone := NewFakePlayer(goneID, "Alex")

	require.NoError(t, svc.HandleJoin(context.Background(), reachable))
	require.NoError(t, svc.HandleJoin(context.Background(), gone))
	clock.Advance(30 * time.Second)

	lookup := func(playerID string) live.Player {
		if playerID == testPlayerID {
			return reachable
		}
		return nil
	}
	require.NoError(t, svc.HandleShutdown(context.Background(), lookup))
	assert.Zero(t, svc.sessions.Len())

	// Reachable player got the full save.
	slots, err := repo.GetSlots(context.Background(), testPlayerID)
	require.NoError(t, err)
	assert.Len(t, slots, domain.TotalSlots)

	// Both profiles account the session and are marked offline.
	for _, id := range []string{testPlayerID, goneID} {
		profile, ok := repo.StoredProfile(id)
		require.True(t, ok, id)
		assert.Equal(t, int64(30), profile.TotalPlaySeconds, id)
		assert.False(t, profile.IsOnline, id)
	}
}

func TestHandleShutdown_NilLookupClosesProfilesOnly(t *testing.T) {
	repo := NewFakeRepository()
	svc, clock := newTestService(repo, &FakeNotifier{}, nil)

	player := NewFakePlayer(testPlayerID, "Steve")
	require.NoError(t, svc.HandleJoin(context.Background(), player))
	clock.Advance(10 * time.Second)

	require.NoError(t, svc.HandleShutdown(context.Background(), nil))

	profile, ok := repo.StoredProfile(testPlayerID)
	require.True(t, ok)
	assert.Equal(t, int64(10), profile.TotalPlaySeconds)
	assert.False(t, profile.IsOnline)
}

func TestHandleShutdown_KeepsGoingAfterFailure(t *testing.T) {
	repo := NewFakeRepository()
	svc, _ := newTestService(repo, &FakeNotifier{}, nil)

	a := NewFakePlayer(testPlayerID, "Steve")
	bID := "4f8e2d1c-0a9b-4c7d-b6e5-3f2a1d0c9b8e"
	b := NewFakePlayer(bID, "Alex")
	require.NoError(t, svc.HandleJoin(context.Background(), a))
	require.NoError(t, svc.HandleJoin(context.Background(), b))

	calls := 0
	repo.FailUpsertVitals = errors.New("connection reset")
	lookup := func(playerID string) live.Player {
		calls++
		if playerID == testPlayerID {
			return a
		}
		return b
	}

	err := svc.HandleShutdown(context.Background(), lookup)
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "every session is attempted despite failures")
}
