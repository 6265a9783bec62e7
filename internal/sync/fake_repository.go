package sync

import (
	"context"

	"github.com/blockhaven/playersync/internal/domain"
)

// FakeRepository implements repository.Player in memory for testing.
type FakeRepository struct {
	profiles map[string]*domain.PlayerProfile
	vitals   map[string]*domain.VitalsRecord
	slots    map[string][]domain.SlotRecord

	// Failure injection. When set, the corresponding call returns the error.
	FailProfileExists error
	FailUpsertProfile error
	FailGetProfile    error
	FailUpsertVitals  error
	FailGetVitals     error
	FailReplaceSlots  error
	FailGetSlots      error

	ReplaceSlotsCalls int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		profiles: make(map[string]*domain.PlayerProfile),
		vitals:   make(map[string]*domain.VitalsRecord),
		slots:    make(map[string][]domain.SlotRecord),
	}
}

func (f *FakeRepository) EnsureSchema(ctx context.Context) error {
	return nil
}

func (f *FakeRepository) ProfileExists(ctx context.Context, playerID string) (bool, error) {
	if f.FailProfileExists != nil {
		return false, f.FailProfileExists
	}
	_, ok := f.profiles[playerID]
	return ok, nil
}

func (f *FakeRepository) UpsertProfile(ctx context.Context, profile *domain.PlayerProfile) error {
	if f.FailUpsertProfile != nil {
		return f.FailUpsertProfile
	}
	cp := *profile
	f.profiles[profile.PlayerID] = &cp
	return nil
}

func (f *FakeRepository) GetProfile(ctx context.Context, playerID string) (*domain.PlayerProfile, error) {
	if f.FailGetProfile != nil {
		return nil, f.FailGetProfile
	}
	p, ok := f.profiles[playerID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeRepository) UpsertVitals(ctx context.Context, vitals *domain.VitalsRecord) error {
	if f.FailUpsertVitals != nil {
		return f.FailUpsertVitals
	}
	cp := *vitals
	f.vitals[vitals.PlayerID] = &cp
	return nil
}

func (f *FakeRepository) GetVitals(ctx context.Context, playerID string) (*domain.VitalsRecord, error) {
	if f.FailGetVitals != nil {
		return nil, f.FailGetVitals
	}
	v, ok := f.vitals[playerID]
	if !ok {
		return nil, domain.ErrVitalsNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *FakeRepository) ReplaceSlots(ctx context.Context, playerID, originServerName string, slots []domain.SlotRecord) (int, error) {
	f.ReplaceSlotsCalls++
	if f.FailReplaceSlots != nil {
		return 0, f.FailReplaceSlots
	}
	stored := make([]domain.SlotRecord, len(slots))
	for i, s := range slots {
		s.PlayerID = playerID
		s.OriginServerName = originServerName
		stored[i] = s
	}
	f.slots[playerID] = stored
	return len(stored), nil
}

func (f *FakeRepository) GetSlots(ctx context.Context, playerID string) ([]domain.SlotRecord, error) {
	if f.FailGetSlots != nil {
		return nil, f.FailGetSlots
	}
	stored := f.slots[playerID]
	out := make([]domain.SlotRecord, len(stored))
	copy(out, stored)
	return out, nil
}

// SeedProfile installs a profile directly, bypassing the service paths.
func (f *FakeRepository) SeedProfile(profile *domain.PlayerProfile) {
	cp := *profile
	f.profiles[profile.PlayerID] = &cp
}

// StoredProfile reads back a profile without error mapping.
func (f *FakeRepository) StoredProfile(playerID string) (*domain.PlayerProfile, bool) {
	p, ok := f.profiles[playerID]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}
