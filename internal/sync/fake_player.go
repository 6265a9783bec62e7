package sync

import (
	"context"

	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
	"github.com/blockhaven/playersync/internal/transport"
)

// FakePlayer implements live.Player in memory for testing.
type FakePlayer struct {
	ID         string
	Name       string
	External   string
	Vitals     map[live.VitalKind]live.Vital
	Mode       domain.GameMode
	Pos        live.Position
	Inventory  map[int]*live.ItemStack
	Equipment  map[live.EquipmentKind]*live.ItemStack
	ResyncHits int

	// Failure injection per vital kind.
	FailRead  map[live.VitalKind]error
	FailWrite map[live.VitalKind]error
}

func NewFakePlayer(id, name string) *FakePlayer {
	return &FakePlayer{
		ID:   id,
		Name: name,
		Vitals: map[live.VitalKind]live.Vital{
			live.VitalHealth:     {Current: 20, Max: 20},
			live.VitalHunger:     {Current: 20},
			live.VitalSaturation: {Current: 5},
			live.VitalExperience: {Current: 0, Max: 0},
		},
		Inventory: make(map[int]*live.ItemStack),
		Equipment: make(map[live.EquipmentKind]*live.ItemStack),
		FailRead:  make(map[live.VitalKind]error),
		FailWrite: make(map[live.VitalKind]error),
	}
}

func (p *FakePlayer) Identity() string    { return p.ID }
func (p *FakePlayer) DisplayName() string { return p.Name }
func (p *FakePlayer) ExternalID() string  { return p.External }

func (p *FakePlayer) Vital(kind live.VitalKind) (live.Vital, error) {
	if err := p.FailRead[kind]; err != nil {
		return live.Vital{}, err
	}
	return p.Vitals[kind], nil
}

func (p *FakePlayer) SetVital(kind live.VitalKind, v live.Vital) error {
	if err := p.FailWrite[kind]; err != nil {
		return err
	}
	p.Vitals[kind] = v
	return nil
}

func (p *FakePlayer) GameMode() domain.GameMode        { return p.Mode }
func (p *FakePlayer) SetGameMode(mode domain.GameMode) { p.Mode = mode }

func (p *FakePlayer) Position() live.Position { return p.Pos }

func (p *FakePlayer) InventorySlot(i int) *live.ItemStack {
	return p.Inventory[i]
}

func (p *FakePlayer) SetInventorySlot(i int, stack *live.ItemStack) {
	if stack == nil {
		delete(p.Inventory, i)
		return
	}
	p.Inventory[i] = stack
}

func (p *FakePlayer) EquipmentSlot(kind live.EquipmentKind) *live.ItemStack {
	return p.Equipment[kind]
}

func (p *FakePlayer) SetEquipmentSlot(kind live.EquipmentKind, stack *live.ItemStack) {
	if stack == nil {
		delete(p.Equipment, kind)
		return
	}
	p.Equipment[kind] = stack
}

func (p *FakePlayer) RequestClientResync() { p.ResyncHits++ }

// FakeNotifier records transfer directives instead of publishing them.
type FakeNotifier struct {
	Sent     []transport.TransferDirective
	FailSend error
}

func (n *FakeNotifier) SendTransferNotification(ctx context.Context, directive transport.TransferDirective) error {
	if n.FailSend != nil {
		return n.FailSend
	}
	n.Sent = append(n.Sent, directive)
	return nil
}
