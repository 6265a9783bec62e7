// Package sync implements the join/leave/transfer state machine that keeps
// player state consistent across server processes. Every player session
// runs Unseeded -> Bootstrapped or Unseeded -> Loaded, then always -> Saved
// on session end; the branch is re-derived on every join from whether the
// shared store already holds a profile.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blockhaven/playersync/internal/codec"
	"github.com/blockhaven/playersync/internal/config"
	"github.com/blockhaven/playersync/internal/domain"
	"github.com/blockhaven/playersync/internal/live"
	"github.com/blockhaven/playersync/internal/logger"
	"github.com/blockhaven/playersync/internal/metrics"
	"github.com/blockhaven/playersync/internal/repository"
	"github.com/blockhaven/playersync/internal/session"
	"github.com/blockhaven/playersync/internal/transport"
)

// Notifier sends the fire-and-forget transfer directive once a save has
// succeeded. Implemented by transport.NatsNotifier.
type Notifier interface {
	SendTransferNotification(ctx context.Context, directive transport.TransferDirective) error
}

// Service defines the synchronization entry points the engine adapter
// calls from its event handlers.
type Service interface {
	// HandleJoin runs the bootstrap-or-load branch and upserts the
	// player's profile. On the load branch the live player is
	// overwritten with stored state.
	HandleJoin(ctx context.Context, player live.Player) error

	// HandleLeave banks the session's play time and captures live state
	// into the store. Store failures are logged and surfaced, but the
	// caller is expected to treat them as best-effort.
	HandleLeave(ctx context.Context, player live.Player) error

	// HandleShutdown drains every tracked session and performs the leave
	// save for each. lookup resolves a still-connected live player, or
	// returns nil when only the profile can be closed out.
	HandleShutdown(ctx context.Context, lookup func(playerID string) live.Player) error

	// Transfer saves the player's state and then publishes the transfer
	// directive for the named destination. Any save failure aborts the
	// transfer before the directive is sent.
	Transfer(ctx context.Context, player live.Player, destinationName string) error

	// Destinations lists the configured transfer targets.
	Destinations() []config.Destination
}

type service struct {
	repo         repository.Player
	codec        *codec.Codec
	sessions     *session.Tracker
	notifier     Notifier
	destinations *config.ServerList
	serverName   string
	now          func() time.Time
}

// NewService creates the synchronization controller.
func NewService(repo repository.Player, cdc *codec.Codec, sessions *session.Tracker, notifier Notifier, destinations *config.ServerList, serverName string) Service {
	return &service{
		repo:         repo,
		codec:        cdc,
		sessions:     sessions,
		notifier:     notifier,
		destinations: destinations,
		serverName:   serverName,
		now:          time.Now,
	}
}

func (s *service) Destinations() []config.Destination {
	return s.destinations.Servers
}

func (s *service) HandleJoin(ctx context.Context, player live.Player) error {
	log := logger.FromContext(ctx)

	playerID := player.Identity()
	if _, err := uuid.Parse(playerID); err != nil {
		return fmt.Errorf("invalid player id %q: %w", playerID, err)
	}

	s.sessions.Start(playerID, s.now())
	log.Info("Player joined", "player_id", playerID, "name", player.DisplayName())

	exists, err := s.repo.ProfileExists(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to check for existing state: %w", err)
	}

	if !exists {
		if err := s.bootstrap(ctx, player); err != nil {
			return err
		}
		metrics.JoinsTotal.WithLabelValues(metrics.OutcomeBootstrap).Inc()
	} else {
		if err := s.load(ctx, player); err != nil {
			return err
		}
		metrics.JoinsTotal.WithLabelValues(metrics.OutcomeLoad).Inc()
	}

	return s.upsertProfileOnJoin(ctx, player)
}

// bootstrap seeds the store from the live player: first contact, in-game
// truth wins and the live player is left untouched.
func (s *service) bootstrap(ctx context.Context, player live.Player) error {
	log := logger.FromContext(ctx)
	playerID := player.Identity()

	log.Info("No stored state for player, bootstrapping from live state", "player_id", playerID)

	vitals := s.captureVitals(ctx, player)
	if err := s.upsertVitalsTimed(ctx, vitals); err != nil {
		return fmt.Errorf("failed to bootstrap vitals: %w", err)
	}

	slots := s.captureSlots(ctx, player)
	written, err := s.replaceSlotsTimed(ctx, playerID, slots)
	if err != nil {
		return fmt.Errorf("failed to bootstrap slots: %w", err)
	}

	log.Info("Bootstrapped player state", "player_id", playerID, "slots_written", written)
	return nil
}

// load applies stored state onto the live player, overwriting whatever
// they were carrying locally. The shared store is authoritative the
// instant a player has any record.
func (s *service) load(ctx context.Context, player live.Player) error {
	log := logger.FromContext(ctx)
	playerID := player.Identity()

	vitals, err := s.repo.GetVitals(ctx, playerID)
	switch {
	case errors.Is(err, domain.ErrVitalsNotFound):
		// Profile exists but the vitals row is missing (interrupted
		// bootstrap). Seed it from the live player instead of applying.
		log.Warn("Profile exists but vitals row missing, seeding from live state", "player_id", playerID)
		captured := s.captureVitals(ctx, player)
		if err := s.upsertVitalsTimed(ctx, captured); err != nil {
			return fmt.Errorf("failed to seed missing vitals: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to load vitals: %w", err)
	default:
		s.applyVitals(ctx, player, vitals)
	}

	slots, err := s.repo.GetSlots(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to load slots: %w", err)
	}
	if len(slots) == 0 {
		// Same interrupted-bootstrap case for slots: never wipe a live
		// inventory against a record that was never written.
		log.Warn("Profile exists but no slot rows, seeding from live state", "player_id", playerID)
		captured := s.captureSlots(ctx, player)
		if _, err := s.replaceSlotsTimed(ctx, playerID, captured); err != nil {
			return fmt.Errorf("failed to seed missing slots: %w", err)
		}
		return nil
	}

	s.applySlots(ctx, player, slots)
	player.RequestClientResync()

	log.Info("Loaded player state from store", "player_id", playerID, "slot_rows", len(slots))
	return nil
}

func (s *service) upsertProfileOnJoin(ctx context.Context, player live.Player) error {
	playerID := player.Identity()

	profile, err := s.repo.GetProfile(ctx, playerID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile = &domain.PlayerProfile{PlayerID: playerID}
	} else if err != nil {
		return fmt.Errorf("failed to read profile on join: %w", err)
	}

	profile.DisplayName = player.DisplayName()
	profile.ExternalID = player.ExternalID()
	profile.IsOnline = true

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to upsert profile on join: %w", err)
	}
	return nil
}

func (s *service) HandleLeave(ctx context.Context, player live.Player) error {
	elapsed, ok := s.sessions.End(player.Identity(), s.now())
	if !ok {
		logger.FromContext(ctx).Warn("No session entry for leaving player", "player_id", player.Identity())
	}
	err := s.savePlayer(ctx, player, elapsed, true)
	s.recordSave(metrics.TriggerLeave, err)
	return err
}

func (s *service) HandleShutdown(ctx context.Context, lookup func(playerID string) live.Player) error {
	log := logger.FromContext(ctx)
	entries := s.sessions.DrainAll(s.now())

	var firstErr error
	saved := 0
	for _, entry := range entries {
		var player live.Player
		if lookup != nil {
			player = lookup(entry.PlayerID)
		}
		if player == nil {
			// Can only close out the profile accounting.
			if err := s.closeProfile(ctx, entry.PlayerID, "", "", entry.Elapsed, true); err != nil {
				log.Error("Failed to close profile during shutdown", "player_id", entry.PlayerID, "error", err)
				if firstErr == nil {
					firstErr = err
				}
			}
			continue
		}

		err := s.savePlayer(ctx, player, entry.Elapsed, true)
		s.recordSave(metrics.TriggerShutdown, err)
		if err != nil {
			log.Error("Failed to save player during shutdown", "player_id", entry.PlayerID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved++
	}

	log.Info("Shutdown save complete", "sessions", len(entries), "saved", saved)
	return firstErr
}

func (s *service) Transfer(ctx context.Context, player live.Player, destinationName string) error {
	log := logger.FromContext(ctx)
	playerID := player.Identity()

	dest, found := s.destinations.Find(destinationName)
	if !found {
		metrics.TransfersTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, destinationName)
	}

	log.Info("Transfer requested",
		"player_id", playerID,
		"name", player.DisplayName(),
		"destination", dest.Name)

	// Bank the play time accumulated so far but keep the session clock
	// running; the engine-side disconnect that follows the transfer will
	// contribute only the residual.
	elapsed, tracked := s.sessions.Reset(playerID, s.now())
	if !tracked {
		log.Warn("No session entry for transferring player", "player_id", playerID)
	}

	// The destination loads whatever the store holds the moment the
	// player arrives, so the save must complete before the directive is
	// published. Any failure here aborts the move.
	if err := s.savePlayer(ctx, player, elapsed, false); err != nil {
		metrics.TransfersTotal.WithLabelValues(metrics.ResultError).Inc()
		s.recordSave(metrics.TriggerTransfer, err)
		return fmt.Errorf("%w: %v", domain.ErrTransferSaveFailed, err)
	}
	s.recordSave(metrics.TriggerTransfer, nil)

	directive := transport.TransferDirective{
		PlayerID:           playerID,
		DestinationName:    dest.Name,
		DestinationAddress: dest.Address,
		DestinationPort:    dest.Port,
		OriginServerName:   s.serverName,
	}
	if err := s.notifier.SendTransferNotification(ctx, directive); err != nil {
		metrics.TransfersTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("failed to send transfer notification: %w", err)
	}

	metrics.TransfersTotal.WithLabelValues(metrics.ResultOK).Inc()
	return nil
}

// savePlayer is the shared capture-and-save sequence: profile accounting,
// vitals snapshot, full slot set. markOffline distinguishes leave/shutdown
// from transfer, where the player is still connected.
func (s *service) savePlayer(ctx context.Context, player live.Player, elapsed int64, markOffline bool) error {
	playerID := player.Identity()

	if err := s.closeProfile(ctx, playerID, player.DisplayName(), player.ExternalID(), elapsed, markOffline); err != nil {
		return err
	}

	vitals := s.captureVitals(ctx, player)
	if err := s.upsertVitalsTimed(ctx, vitals); err != nil {
		return fmt.Errorf("failed to save vitals: %w", err)
	}

	slots := s.captureSlots(ctx, player)
	if _, err := s.replaceSlotsTimed(ctx, playerID, slots); err != nil {
		return fmt.Errorf("failed to save slots: %w", err)
	}

	logger.FromContext(ctx).Info("Player state saved",
		"player_id", playerID,
		"session_seconds", elapsed,
		"online", !markOffline)
	return nil
}

// closeProfile folds the closed session's seconds into the accumulator.
// totalPlaySeconds only ever grows.
func (s *service) closeProfile(ctx context.Context, playerID, displayName, externalID string, elapsed int64, markOffline bool) error {
	profile, err := s.repo.GetProfile(ctx, playerID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile = &domain.PlayerProfile{PlayerID: playerID}
	} else if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	if displayName != "" {
		profile.DisplayName = displayName
	}
	if externalID != "" {
		profile.ExternalID = externalID
	}
	profile.TotalPlaySeconds += elapsed
	profile.IsOnline = !markOffline

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (s *service) recordSave(trigger string, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.SavesTotal.WithLabelValues(trigger, result).Inc()
}

func (s *service) upsertVitalsTimed(ctx context.Context, vitals *domain.VitalsRecord) error {
	start := time.Now()
	err := s.repo.UpsertVitals(ctx, vitals)
	metrics.StoreOpDuration.WithLabelValues("upsert_vitals").Observe(time.Since(start).Seconds())
	return err
}

func (s *service) replaceSlotsTimed(ctx context.Context, playerID string, slots []domain.SlotRecord) (int, error) {
	start := time.Now()
	n, err := s.repo.ReplaceSlots(ctx, playerID, s.serverName, slots)
	metrics.StoreOpDuration.WithLabelValues("replace_slots").Observe(time.Since(start).Seconds())
	return n, err
}
