// Package transport delivers transfer notifications to the engine side.
// The sync core never talks to the game client directly; it publishes a
// directive and the engine adapter subscribed to the player's subject
// issues the actual client transfer packet.
package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/blockhaven/playersync/internal/logger"
)

// TransferDirective is the wire payload telling the engine adapter where
// to send the player.
type TransferDirective struct {
	PlayerID           string `json:"player_id"`
	DestinationName    string `json:"destination_name"`
	DestinationAddress string `json:"destination_address"`
	DestinationPort    int    `json:"destination_port"`
	OriginServerName   string `json:"origin_server_name"`
}

// Subject returns the per-player subject the engine adapter listens on.
func Subject(playerID string) string {
	return fmt.Sprintf("playersync.transfer.%s", playerID)
}

// NatsNotifier publishes transfer directives over a NATS connection.
type NatsNotifier struct {
	conn *nats.Conn
}

// NewNatsNotifier wraps an established NATS connection.
func NewNatsNotifier(conn *nats.Conn) *NatsNotifier {
	return &NatsNotifier{conn: conn}
}

// Connect dials the NATS server and returns a notifier. The connection
// name shows up in NATS monitoring.
func Connect(url, serverName string) (*NatsNotifier, error) {
	conn, err := nats.Connect(url, nats.Name(fmt.Sprintf("playersync-%s", serverName)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &NatsNotifier{conn: conn}, nil
}

// SendTransferNotification publishes the directive. Fire-and-forget:
// delivery is not confirmed, but a publish failure is reported to the
// caller so the initiating command can surface it.
func (n *NatsNotifier) SendTransferNotification(ctx context.Context, directive TransferDirective) error {
	data, err := json.Marshal(directive)
	if err != nil {
		return fmt.Errorf("failed to encode transfer directive: %w", err)
	}

	subject := Subject(directive.PlayerID)
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish transfer directive: %w", err)
	}

	logger.FromContext(ctx).Info("Transfer directive published",
		"subject", subject,
		"destination", directive.DestinationName)
	return nil
}

// Close drains and closes the underlying connection.
func (n *NatsNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}
