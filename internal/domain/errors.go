package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgNotConnected        = "store not connected"
	ErrMsgProfileNotFound     = "player profile not found"
	ErrMsgVitalsNotFound      = "player vitals not found"
	ErrMsgDestinationNotFound = "destination server not found"
	ErrMsgTransferSaveFailed  = "transfer aborted: state save failed"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: ...", domain.ErrXxx) for additional context.
var (
	// ErrNotConnected means the store connection was never established;
	// every store operation short-circuits without attempting I/O.
	ErrNotConnected = errors.New(ErrMsgNotConnected)

	// ErrProfileNotFound marks the expected-absent case that drives the
	// bootstrap branch on first-ever join. Not a failure.
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)

	// ErrVitalsNotFound marks an absent vitals row.
	ErrVitalsNotFound = errors.New(ErrMsgVitalsNotFound)

	// ErrDestinationNotFound is returned for a transfer to an unknown
	// server name. No save is attempted and no notification is sent.
	ErrDestinationNotFound = errors.New(ErrMsgDestinationNotFound)

	// ErrTransferSaveFailed wraps the store error that aborted a transfer.
	ErrTransferSaveFailed = errors.New(ErrMsgTransferSaveFailed)
)
