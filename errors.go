package adapt

import "errors"

// Sentinel errors for the adapt package.
// Use errors.Is to check: errors.Is(err, adapt.ErrUnknownItem)
var (
	ErrInvalidConfiguration = errors.New("adapt: invalid session configuration")
	ErrEmptyBank            = errors.New("adapt: item bank is empty")
	ErrInvalidItem          = errors.New("adapt: invalid item")
	ErrDuplicateItemID      = errors.New("adapt: duplicate item id")
	ErrUnknownItem          = errors.New("adapt: item not in bank")
	ErrDuplicateResponse    = errors.New("adapt: response already recorded for item")
	ErrNoPendingItem        = errors.New("adapt: item was not returned by the last selection")
	ErrSessionActive        = errors.New("adapt: session has not terminated")
	ErrSessionTerminated    = errors.New("adapt: session already terminated")
)
