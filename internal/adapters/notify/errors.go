package notify

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingSender = errors.New("missing sender address")
)
