package rate

import "errors"

// ErrStoreUnavailable wraps backend failures so callers can decide whether to
// fail open or closed without inspecting driver error types.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")
