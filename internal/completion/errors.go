package completion

import "errors"

// ErrNotConfigured indicates no completion API key has been configured.
// Classification endpoints surface this until a key is provided.
var ErrNotConfigured = errors.New("completion service not configured")
