package ask

import "errors"

// ErrNoProfileService indicates that no profile service was provided.
var ErrNoProfileService = errors.New("profile service is required")
