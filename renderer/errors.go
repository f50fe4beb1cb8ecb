package renderer

import "github.com/cockroachdb/errors"

var (
	ErrNoSuitableDevice     = errors.New("failed to find a suitable GPU")
	ErrExtensionUnavailable = errors.New("extension unavailable")
	ErrNoMemoryType         = errors.New("failed to find a suitable memory type")
)
