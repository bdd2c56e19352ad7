package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string using the package's shared monotonic
// entropy source, which is safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}
