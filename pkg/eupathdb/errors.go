package eupathdb

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat means a response format other than json was
	// requested. The webservices expose xml too but nothing here parses it.
	ErrUnsupportedFormat = errors.New("unsupported response format")

	// ErrUnknownProvider means the provider name is not one of the known
	// EuPathDB-family sites.
	ErrUnknownProvider = errors.New("unknown provider")
)

// MalformedIDError reports a composite gene identifier that carries no
// "/" or "," separator, so the canonical id cannot be recovered.
type MalformedIDError struct {
	Value string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed composite gene id: %q", e.Value)
}
