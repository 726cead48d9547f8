package provider

import (
	"errors"
	"fmt"
)

// TransientError marks a failure worth retrying: timeouts, connection
// errors, 5xx and 429 responses. After retries are exhausted it still
// surfaces as a TransientError so callers degrade to "source absent".
type TransientError struct {
	Source string
	Err    error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient failure: %v", e.Source, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks a failure that retrying cannot fix: bad
// credentials, malformed requests, other 4xx responses.
type PermanentError struct {
	Source string
	Err    error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("%s: permanent failure: %v", e.Source, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// ParseError marks an unexpected response shape from a provider. The
// acquirer treats it like any other provider failure and moves on.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a retryable provider failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
