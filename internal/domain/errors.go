package domain

import "errors"

// Error kinds separating fatal failures by the component boundary where they
// are detected. Adapters wrap these with fmt.Errorf("%w: ...") so callers can
// classify with errors.Is.
var (
	// ErrConfig covers missing or unreadable credentials and invalid
	// environment-derived configuration. No network call is attempted.
	ErrConfig = errors.New("configuration error")

	// ErrTransport covers network-level failures reaching the API.
	ErrTransport = errors.New("transport error")

	// ErrAPI covers non-success responses, malformed bodies, and responses
	// with no usable command.
	ErrAPI = errors.New("api error")

	// ErrNoInput reports that the interactive line source reached end of
	// input with nothing typed. The session treats it as a clean exit, not
	// a failure.
	ErrNoInput = errors.New("no input")
)
