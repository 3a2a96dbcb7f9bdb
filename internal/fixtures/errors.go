package fixtures

import "errors"

var (
	// ErrNoFixturesFound is returned when every searched path yields zero
	// fixture sources.
	ErrNoFixturesFound = errors.New("no fixtures found")

	// ErrUnsupportedFormat is returned when a file passed explicitly on the
	// command line has an extension no parser handles.
	ErrUnsupportedFormat = errors.New("unsupported fixture format")
)
