package orm

import "fmt"

// ConfigurationError indicates an invalid or unusable entity manager
// configuration. It is fatal: the run aborts before any data access.
type ConfigurationError struct {
	Manager string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("entity manager %q: %s", e.Manager, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
