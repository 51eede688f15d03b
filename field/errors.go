package field

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every field construction error.
var ErrConfiguration = errors.New("field: configuration error")

// ConfigError reports a missing or unusable collaborator at construction.
type ConfigError struct {
	Option string // Options field at fault
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("field: invalid %s: %v", e.Option, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfiguration) hold for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}
