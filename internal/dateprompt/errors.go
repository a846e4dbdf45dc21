package dateprompt

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned when Run or Start is called a second time
var ErrAlreadyRun = errors.New("date prompt already running")

// ConfigError reports a question configuration the widget cannot start with
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %#v: %s", e.Field, e.Value, e.Reason)
}

// IsConfigError reports whether err is or wraps a *ConfigError
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
