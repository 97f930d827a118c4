package particle

import (
	"errors"
	"fmt"
)

// ErrNoImages is matched by the ConfigurationError raised when an emitter
// with a non-zero count has no images to pick from.
var ErrNoImages = errors.New("emitter has no images")

// ConfigurationError reports an emitter configuration the generator refuses
// to proceed past. All other malformed input is handled permissively.
type ConfigurationError struct {
	Emitter string // Emitter name (may be empty)
	Field   string // Offending field
	Reason  error
}

func (e *ConfigurationError) Error() string {
	if e.Emitter == "" {
		return fmt.Sprintf("invalid emitter config: %s: %v", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid emitter config %q: %s: %v", e.Emitter, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}

// Validate checks the only hard requirement of an emitter: images must be
// present whenever particles are requested.
func (c EmitterConfig) Validate() error {
	if c.Count > 0 && len(c.Images) == 0 {
		return &ConfigurationError{Emitter: c.Name, Field: "images", Reason: ErrNoImages}
	}
	return nil
}
