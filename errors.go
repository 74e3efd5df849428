package datefmt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration indicates that no locale table could be resolved for a
// locale, its base language or the default locale.
var ErrConfiguration = errors.New("datefmt: locale configuration missing")

// ErrInvalidFormat indicates that input text does not match a compiled
// pattern or names an impossible date or time.
var ErrInvalidFormat = errors.New("datefmt: invalid format")

// ErrAmbiguousToken marks a token vocabulary where a shorter key would be
// tried before a longer key it prefixes.
var ErrAmbiguousToken = errors.New("datefmt: ambiguous token vocabulary")

// ErrInvalidLayout indicates a layout string without any date field.
var ErrInvalidLayout = errors.New("datefmt: invalid layout")

// ConfigurationError reports the locale chain that was tried.
type ConfigurationError struct {
	Locale string
	Tried  []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("datefmt: no locale table for %q (tried %s)", e.Locale, strings.Join(e.Tried, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// InvalidFormatError describes why a value was rejected.
type InvalidFormatError struct {
	Input  string
	Layout string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	if e.Layout == "" {
		return fmt.Sprintf("datefmt: invalid value %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("datefmt: invalid value %q for layout %q: %s", e.Input, e.Layout, e.Reason)
}

func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

func invalidFormat(input, layout, reason string) error {
	return &InvalidFormatError{Input: input, Layout: layout, Reason: reason}
}
