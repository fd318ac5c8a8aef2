package repositories

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures so callers can react without parsing messages.
type ErrorKind int

const (
	// ConfigMissing means a required credential is absent; the strategy cannot run at all.
	ConfigMissing ErrorKind = iota + 1
	// UpstreamFailure means the remote source answered with a non-success status or an unusable body.
	UpstreamFailure
	// GenerationFailed means the text model produced no usable structured output.
	GenerationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigMissing:
		return "ConfigMissing"
	case UpstreamFailure:
		return "UpstreamFailure"
	case GenerationFailed:
		return "GenerationFailed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type ProviderError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries a *ProviderError of the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Kind == kind
}

func configMissing(provider, setting string) error {
	return &ProviderError{
		Kind:     ConfigMissing,
		Provider: provider,
		Message:  setting + " is not configured",
	}
}
