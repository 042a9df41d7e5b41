package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationMessage is the client-facing text for any missing server-side
// credential or URL. The specific setting is only logged.
const ConfigurationMessage = "Server configuration error"

type ValidationError struct {
	Field   string
	Msg     string
	Details string
	Err     error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConfigurationError reports a setting that is absent at call time.
type ConfigurationError struct {
	Setting string
}

func (e ConfigurationError) Error() string {
	if e.Setting == "" {
		return ConfigurationMessage
	}
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// UpstreamError is a non-success answer from an external API. Msg is the
// client-facing summary, Body the upstream response text.
type UpstreamError struct {
	Service string
	Status  int
	Msg     string
	Body    string
	Err     error
}

func (e UpstreamError) Error() string {
	var b strings.Builder
	if e.Service != "" {
		b.WriteString(e.Service)
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString("upstream request failed")
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e UpstreamError) Unwrap() error { return e.Err }

type MethodNotAllowedError struct {
	Method string
}

func (e MethodNotAllowedError) Error() string {
	return "Method not allowed"
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg == "" {
		return "forbidden"
	}
	return e.Msg
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target ConfigurationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsMethodNotAllowed(err error) bool {
	var target MethodNotAllowedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

// AsUpstream extracts an UpstreamError from the chain.
func AsUpstream(err error) (UpstreamError, bool) {
	var target UpstreamError
	ok := errors.As(err, &target)
	return target, ok
}
