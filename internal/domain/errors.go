package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown whenever the server did not supply one.
const FallbackMessage = "Something went wrong"

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// APIError is any rejected or failed backend request. Status is zero for
// transport failures, in which case Message is empty and callers fall back
// to FallbackMessage.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e APIError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("api request failed: %v", e.Err)
	default:
		return fmt.Sprintf("api error %d", e.Status)
	}
}

func (e APIError) Unwrap() error { return e.Err }

type GatewayError struct {
	Msg string
	Err error
}

func (e GatewayError) Error() string {
	if e.Msg != "" {
		return "gateway: " + e.Msg
	}
	return "gateway error"
}

func (e GatewayError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// IsUnauthorized reports whether err is the recognized-unauthorized backend
// response that checkAuth swallows.
func IsUnauthorized(err error) bool {
	var target APIError
	return errors.As(err, &target) && target.Status == http.StatusUnauthorized
}

// Message extracts the server-supplied message for user-facing notifications,
// falling back to the generic one.
func Message(err error) string {
	var api APIError
	if errors.As(err, &api) && api.Message != "" {
		return api.Message
	}
	var val ValidationError
	if errors.As(err, &val) {
		if val.Msg != "" {
			return val.Msg
		}
		return val.Error()
	}
	return FallbackMessage
}
