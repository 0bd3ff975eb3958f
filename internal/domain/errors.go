package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNetworkUnreachable     = errors.New("server unreachable")
	ErrStaleSecret            = errors.New("secret was already rejected")
	ErrStaleAccountResponse   = errors.New("response belongs to an inactive account")
	ErrRequestAborted         = errors.New("request aborted")
	ErrNotAuthenticated       = errors.New("not signed in")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrSecretRequired         = errors.New("secret is required")
	ErrActionNotPermitted     = errors.New("action not permitted for task status")
	ErrTaskNotFound           = errors.New("task not found")
	ErrUnknownTaskStatus      = errors.New("unknown task status")
	ErrMalformedTaskID        = errors.New("malformed task id")
	ErrInvalidSession         = errors.New("authenticated session requires an address")
)

// AuthenticationRequiredError is raised before any network call when an
// unauthenticated caller targets a non-public endpoint.
type AuthenticationRequiredError struct {
	Endpoint string
}

func (e *AuthenticationRequiredError) Error() string {
	return fmt.Sprintf("authentication required for %s", e.Endpoint)
}

func (e *AuthenticationRequiredError) Is(target error) bool {
	return target == ErrAuthenticationRequired
}

// APIError is any non-2xx response from the backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// Detail returns the backend's "detail" field when the body carries one,
// the raw body otherwise.
func (e *APIError) Detail() string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil || payload.Detail == nil {
		return strings.TrimSpace(e.Body)
	}

	switch detail := payload.Detail.(type) {
	case string:
		return detail
	default:
		encoded, err := json.Marshal(detail)
		if err != nil {
			return strings.TrimSpace(e.Body)
		}
		return string(encoded)
	}
}

type UnknownTaskStatusError struct {
	Status string
}

func (e *UnknownTaskStatusError) Error() string {
	return fmt.Sprintf("unknown task status %q", e.Status)
}

func (e *UnknownTaskStatusError) Is(target error) bool {
	return target == ErrUnknownTaskStatus
}

type ActionNotPermittedError struct {
	TaskID TaskID
	Status TaskStatus
	Action Action
}

func (e *ActionNotPermittedError) Error() string {
	return fmt.Sprintf("cannot %s task %s in status %s", e.Action, e.TaskID, e.Status)
}

func (e *ActionNotPermittedError) Is(target error) bool {
	return target == ErrActionNotPermitted
}

// IsSilent reports whether err is a drop condition that must never be shown
// to the user.
func IsSilent(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrStaleAccountResponse) ||
		errors.Is(err, ErrRequestAborted) ||
		errors.Is(err, context.Canceled)
}

// IsSecretRejection reports whether err plausibly means the backend could not
// use the submitted secret.
func IsSecretRejection(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == 401 {
		return true
	}

	detail := strings.ToLower(apiErr.Detail())
	return strings.Contains(detail, "password") || strings.Contains(detail, "decrypt")
}
