package clashgo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hupe1980/clashgo/internal/rest"
)

var (
	// ErrNotFound is returned when a clan, player, member or lookup value
	// does not exist. Absence is an expected outcome for caller-supplied
	// identifiers, so test for it with errors.Is rather than treating it
	// as a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTag is returned when a tag is empty after normalization.
	// This is a caller error, not a data-absence condition.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrNoMatchers is returned by GetMemberBy when no matchers are given.
	// An empty matcher set matches nothing by definition.
	ErrNoMatchers = errors.New("at least one matcher is required")

	// ErrUnknownAttribute is returned when a matcher names an attribute
	// that is not in the member attribute table.
	ErrUnknownAttribute = errors.New("unknown member attribute")

	// ErrNoClient is returned when a fetch is attempted on a model that was
	// constructed without an attached client.
	ErrNoClient = errors.New("no client attached")

	// ErrInvalidSearch is returned by SearchClans when no search criterion
	// is set. The API rejects unfiltered clan searches.
	ErrInvalidSearch = errors.New("at least one search criterion is required")

	// ErrNoTokens is returned when a client is constructed without any
	// API token.
	ErrNoTokens = errors.New("no API tokens provided")

	// ErrInvalidCredentials is returned when the API rejects the token,
	// typically because the requesting IP is not on the key's allowlist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited is returned when the API throttles the client even
	// after the local limiter and the retry budget are exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrMaintenance is returned while the game API is in maintenance.
	ErrMaintenance = errors.New("API is in maintenance")
)

// APIError is an API failure that maps onto no public sentinel.
//
// The original transport error can be accessed via errors.Unwrap.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s: %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Reason)
}

func (e *APIError) Unwrap() error { return e.cause }

// translateError unifies transport errors onto the public error surface.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var restErr *rest.Error
	if errors.As(err, &restErr) {
		switch restErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %w", ErrMaintenance, err)
		default:
			return &APIError{
				StatusCode: restErr.StatusCode,
				Reason:     restErr.Reason,
				Message:    restErr.Message,
				cause:      err,
			}
		}
	}

	return err
}
