package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnauthorized is returned for 401 responses. The token is invalid or expired and the caller must re-authenticate.
var ErrUnauthorized = errors.New("request unauthorized")

// ErrUnsupportedPayload is returned when a GET payload cannot be encoded as query parameters.
var ErrUnsupportedPayload = errors.New("unsupported payload")

// ErrorKind names the variant of a client error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnauthorized
	KindRateLimited
	KindAPI
	KindParse
	KindTransport
	KindStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// RateLimitError is returned for 429 responses.
//
// RetryAfter is only meaningful when HasRetryAfter is set, i.e. the response carried an integer Retry-After header.
type RateLimitError struct {
	RetryAfter    time.Duration
	HasRetryAfter bool
}

func (e *RateLimitError) Error() string {
	if !e.HasRetryAfter {
		return "exceeded request limit"
	}
	return fmt.Sprintf("exceeded request limit, retry after %s", e.RetryAfter)
}

// APIErrorKind distinguishes the two error objects the API embeds in response bodies.
type APIErrorKind int

const (
	// RegularError is the {status, message} error object.
	RegularError APIErrorKind = iota
	// PlayerError is the {status, message, reason} player error object.
	PlayerError
)

// APIError is an error reported by the API in the response body. Message and Reason are kept verbatim.
type APIError struct {
	Kind    APIErrorKind
	Status  int
	Message string
	Reason  string
}

func (e *APIError) Error() string {
	if e.Kind == PlayerError {
		return fmt.Sprintf("spotify error: %d (%s): %s", e.Status, e.Reason, e.Message)
	}
	return fmt.Sprintf("spotify error: %d: %s", e.Status, e.Message)
}

// ParseError wraps a JSON encode or decode failure. A decode failure on a successful response
// means the response schema does not match what the client expected.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("json parse error: %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError wraps a failure to obtain a token, send a request, or read a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is an HTTP failure the client does not interpret further.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	if text := http.StatusText(e.Code); text != "" {
		return fmt.Sprintf("status code: %d %s", e.Code, text)
	}
	return fmt.Sprintf("status code: %d", e.Code)
}

// IsUnauthorized checks if the error is [ErrUnauthorized].
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	var e *RateLimitError
	return errors.As(err, &e)
}

// IsAPIError checks if the error was reported by the API in the response body.
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// IsParseError checks if the error is a JSON encode or decode failure.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsTransportError checks if the error is a network-level failure.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsStatusError checks if the error is an uninterpreted HTTP status.
func IsStatusError(err error) bool {
	var e *StatusError
	return errors.As(err, &e)
}

// KindOf returns the variant of err, or [KindUnknown] for nil and foreign errors.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case IsUnauthorized(err):
		return KindUnauthorized
	case IsRateLimited(err):
		return KindRateLimited
	case IsAPIError(err):
		return KindAPI
	case IsParseError(err):
		return KindParse
	case IsTransportError(err):
		return KindTransport
	case IsStatusError(err):
		return KindStatus
	default:
		return KindUnknown
	}
}
