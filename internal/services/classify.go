package services

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is read for an embedded error object.
const maxErrorBody = 1 << 20

// Classify maps a non-2xx response to a client error.
//
//   - 401: [ErrUnauthorized]
//   - 429: [*RateLimitError], with the Retry-After hint when the header holds integer seconds
//   - 403, 404: [*APIError] decoded from the body, or [*StatusError] when the body is not an error object
//   - anything else: [*StatusError]
//
// Only 403 and 404 bodies are read. Classify does not close the body.
func Classify(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		retryAfter, ok := retryAfterSeconds(resp.Header)
		return &RateLimitError{RetryAfter: retryAfter, HasRetryAfter: ok}
	case http.StatusForbidden, http.StatusNotFound:
		if resp.Body == nil {
			return &StatusError{Code: resp.StatusCode}
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return &StatusError{Code: resp.StatusCode}
		}
		if apiErr, ok := decodeAPIError(body); ok {
			return apiErr
		}
		return &StatusError{Code: resp.StatusCode}
	default:
		return &StatusError{Code: resp.StatusCode}
	}
}

// retryAfterSeconds reads Retry-After as a non-negative integer number of seconds.
// HTTP-date values are not supported by the API and are treated as absent.
func retryAfterSeconds(h http.Header) (time.Duration, bool) {
	value := strings.TrimSpace(h.Get("Retry-After"))
	if value == "" {
		return 0, false
	}
	secs, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

type errorObject struct {
	Status  *int    `json:"status"`
	Message *string `json:"message"`
	Reason  *string `json:"reason"`
}

// decodeAPIError accepts both the bare error object and the {"error": {...}} envelope.
// status and message are required; a reason field makes it a player error.
func decodeAPIError(body []byte) (*APIError, bool) {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}

	payload := body
	if inner := strings.TrimSpace(string(envelope.Error)); strings.HasPrefix(inner, "{") {
		payload = envelope.Error
	}

	var obj errorObject
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, false
	}
	if obj.Status == nil || obj.Message == nil {
		return nil, false
	}

	apiErr := &APIError{Kind: RegularError, Status: *obj.Status, Message: *obj.Message}
	if obj.Reason != nil {
		apiErr.Kind = PlayerError
		apiErr.Reason = *obj.Reason
	}
	return apiErr, true
}
