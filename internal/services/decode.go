package services

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Decode parses a raw success body into T. A failure is a [*ParseError], which points at a mismatch
// between T and the response schema.
func Decode[T any](raw string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &ParseError{Op: "decode response", Err: err}
	}
	return &v, nil
}

// appendDeviceID targets a player command at deviceID. An empty deviceID targets the active device.
func appendDeviceID(path, deviceID string) string {
	if deviceID == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&device_id=" + url.QueryEscape(deviceID)
	}
	return path + "?device_id=" + url.QueryEscape(deviceID)
}
