package services

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapi/internal/models"
)

// NormalizeID returns the bare id for raw, which may be an id, URI or URL, logging to the default logger on a type mismatch.
//
// Mismatched input is returned unchanged so the API can reject it.
func NormalizeID(t models.ResourceType, raw string) string {
	return normalizeID(log.Default(), t, raw)
}

// NormalizeURI returns the spotify:<type>:<id> URI for raw. Applying it twice yields the same URI.
func NormalizeURI(t models.ResourceType, raw string) string {
	return models.URI(t, NormalizeID(t, raw))
}

// NormalizeID is [NormalizeID] logging through the client's logger.
func (c *Client) NormalizeID(t models.ResourceType, raw string) string {
	return normalizeID(c.logger, t, raw)
}

// NormalizeURI is [NormalizeURI] logging through the client's logger.
func (c *Client) NormalizeURI(t models.ResourceType, raw string) string {
	return models.URI(t, c.NormalizeID(t, raw))
}

// normalizeIDs applies [Client.NormalizeID] to each of raw.
func (c *Client) normalizeIDs(t models.ResourceType, raw []string) []string {
	ids := make([]string, len(raw))
	for i, r := range raw {
		ids[i] = c.NormalizeID(t, r)
	}
	return ids
}

// normalizeURIs applies [Client.NormalizeURI] to each of raw.
func (c *Client) normalizeURIs(t models.ResourceType, raw []string) []string {
	uris := make([]string, len(raw))
	for i, r := range raw {
		uris[i] = c.NormalizeURI(t, r)
	}
	return uris
}

func normalizeID(logger *log.Logger, t models.ResourceType, raw string) string {
	id, err := models.ParseID(t, raw)
	var mismatch *models.TypeMismatchError
	if errors.As(err, &mismatch) {
		logger.Warn("expected id of type", "expected", mismatch.Expected, "found", mismatch.Found, "id", raw)
	}
	return id
}
