package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotapi/internal/models"
)

// SavedTracks retrieves one page of the user's saved tracks. limit is clamped to 1..50 and defaults to 20.
func (c *Client) SavedTracks(ctx context.Context, limit, offset int) (*models.Page[models.SavedTrack], error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	raw, err := c.Get(ctx, "me/tracks", map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	})
	if err != nil {
		return nil, err
	}
	return Decode[models.Page[models.SavedTrack]](raw)
}

// SaveTracks adds tracks to the user's library.
func (c *Client) SaveTracks(ctx context.Context, trackIDs []string) error {
	if err := checkSeveral(trackIDs); err != nil {
		return err
	}
	ids := c.normalizeIDs(models.TypeTrack, trackIDs)
	_, err := c.Put(ctx, "me/tracks/?ids="+strings.Join(ids, ","), map[string]any{})
	return err
}

// RemoveSavedTracks removes tracks from the user's library.
func (c *Client) RemoveSavedTracks(ctx context.Context, trackIDs []string) error {
	if err := checkSeveral(trackIDs); err != nil {
		return err
	}
	ids := c.normalizeIDs(models.TypeTrack, trackIDs)
	_, err := c.Delete(ctx, "me/tracks/?ids="+strings.Join(ids, ","), map[string]any{})
	return err
}

// SavedTracksContains reports, per id, whether the track is in the user's library.
func (c *Client) SavedTracksContains(ctx context.Context, trackIDs []string) ([]bool, error) {
	if err := checkSeveral(trackIDs); err != nil {
		return nil, err
	}
	ids := c.normalizeIDs(models.TypeTrack, trackIDs)
	raw, err := c.Get(ctx, "me/tracks/contains/?ids="+strings.Join(ids, ","), nil)
	if err != nil {
		return nil, err
	}
	contains, err := Decode[[]bool](raw)
	if err != nil {
		return nil, err
	}
	return *contains, nil
}

// PlaylistAddTracks appends tracks to a playlist, or inserts them at position when it is non-nil.
func (c *Client) PlaylistAddTracks(ctx context.Context, playlistID string, trackIDs []string, position *int) (*models.SnapshotResult, error) {
	payload := map[string]any{
		"uris": c.normalizeURIs(models.TypeTrack, trackIDs),
	}
	if position != nil {
		payload["position"] = *position
	}

	path := fmt.Sprintf("playlists/%s/tracks", c.NormalizeID(models.TypePlaylist, playlistID))
	raw, err := c.Post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	return Decode[models.SnapshotResult](raw)
}

// PlaylistRemoveTracks removes every occurrence of the tracks from a playlist. An empty snapshotID targets the latest snapshot.
func (c *Client) PlaylistRemoveTracks(ctx context.Context, playlistID string, trackIDs []string, snapshotID string) (*models.SnapshotResult, error) {
	tracks := make([]map[string]string, 0, len(trackIDs))
	for _, uri := range c.normalizeURIs(models.TypeTrack, trackIDs) {
		tracks = append(tracks, map[string]string{"uri": uri})
	}

	payload := map[string]any{"tracks": tracks}
	if snapshotID != "" {
		payload["snapshot_id"] = snapshotID
	}

	path := fmt.Sprintf("playlists/%s/tracks", c.NormalizeID(models.TypePlaylist, playlistID))
	raw, err := c.Delete(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	return Decode[models.SnapshotResult](raw)
}
