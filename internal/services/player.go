package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/desertthunder/spotapi/internal/models"
	"github.com/desertthunder/spotapi/internal/shared"
)

// Repeat states accepted by [Client.Repeat].
const (
	RepeatTrack   = "track"
	RepeatContext = "context"
	RepeatOff     = "off"
)

// Player commands take an optional device id. An empty id targets the user's active device.

// Devices lists the user's available playback devices.
func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	raw, err := c.Get(ctx, "me/player/devices", nil)
	if err != nil {
		return nil, err
	}
	resp, err := Decode[models.Devices](raw)
	if err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

// PlaybackOptions describes what [Client.StartPlayback] plays. Set ContextURI or URIs, not both.
type PlaybackOptions struct {
	ContextURI string
	URIs       []string
	Offset     *models.Offset
	PositionMS *int
}

// StartPlayback starts or resumes playback. Empty options resume the current context.
func (c *Client) StartPlayback(ctx context.Context, deviceID string, opts PlaybackOptions) error {
	if opts.ContextURI != "" && len(opts.URIs) > 0 {
		return fmt.Errorf("%w: specify either a context uri or track uris, not both", shared.ErrInvalidArgument)
	}

	payload := map[string]any{}
	if opts.ContextURI != "" {
		payload["context_uri"] = opts.ContextURI
	}
	if len(opts.URIs) > 0 {
		payload["uris"] = c.normalizeURIs(models.TypeTrack, opts.URIs)
	}
	if opts.Offset != nil {
		switch {
		case opts.Offset.Position != nil:
			payload["offset"] = map[string]int{"position": *opts.Offset.Position}
		case opts.Offset.URI != "":
			payload["offset"] = map[string]string{"uri": opts.Offset.URI}
		}
	}
	if opts.PositionMS != nil {
		payload["position_ms"] = *opts.PositionMS
	}

	_, err := c.Put(ctx, appendDeviceID("me/player/play", deviceID), payload)
	return err
}

// PausePlayback pauses playback.
func (c *Client) PausePlayback(ctx context.Context, deviceID string) error {
	_, err := c.Put(ctx, appendDeviceID("me/player/pause", deviceID), map[string]any{})
	return err
}

// NextTrack skips to the next track.
func (c *Client) NextTrack(ctx context.Context, deviceID string) error {
	_, err := c.Post(ctx, appendDeviceID("me/player/next", deviceID), map[string]any{})
	return err
}

// PreviousTrack skips to the previous track.
func (c *Client) PreviousTrack(ctx context.Context, deviceID string) error {
	_, err := c.Post(ctx, appendDeviceID("me/player/previous", deviceID), map[string]any{})
	return err
}

// Seek moves playback to positionMS within the current track.
func (c *Client) Seek(ctx context.Context, positionMS int, deviceID string) error {
	if positionMS < 0 {
		return fmt.Errorf("%w: position must not be negative", shared.ErrInvalidArgument)
	}
	path := appendDeviceID("me/player/seek?position_ms="+strconv.Itoa(positionMS), deviceID)
	_, err := c.Put(ctx, path, map[string]any{})
	return err
}

// SetVolume sets the playback volume, 0 to 100 inclusive.
func (c *Client) SetVolume(ctx context.Context, percent int, deviceID string) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100, inclusive", shared.ErrInvalidArgument)
	}
	path := appendDeviceID("me/player/volume?volume_percent="+strconv.Itoa(percent), deviceID)
	_, err := c.Put(ctx, path, map[string]any{})
	return err
}

// Repeat sets the repeat mode to one of the Repeat* constants.
func (c *Client) Repeat(ctx context.Context, state, deviceID string) error {
	switch state {
	case RepeatTrack, RepeatContext, RepeatOff:
	default:
		return fmt.Errorf("%w: repeat state %q", shared.ErrInvalidArgument, state)
	}
	_, err := c.Put(ctx, appendDeviceID("me/player/repeat?state="+state, deviceID), map[string]any{})
	return err
}

// Shuffle toggles shuffle.
func (c *Client) Shuffle(ctx context.Context, state bool, deviceID string) error {
	path := appendDeviceID("me/player/shuffle?state="+strconv.FormatBool(state), deviceID)
	_, err := c.Put(ctx, path, map[string]any{})
	return err
}

// AddToQueue appends a track to the playback queue.
func (c *Client) AddToQueue(ctx context.Context, trackID, deviceID string) error {
	uri := c.NormalizeURI(models.TypeTrack, trackID)
	path := appendDeviceID("me/player/queue?uri="+url.QueryEscape(uri), deviceID)
	_, err := c.Post(ctx, path, map[string]any{})
	return err
}
