package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotapi/internal/models"
	"github.com/desertthunder/spotapi/internal/shared"
)

// MaxSeveral is the most ids the several-items endpoints accept in one call.
const MaxSeveral = 50

// Item types accepted by [Client.Search]. Join several with commas.
const (
	SearchTracks    = "track"
	SearchArtists   = "artist"
	SearchAlbums    = "album"
	SearchPlaylists = "playlist"
)

// Track retrieves a single track given its id, URI or URL.
func (c *Client) Track(ctx context.Context, trackID string) (*models.Track, error) {
	raw, err := c.Get(ctx, "tracks/"+c.NormalizeID(models.TypeTrack, trackID), nil)
	if err != nil {
		return nil, err
	}
	return Decode[models.Track](raw)
}

// Tracks retrieves up to [MaxSeveral] tracks. An empty market is omitted.
func (c *Client) Tracks(ctx context.Context, trackIDs []string, market string) ([]models.Track, error) {
	if err := checkSeveral(trackIDs); err != nil {
		return nil, err
	}

	ids := c.normalizeIDs(models.TypeTrack, trackIDs)
	params := map[string]string{}
	if market != "" {
		params["market"] = market
	}

	raw, err := c.Get(ctx, "tracks/?ids="+strings.Join(ids, ","), params)
	if err != nil {
		return nil, err
	}

	resp, err := Decode[models.Tracks](raw)
	if err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// Artist retrieves a single artist given its id, URI or URL.
func (c *Client) Artist(ctx context.Context, artistID string) (*models.Artist, error) {
	raw, err := c.Get(ctx, "artists/"+c.NormalizeID(models.TypeArtist, artistID), nil)
	if err != nil {
		return nil, err
	}
	return Decode[models.Artist](raw)
}

// Album retrieves a single album given its id, URI or URL.
func (c *Client) Album(ctx context.Context, albumID string) (*models.Album, error) {
	raw, err := c.Get(ctx, "albums/"+c.NormalizeID(models.TypeAlbum, albumID), nil)
	if err != nil {
		return nil, err
	}
	return Decode[models.Album](raw)
}

// AlbumTracks retrieves one page of an album's tracks. A non-positive limit defaults to 50.
func (c *Client) AlbumTracks(ctx context.Context, albumID string, limit, offset int) (*models.Page[models.SimpleTrack], error) {
	if limit <= 0 {
		limit = 50
	}

	path := fmt.Sprintf("albums/%s/tracks", c.NormalizeID(models.TypeAlbum, albumID))
	raw, err := c.Get(ctx, path, map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	})
	if err != nil {
		return nil, err
	}
	return Decode[models.Page[models.SimpleTrack]](raw)
}

// Playlist retrieves a playlist. fields and market are omitted when empty.
func (c *Client) Playlist(ctx context.Context, playlistID, fields, market string) (*models.Playlist, error) {
	params := map[string]string{}
	if fields != "" {
		params["fields"] = fields
	}
	if market != "" {
		params["market"] = market
	}

	raw, err := c.Get(ctx, "playlists/"+c.NormalizeID(models.TypePlaylist, playlistID), params)
	if err != nil {
		return nil, err
	}
	return Decode[models.Playlist](raw)
}

// User retrieves a user's public profile.
func (c *Client) User(ctx context.Context, userID string) (*models.PublicUser, error) {
	raw, err := c.Get(ctx, "users/"+c.NormalizeID(models.TypeUser, userID), nil)
	if err != nil {
		return nil, err
	}
	return Decode[models.PublicUser](raw)
}

// Me retrieves the current user's profile.
func (c *Client) Me(ctx context.Context) (*models.PrivateUser, error) {
	raw, err := c.Get(ctx, "me/", nil)
	if err != nil {
		return nil, err
	}
	return Decode[models.PrivateUser](raw)
}

// SearchOptions narrows [Client.Search]. Zero values take the API defaults, except Limit which defaults to 10.
type SearchOptions struct {
	Limit           int
	Offset          int
	Market          string
	IncludeExternal string
}

// Search queries the catalog for q. searchType is one or more of the Search* constants joined by commas.
func (c *Client) Search(ctx context.Context, q, searchType string, opts SearchOptions) (*models.SearchResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrMissingArgument)
	}
	if searchType == "" {
		searchType = SearchTracks
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	params := map[string]string{
		"q":      q,
		"type":   searchType,
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(opts.Offset),
	}
	if opts.Market != "" {
		params["market"] = opts.Market
	}
	if opts.IncludeExternal != "" {
		params["include_external"] = opts.IncludeExternal
	}

	raw, err := c.Get(ctx, "search", params)
	if err != nil {
		return nil, err
	}
	return Decode[models.SearchResult](raw)
}

func checkSeveral(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no ids provided", shared.ErrMissingArgument)
	}
	if len(ids) > MaxSeveral {
		return fmt.Errorf("%w: maximum %d ids allowed, got %d", shared.ErrInvalidArgument, MaxSeveral, len(ids))
	}
	return nil
}
