// Spotify Web API response objects, based on https://developer.spotify.com/documentation/web-api/reference/
package models

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type Followers struct {
	Total int `json:"total"`
}

type ExternalIDs struct {
	ISRC string `json:"isrc,omitempty"`
	EAN  string `json:"ean,omitempty"`
	UPC  string `json:"upc,omitempty"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// SimpleArtist is the artist object embedded in tracks and albums.
type SimpleArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	URI          string       `json:"uri"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Artist is the full artist object.
type Artist struct {
	SimpleArtist
	Genres     []string  `json:"genres"`
	Images     []Image   `json:"images"`
	Followers  Followers `json:"followers"`
	Popularity int       `json:"popularity"`
}

// SimpleAlbum is the album object embedded in tracks and artist album listings.
type SimpleAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	AlbumType   string         `json:"album_type"`
	Artists     []SimpleArtist `json:"artists"`
	ReleaseDate string         `json:"release_date"`
	TotalTracks int            `json:"total_tracks"`
	Images      []Image        `json:"images"`
	URI         string         `json:"uri"`
}

// Album is the full album object.
type Album struct {
	SimpleAlbum
	Genres      []string          `json:"genres"`
	Label       string            `json:"label"`
	Popularity  int               `json:"popularity"`
	ExternalIDs ExternalIDs       `json:"external_ids"`
	Tracks      Page[SimpleTrack] `json:"tracks"`
}

// SimpleTrack is the track object returned inside album track listings.
type SimpleTrack struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Artists     []SimpleArtist `json:"artists"`
	DiscNumber  int            `json:"disc_number"`
	TrackNumber int            `json:"track_number"`
	DurationMS  int            `json:"duration_ms"`
	Explicit    bool           `json:"explicit"`
	PreviewURL  *string        `json:"preview_url"`
	URI         string         `json:"uri"`
}

// Track is the full track object.
type Track struct {
	SimpleTrack
	Album       SimpleAlbum `json:"album"`
	ExternalIDs ExternalIDs `json:"external_ids"`
	Popularity  int         `json:"popularity"`
}

// Tracks wraps the several-tracks response.
type Tracks struct {
	Tracks []Track `json:"tracks"`
}

// SavedTrack represents a track saved in the user's library.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// PlaylistTrack represents a track within a playlist context.
type PlaylistTrack struct {
	AddedAt string `json:"added_at"`
	IsLocal bool   `json:"is_local"`
	Track   *Track `json:"track"`
}

// Owner is the playlist owner as embedded in playlist objects.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplePlaylist represents a simplified playlist object (used in lists).
type SimplePlaylist struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Owner         Owner             `json:"owner"`
	Public        bool              `json:"public"`
	Collaborative bool              `json:"collaborative"`
	SnapshotID    string            `json:"snapshot_id"`
	Tracks        playlistTracksRef `json:"tracks"`
	Images        []Image           `json:"images"`
	URI           string            `json:"uri"`
}

// Playlist represents a full playlist object.
type Playlist struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Owner         Owner               `json:"owner"`
	Public        bool                `json:"public"`
	Collaborative bool                `json:"collaborative"`
	SnapshotID    string              `json:"snapshot_id"`
	Followers     Followers           `json:"followers"`
	Tracks        Page[PlaylistTrack] `json:"tracks"`
	Images        []Image             `json:"images"`
	URI           string              `json:"uri"`
}

// SnapshotResult is returned by playlist create/update/delete endpoints.
type SnapshotResult struct {
	SnapshotID string `json:"snapshot_id"`
}

// PublicUser represents another user's public profile.
type PublicUser struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Followers   Followers `json:"followers"`
	Images      []Image   `json:"images"`
	URI         string    `json:"uri"`
}

// PrivateUser represents the current user's profile.
type PrivateUser struct {
	PublicUser
	Email   string `json:"email"`
	Country string `json:"country"`
	Product string `json:"product"` // premium, free, etc.
}

// Page is the offset-based paging object shared by list endpoints.
type Page[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// SearchResult holds one page per requested search type. Unrequested types are nil.
type SearchResult struct {
	Tracks    *Page[Track]          `json:"tracks,omitempty"`
	Artists   *Page[Artist]         `json:"artists,omitempty"`
	Albums    *Page[SimpleAlbum]    `json:"albums,omitempty"`
	Playlists *Page[SimplePlaylist] `json:"playlists,omitempty"`
}

// Device is a playback target.
type Device struct {
	ID            string `json:"id"`
	IsActive      bool   `json:"is_active"`
	IsRestricted  bool   `json:"is_restricted"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	VolumePercent *int   `json:"volume_percent"`
}

// Devices wraps the available-devices response.
type Devices struct {
	Devices []Device `json:"devices"`
}

// Offset selects where playback starts inside a context: by Position or by track URI.
type Offset struct {
	Position *int   `json:"position,omitempty"`
	URI      string `json:"uri,omitempty"`
}
