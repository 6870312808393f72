package models

import (
	"errors"
	"fmt"
	"strings"
)

// ResourceType tags the kind of catalog entity an identifier refers to.
type ResourceType int

const (
	TypeArtist ResourceType = iota
	TypeAlbum
	TypeTrack
	TypePlaylist
	TypeUser
	TypeShow
	TypeEpisode
)

var resourceNames = [...]string{
	TypeArtist:   "artist",
	TypeAlbum:    "album",
	TypeTrack:    "track",
	TypePlaylist: "playlist",
	TypeUser:     "user",
	TypeShow:     "show",
	TypeEpisode:  "episode",
}

var ErrUnknownResourceType = errors.New("unknown resource type")

// String returns the canonical form used inside URIs and URLs.
func (t ResourceType) String() string {
	if t < 0 || int(t) >= len(resourceNames) {
		return fmt.Sprintf("ResourceType(%d)", int(t))
	}
	return resourceNames[t]
}

// ResourceTypes returns every known type in declaration order.
func ResourceTypes() []ResourceType {
	types := make([]ResourceType, len(resourceNames))
	for i := range resourceNames {
		types[i] = ResourceType(i)
	}
	return types
}

// ParseResourceType parses a canonical type name, ignoring case and surrounding space.
func ParseResourceType(s string) (ResourceType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range resourceNames {
		if n == name {
			return ResourceType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResourceType, s)
}

// TypeMismatchError is returned by [ParseID] when raw looks like a URI or URL for a different resource type.
type TypeMismatchError struct {
	Expected ResourceType
	Found    string
	Raw      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected id of type %s but found type %s in %q", e.Expected, e.Found, e.Raw)
}

// ParseID extracts the bare id from raw, which may be a bare id, a colon-delimited URI
// (spotify:track:ID) or a slash-delimited URL (https://open.spotify.com/track/ID).
//
// Both delimiters are tried in that order. When a split yields at least three segments the
// second-to-last must equal t; the last segment is then returned. If no split matches, raw is
// returned unchanged, along with a [*TypeMismatchError] when a split had the URI shape.
func ParseID(t ResourceType, raw string) (string, error) {
	var mismatch *TypeMismatchError
	for _, sep := range []string{":", "/"} {
		fields := strings.Split(raw, sep)
		n := len(fields)
		if n < 3 {
			continue
		}
		if fields[n-2] == t.String() {
			return fields[n-1], nil
		}
		if mismatch == nil {
			mismatch = &TypeMismatchError{Expected: t, Found: fields[n-2], Raw: raw}
		}
	}
	if mismatch != nil {
		return raw, mismatch
	}
	return raw, nil
}

// URI joins t and id into spotify:<type>:<id> without inspecting id.
func URI(t ResourceType, id string) string {
	return "spotify:" + t.String() + ":" + id
}
