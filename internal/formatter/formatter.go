// package formatter renders catalog objects as plain text, CSV, or Markdown
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotapi/internal/models"
)

// FormatDuration renders milliseconds as m:ss, or h:mm:ss past an hour.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// VisibilityString returns "Public" or "Private".
func VisibilityString(public bool) string {
	if public {
		return "Public"
	}
	return "Private"
}

// ArtistNames joins artist names with commas.
func ArtistNames(artists []models.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// TrackLine is the one-line form "Artist - Title [m:ss]".
func TrackLine(t models.SimpleTrack) string {
	return fmt.Sprintf("%s - %s [%s]", ArtistNames(t.Artists), t.Name, FormatDuration(t.DurationMS))
}

// Track renders a track with its album and identifiers.
func Track(t *models.Track) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Track: %s\n", t.Name)
	fmt.Fprintf(&buf, "Artists: %s\n", ArtistNames(t.Artists))
	if t.Album.Name != "" {
		fmt.Fprintf(&buf, "Album: %s\n", t.Album.Name)
	}
	fmt.Fprintf(&buf, "Duration: %s\n", FormatDuration(t.DurationMS))
	if t.Explicit {
		buf.WriteString("Explicit: yes\n")
	}
	if t.ExternalIDs.ISRC != "" {
		fmt.Fprintf(&buf, "ISRC: %s\n", t.ExternalIDs.ISRC)
	}
	fmt.Fprintf(&buf, "URI: %s\n", models.URI(models.TypeTrack, t.ID))
	return buf.Bytes()
}

// Album renders an album header followed by its first page of tracks.
func Album(a *models.Album) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Album: %s\n", a.Name)
	fmt.Fprintf(&buf, "Artists: %s\n", ArtistNames(a.Artists))
	if a.ReleaseDate != "" {
		fmt.Fprintf(&buf, "Released: %s\n", a.ReleaseDate)
	}
	if a.Label != "" {
		fmt.Fprintf(&buf, "Label: %s\n", a.Label)
	}
	fmt.Fprintf(&buf, "Tracks: %d\n", a.TotalTracks)

	if len(a.Tracks.Items) > 0 {
		buf.WriteString("\n")
		for _, t := range a.Tracks.Items {
			fmt.Fprintf(&buf, "%2d. %s\n", t.TrackNumber, TrackLine(t))
		}
	}
	return buf.Bytes()
}

// Artist renders an artist profile.
func Artist(a *models.Artist) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Artist: %s\n", a.Name)
	if len(a.Genres) > 0 {
		fmt.Fprintf(&buf, "Genres: %s\n", strings.Join(a.Genres, ", "))
	}
	fmt.Fprintf(&buf, "Followers: %d\n", a.Followers.Total)
	fmt.Fprintf(&buf, "Popularity: %d\n", a.Popularity)
	fmt.Fprintf(&buf, "URI: %s\n", models.URI(models.TypeArtist, a.ID))
	return buf.Bytes()
}

// Playlist renders a playlist header and numbered track list. Local and missing tracks are skipped.
func Playlist(p *models.Playlist) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Playlist: %s\n", p.Name)
	if p.Owner.DisplayName != "" {
		fmt.Fprintf(&buf, "Owner: %s\n", p.Owner.DisplayName)
	}
	if p.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(&buf, "Visibility: %s\n", VisibilityString(p.Public))
	fmt.Fprintf(&buf, "Tracks: %d\n\n", p.Tracks.Total)

	for i, t := range playlistTracks(p) {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, TrackLine(t.SimpleTrack))
	}
	return buf.Bytes()
}

// PlaylistCSV writes the playlist tracks with columns: ID, Title, Artist, Album, Duration, ISRC
func PlaylistCSV(p *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "ISRC"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range playlistTracks(p) {
		record := []string{
			t.ID,
			t.Name,
			ArtistNames(t.Artists),
			t.Album.Name,
			strconv.Itoa(t.DurationMS / 1000),
			t.ExternalIDs.ISRC,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PlaylistMarkdown renders the playlist as a Markdown document, with its first image as the cover.
func PlaylistMarkdown(p *models.Playlist) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", p.Name)
	if len(p.Images) > 0 && p.Images[0].URL != "" {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", p.Images[0].URL)
	}
	if p.Description != "" {
		fmt.Fprintf(&buf, "**Description**: %s\n\n", p.Description)
	}

	tracks := playlistTracks(p)
	fmt.Fprintf(&buf, "**Tracks**: %d\n", len(tracks))
	fmt.Fprintf(&buf, "**Visibility**: %s\n\n", VisibilityString(p.Public))

	buf.WriteString("## Tracks\n\n")
	for i, t := range tracks {
		albumPart := ""
		if t.Album.Name != "" {
			albumPart = fmt.Sprintf(" (%s)", t.Album.Name)
		}
		fmt.Fprintf(&buf, "%d. %s - %s%s [%s]\n", i+1, ArtistNames(t.Artists), t.Name, albumPart, FormatDuration(t.DurationMS))
	}

	return buf.Bytes()
}

// User renders the current user's profile.
func User(u *models.PrivateUser) []byte {
	var buf bytes.Buffer
	name := u.DisplayName
	if name == "" {
		name = u.ID
	}
	fmt.Fprintf(&buf, "User: %s\n", name)
	fmt.Fprintf(&buf, "ID: %s\n", u.ID)
	if u.Country != "" {
		fmt.Fprintf(&buf, "Country: %s\n", u.Country)
	}
	if u.Product != "" {
		fmt.Fprintf(&buf, "Product: %s\n", u.Product)
	}
	fmt.Fprintf(&buf, "Followers: %d\n", u.Followers.Total)
	return buf.Bytes()
}

// SearchResult renders each section that is present in the result.
func SearchResult(r *models.SearchResult) []byte {
	var buf bytes.Buffer
	if r.Tracks != nil {
		fmt.Fprintf(&buf, "Tracks (%d)\n", r.Tracks.Total)
		for _, t := range r.Tracks.Items {
			fmt.Fprintf(&buf, "  %s  %s\n", TrackLine(t.SimpleTrack), models.URI(models.TypeTrack, t.ID))
		}
	}
	if r.Artists != nil {
		fmt.Fprintf(&buf, "Artists (%d)\n", r.Artists.Total)
		for _, a := range r.Artists.Items {
			fmt.Fprintf(&buf, "  %s  %s\n", a.Name, models.URI(models.TypeArtist, a.ID))
		}
	}
	if r.Albums != nil {
		fmt.Fprintf(&buf, "Albums (%d)\n", r.Albums.Total)
		for _, a := range r.Albums.Items {
			fmt.Fprintf(&buf, "  %s - %s  %s\n", ArtistNames(a.Artists), a.Name, models.URI(models.TypeAlbum, a.ID))
		}
	}
	if r.Playlists != nil {
		fmt.Fprintf(&buf, "Playlists (%d)\n", r.Playlists.Total)
		for _, p := range r.Playlists.Items {
			fmt.Fprintf(&buf, "  %s by %s  %s\n", p.Name, p.Owner.DisplayName, models.URI(models.TypePlaylist, p.ID))
		}
	}
	if buf.Len() == 0 {
		buf.WriteString("No results\n")
	}
	return buf.Bytes()
}

// SavedTracks renders one page of the user's library, numbered from the page offset.
func SavedTracks(page *models.Page[models.SavedTrack]) []byte {
	var buf bytes.Buffer
	for i, s := range page.Items {
		fmt.Fprintf(&buf, "%d. %s\n", page.Offset+i+1, TrackLine(s.Track.SimpleTrack))
	}
	fmt.Fprintf(&buf, "\nShowing %d of %d\n", len(page.Items), page.Total)
	return buf.Bytes()
}

// Devices renders the available playback devices, marking the active one.
func Devices(devices []models.Device) []byte {
	var buf bytes.Buffer
	if len(devices) == 0 {
		buf.WriteString("No devices available\n")
		return buf.Bytes()
	}
	for _, d := range devices {
		marker := " "
		if d.IsActive {
			marker = "*"
		}
		volume := "-"
		if d.VolumePercent != nil {
			volume = strconv.Itoa(*d.VolumePercent) + "%"
		}
		fmt.Fprintf(&buf, "%s %s (%s) volume %s  id=%s\n", marker, d.Name, d.Type, volume, d.ID)
	}
	return buf.Bytes()
}

func playlistTracks(p *models.Playlist) []models.Track {
	tracks := make([]models.Track, 0, len(p.Tracks.Items))
	for _, item := range p.Tracks.Items {
		if item.Track == nil || item.IsLocal {
			continue
		}
		tracks = append(tracks, *item.Track)
	}
	return tracks
}
