package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotapi/internal/formatter"
	"github.com/desertthunder/spotapi/internal/services"
	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// Track shows a single track.
func (r *Runner) Track(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	track, err := client.Track(ctx, id)
	if err != nil {
		return err
	}
	return r.render(cmd, "track", track.Name, track, func() []byte { return formatter.Track(track) })
}

// Album shows an album with its first page of tracks.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	album, err := client.Album(ctx, id)
	if err != nil {
		return err
	}
	return r.render(cmd, "album", album.Name, album, func() []byte { return formatter.Album(album) })
}

// Artist shows an artist profile.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	artist, err := client.Artist(ctx, id)
	if err != nil {
		return err
	}
	return r.render(cmd, "artist", artist.Name, artist, func() []byte { return formatter.Artist(artist) })
}

// Playlist shows a playlist as text, CSV or Markdown.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	format := strings.ToLower(cmd.String("format"))
	switch format {
	case "text", "csv", "markdown", "md":
	default:
		return fmt.Errorf("%w: --format must be text, csv or markdown, got %q", shared.ErrInvalidFlag, format)
	}

	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	playlist, err := client.Playlist(ctx, id, "", cmd.String("market"))
	if err != nil {
		return err
	}

	if format == "csv" && !cmd.Bool("json") {
		data, err := formatter.PlaylistCSV(playlist)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	}

	return r.render(cmd, "playlist", playlist.Name, playlist, func() []byte {
		if format == "markdown" || format == "md" {
			return formatter.PlaylistMarkdown(playlist)
		}
		return formatter.Playlist(playlist)
	})
}

// Search queries the catalog.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query, err := requireArg(cmd, "query")
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("searching", "query", query, "type", cmd.String("type"))

	result, err := client.Search(ctx, query, cmd.String("type"), services.SearchOptions{
		Limit:  cmd.Int("limit"),
		Offset: cmd.Int("offset"),
		Market: cmd.String("market"),
	})
	if err != nil {
		return err
	}
	return r.render(cmd, "search", query, result, func() []byte { return formatter.SearchResult(result) })
}

// Me shows the current user's profile.
func (r *Runner) Me(ctx context.Context, cmd *cli.Command) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	me, err := client.Me(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, "user", me.ID, me, func() []byte { return formatter.User(me) })
}
