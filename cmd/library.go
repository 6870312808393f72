package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotapi/internal/formatter"
	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/urfave/cli/v3"
)

func trackArgs(cmd *cli.Command) ([]string, error) {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one track", shared.ErrMissingArgument)
	}
	return ids, nil
}

// LibrarySaved lists one page of saved tracks.
func (r *Runner) LibrarySaved(ctx context.Context, cmd *cli.Command) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	page, err := client.SavedTracks(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return err
	}
	return r.render(cmd, "saved", "tracks", page, func() []byte { return formatter.SavedTracks(page) })
}

// LibrarySave saves tracks to the library.
func (r *Runner) LibrarySave(ctx context.Context, cmd *cli.Command) error {
	ids, err := trackArgs(cmd)
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	if err := client.SaveTracks(ctx, ids); err != nil {
		return err
	}
	return r.writeOK("Saved %d track(s)", len(ids))
}

// LibraryRemove removes tracks from the library.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	ids, err := trackArgs(cmd)
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	if err := client.RemoveSavedTracks(ctx, ids); err != nil {
		return err
	}
	return r.writeOK("Removed %d track(s)", len(ids))
}

// LibraryContains prints whether each track is saved.
func (r *Runner) LibraryContains(ctx context.Context, cmd *cli.Command) error {
	ids, err := trackArgs(cmd)
	if err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	saved, err := client.SavedTracksContains(ctx, ids)
	if err != nil {
		return err
	}
	for i, id := range ids {
		if i >= len(saved) {
			break
		}
		if err := r.writePlain("%s\t%t\n", id, saved[i]); err != nil {
			return err
		}
	}
	return nil
}
