package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotapi/internal/formatter"
	"github.com/desertthunder/spotapi/internal/models"
	"github.com/desertthunder/spotapi/internal/services"
	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlayerDevices lists playback devices.
func (r *Runner) PlayerDevices(ctx context.Context, cmd *cli.Command) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	devices, err := client.Devices(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, "devices", "devices", devices, func() []byte { return formatter.Devices(devices) })
}

// PlayerPlay starts playback of --context or of the track arguments, or resumes when neither is given.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	opts := services.PlaybackOptions{
		ContextURI: cmd.String("context"),
		URIs:       cmd.Args().Slice(),
	}
	if offset := cmd.Int("offset"); offset >= 0 {
		opts.Offset = &models.Offset{Position: &offset}
	}
	if ms := cmd.Int("position-ms"); ms >= 0 {
		opts.PositionMS = &ms
	}

	client, err := r.client(ctx)
	if err != nil {
		return err
	}
	if err := client.StartPlayback(ctx, cmd.String("device"), opts); err != nil {
		return err
	}
	return r.writeOK("Playing")
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	return r.playerCall(ctx, "Paused", func(c *services.Client) error {
		return c.PausePlayback(ctx, cmd.String("device"))
	})
}

// PlayerNext skips forward.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	return r.playerCall(ctx, "Skipped to next track", func(c *services.Client) error {
		return c.NextTrack(ctx, cmd.String("device"))
	})
}

// PlayerPrevious skips back.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	return r.playerCall(ctx, "Skipped to previous track", func(c *services.Client) error {
		return c.PreviousTrack(ctx, cmd.String("device"))
	})
}

// PlayerSeek seeks within the current track.
func (r *Runner) PlayerSeek(ctx context.Context, cmd *cli.Command) error {
	ms, err := intArg(cmd, "position-ms")
	if err != nil {
		return err
	}
	return r.playerCall(ctx, "Seeked to "+formatter.FormatDuration(ms), func(c *services.Client) error {
		return c.Seek(ctx, ms, cmd.String("device"))
	})
}

// PlayerVolume sets the volume.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	percent, err := intArg(cmd, "percent")
	if err != nil {
		return err
	}
	return r.playerCall(ctx, fmt.Sprintf("Volume set to %d%%", percent), func(c *services.Client) error {
		return c.SetVolume(ctx, percent, cmd.String("device"))
	})
}

// PlayerRepeat sets the repeat mode.
func (r *Runner) PlayerRepeat(ctx context.Context, cmd *cli.Command) error {
	state, err := requireArg(cmd, "state")
	if err != nil {
		return err
	}
	state = strings.ToLower(state)
	return r.playerCall(ctx, "Repeat "+state, func(c *services.Client) error {
		return c.Repeat(ctx, state, cmd.String("device"))
	})
}

// PlayerShuffle toggles shuffle. Accepts on/off as well as anything [strconv.ParseBool] does.
func (r *Runner) PlayerShuffle(ctx context.Context, cmd *cli.Command) error {
	value, err := requireArg(cmd, "state")
	if err != nil {
		return err
	}

	var state bool
	switch strings.ToLower(value) {
	case "on":
		state = true
	case "off":
		state = false
	default:
		state, err = strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: shuffle state %q", shared.ErrInvalidArgument, value)
		}
	}

	label := "Shuffle off"
	if state {
		label = "Shuffle on"
	}
	return r.playerCall(ctx, label, func(c *services.Client) error {
		return c.Shuffle(ctx, state, cmd.String("device"))
	})
}

// PlayerQueue adds a track to the queue.
func (r *Runner) PlayerQueue(ctx context.Context, cmd *cli.Command) error {
	track, err := requireArg(cmd, "track")
	if err != nil {
		return err
	}
	return r.playerCall(ctx, "Queued "+services.NormalizeURI(models.TypeTrack, track), func(c *services.Client) error {
		return c.AddToQueue(ctx, track, cmd.String("device"))
	})
}

func (r *Runner) playerCall(ctx context.Context, done string, call func(*services.Client) error) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}
	if err := call(client); err != nil {
		return err
	}
	return r.writeOK("%s", done)
}

func intArg(cmd *cli.Command, name string) (int, error) {
	value, err := requireArg(cmd, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", shared.ErrInvalidArgument, name, value)
	}
	return n, nil
}
