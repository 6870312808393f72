package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/desertthunder/spotapi/internal/services"
	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/desertthunder/spotapi/internal/ui"
)

// hint returns a next step for err, or "" if there is nothing useful to suggest.
func hint(err error) string {
	var rateLimit *services.RateLimitError
	var apiErr *services.APIError

	switch {
	case errors.Is(err, shared.ErrMissingCredentials):
		return "run `spotapi config init` and fill in the [spotify] section, or set " + shared.EnvAccessToken
	case services.IsUnauthorized(err):
		return "the access token is invalid or expired, refresh it and try again"
	case errors.As(err, &rateLimit):
		if rateLimit.HasRetryAfter {
			return fmt.Sprintf("retry after %s", rateLimit.RetryAfter)
		}
		return "wait a moment before retrying"
	case errors.As(err, &apiErr) && apiErr.Kind == services.PlayerError && apiErr.Reason == "NO_ACTIVE_DEVICE":
		return "start playback on a device, or pass --device (see `spotapi player devices`)"
	case errors.As(err, &apiErr) && apiErr.Kind == services.PlayerError && apiErr.Reason == "PREMIUM_REQUIRED":
		return "playback control requires a Spotify Premium account"
	case services.IsTransportError(err):
		return "check your network connection and the spotify.prefix setting"
	case services.IsParseError(err):
		return "the response did not match the expected shape, try `spotapi api get` to inspect it"
	}
	return ""
}

// reportError prints err and its hint to w.
func reportError(w io.Writer, p *ui.Palette, err error) {
	if p == nil {
		p = ui.Default
	}
	fmt.Fprintf(w, "%s %v\n", p.Err("✗"), err)
	if h := hint(err); h != "" {
		fmt.Fprintf(w, "  %s\n", p.Help(h))
	}
}
