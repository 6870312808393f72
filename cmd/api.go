package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request with --param values as the query
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	params, err := parseParams(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("GET request", "path", path)

	raw, err := client.Dispatch(ctx, http.MethodGet, path, params)
	if err != nil {
		return err
	}
	return r.writeFiltered(raw, cmd.String("query"), cmd.Bool("pretty"))
}

// APISend returns an action that sends --data as the JSON body with the given method
func (r *Runner) APISend(method string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.StringArg("path")
		if path == "" {
			return fmt.Errorf("%w: path", shared.ErrMissingArgument)
		}

		var payload any
		if data := cmd.String("data"); data != "" {
			if err := shared.ValidateJSON([]byte(data)); err != nil {
				return fmt.Errorf("--data: %w", err)
			}
			payload = json.RawMessage(data)
		}

		client, err := r.client(ctx)
		if err != nil {
			return err
		}

		r.logger.Debug(method+" request", "path", path)

		raw, err := client.Dispatch(ctx, method, path, payload)
		if err != nil {
			return err
		}
		return r.writeFiltered(raw, cmd.String("query"), cmd.Bool("pretty"))
	}
}

// parseParams turns key=value pairs into query values. Repeated keys are kept.
func parseParams(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: --param %q must be key=value", shared.ErrInvalidFlag, p)
		}
		params.Add(strings.TrimSpace(key), value)
	}
	return params, nil
}
