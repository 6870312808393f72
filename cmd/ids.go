package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotapi/internal/models"
	"github.com/desertthunder/spotapi/internal/resolve"
	"github.com/desertthunder/spotapi/internal/services"
	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/urfave/cli/v3"
)

// ID prints the bare id for an id, URI or URL.
func (r *Runner) ID(ctx context.Context, cmd *cli.Command) error {
	rt, raw, err := idArgs(cmd)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", services.NormalizeID(rt, raw))
}

// URI prints the spotify URI for an id, URI or URL.
func (r *Runner) URI(ctx context.Context, cmd *cli.Command) error {
	rt, raw, err := idArgs(cmd)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", services.NormalizeURI(rt, raw))
}

func idArgs(cmd *cli.Command) (models.ResourceType, string, error) {
	typeName := cmd.StringArg("type")
	raw := cmd.StringArg("raw")
	if typeName == "" || raw == "" {
		return 0, "", fmt.Errorf("%w: usage: %s <type> <id|uri|url>", shared.ErrMissingArgument, cmd.Name)
	}

	rt, err := parseResourceType(typeName)
	if err != nil {
		return 0, "", err
	}
	return rt, raw, nil
}

// parseResourceType parses name, suggesting close type names when it is unknown.
func parseResourceType(name string) (models.ResourceType, error) {
	rt, err := models.ParseResourceType(name)
	if err == nil {
		return rt, nil
	}

	types := models.ResourceTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	suggestions, _ := resolve.Suggest(name, names)
	return 0, fmt.Errorf("%w: %w", shared.ErrInvalidArgument, &resolve.UnknownError{
		Kind:        "resource type",
		Name:        name,
		Suggestions: suggestions,
	})
}
