package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapi/internal/filter"
	"github.com/desertthunder/spotapi/internal/services"
	"github.com/desertthunder/spotapi/internal/shared"
	"github.com/desertthunder/spotapi/internal/ui"
	"github.com/gosimple/slug"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	spotify    *services.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
	getenv     func(string) string

	once      sync.Once
	clientErr error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	// Config skips loading --config when set.
	Config *shared.Config
	// Client skips building a client from Config when set.
	Client     *services.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Palette    *ui.Palette
	// Getenv reads credential overrides. Defaults to [os.Getenv].
	Getenv func(string) string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Palette == nil {
		opts.Palette = ui.Default
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	return &Runner{
		config:     opts.Config,
		spotify:    opts.Client,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    opts.Palette,
		getenv:     opts.Getenv,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		idCommand, uriCommand, apiCommand,
		trackCommand, albumCommand, artistCommand, playlistCommand, searchCommand, meCommand,
		libraryCommand, playerCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "spotapi",
		Usage:   "Call the Spotify Web API from the command line",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.setup,
		Commands: r.register(),
	}
}

// setup loads the configuration and applies the log level before any command runs.
func (r *Runner) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		config, err := loadConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}
	r.config.ApplyEnv(r.getenv)

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	log.SetDefault(r.logger)

	r.logger.Debug("config loaded", "path", cmd.String("config"), "credentials", r.config.Spotify.HasCredentials())

	return ctx, nil
}

// loadConfig reads path, falling back to defaults when the file does not exist.
func loadConfig(path string) (*shared.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return shared.DefaultConfig(), nil
	}
	return shared.LoadConfig(path)
}

// client returns the Spotify client, building it from the configuration on first use.
func (r *Runner) client(ctx context.Context) (*services.Client, error) {
	r.once.Do(func() {
		if r.spotify != nil {
			return
		}
		if r.config == nil {
			r.config = shared.DefaultConfig()
		}

		httpClient := r.httpClient
		if httpClient == nil {
			timeout, err := r.config.HTTP.TimeoutDuration()
			if err != nil {
				r.clientErr = err
				return
			}
			httpClient = &http.Client{Timeout: timeout}
		}

		resolver, err := services.ResolverFromConfig(context.WithoutCancel(ctx), r.config.Spotify, httpClient)
		if err != nil {
			r.clientErr = fmt.Errorf("%w: set spotify.access_token, or client_id and client_secret, in config.toml or the environment", err)
			return
		}

		r.spotify, r.clientErr = services.New(services.Options{
			Prefix:     r.config.Spotify.Prefix,
			Resolver:   resolver,
			HTTPClient: httpClient,
			Logger:     r.logger,
		})
		if r.clientErr == nil {
			r.logger.Debug("client ready", "api", r.spotify.Name(), "prefix", r.spotify.Prefix())
		}
	})
	return r.spotify, r.clientErr
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

// writeFiltered decodes a raw JSON body, applies an optional jq query, and writes the result.
// Non-JSON bodies are written verbatim when no query is given.
func (r *Runner) writeFiltered(raw, query string, pretty bool) error {
	if strings.TrimSpace(raw) == "" && query == "" {
		return nil
	}

	result, err := filter.ApplyToJSON(raw, query)
	if err != nil {
		if query == "" {
			return r.writePlain("%s\n", raw)
		}
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return r.writeJSON(result, pretty)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(b []byte) error {
	if _, err := r.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeOK prints a styled success line.
func (r *Runner) writeOK(format string, args ...any) error {
	return r.writePlain("%s %s\n", r.palette.OK("✓"), fmt.Sprintf(format, args...))
}

// saveJSON writes data to <kind>_<slug(name)>.json in the working directory and returns the file name.
func (r *Runner) saveJSON(kind, name string, data any) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "unnamed"
	}
	file := kind + "_" + base + ".json"

	content, err := shared.MarshalJSON(data, true)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(file, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", file, err)
	}

	r.logger.Info("response saved", "file", file)
	return file, nil
}

// render writes data as JSON with --json and as text otherwise. --save also writes it to a file.
func (r *Runner) render(cmd *cli.Command, kind, name string, data any, text func() []byte) error {
	if cmd.Bool("save") {
		file, err := r.saveJSON(kind, name, data)
		if err != nil {
			return err
		}
		if err := r.writeOK("Saved to %s", file); err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}
	return r.writeBytes(text())
}
