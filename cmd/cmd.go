// submodule cmd contains command definitions
package main

import (
	"net/http"

	"github.com/urfave/cli/v3"
)

// outputFlags are shared by commands that print a single API object.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Save API response locally",
		},
	}
}

func deviceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "device",
		Usage: "Target device id (defaults to the active device)",
	}
}

// idCommand normalizes an identifier to its bare id
func idCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "id",
		Usage:     "Print the bare id for an id, URI or URL",
		ArgsUsage: "<type> <id|uri|url>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "type"},
			&cli.StringArg{Name: "raw"},
		},
		Action: r.ID,
	}
}

// uriCommand normalizes an identifier to a spotify URI
func uriCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "uri",
		Usage:     "Print the spotify:<type>:<id> URI for an id, URI or URL",
		ArgsUsage: "<type> <id|uri|url>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "type"},
			&cli.StringArg{Name: "raw"},
		},
		Action: r.URI,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	queryFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "jq expression applied to the response",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		}
	}

	send := func(method string) *cli.Command {
		return &cli.Command{
			Name:      map[string]string{http.MethodPost: "post", http.MethodPut: "put", http.MethodDelete: "delete"}[method],
			Usage:     "Direct " + method + " with a JSON body",
			ArgsUsage: "<path>",
			Arguments: []cli.Argument{
				&cli.StringArg{Name: "path"},
			},
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "data",
					Aliases: []string{"d"},
					Usage:   "JSON body to send",
				},
			}, queryFlags()...),
			Action: r.APISend(method),
		}
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct authenticated calls to the Web API",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints the JSON response",
				ArgsUsage: "<path>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:    "param",
						Aliases: []string{"p"},
						Usage:   "Query parameter as key=value (repeatable)",
					},
				}, queryFlags()...),
				Action: r.APIGet,
			},
			send(http.MethodPost),
			send(http.MethodPut),
			send(http.MethodDelete),
		},
	}
}

func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Show a track",
		ArgsUsage: "<id|uri|url>",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     outputFlags(),
		Action:    r.Track,
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Show an album and its tracks",
		ArgsUsage: "<id|uri|url>",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     outputFlags(),
		Action:    r.Album,
	}
}

func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artist",
		Usage:     "Show an artist",
		ArgsUsage: "<id|uri|url>",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     outputFlags(),
		Action:    r.Artist,
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playlist",
		Usage:     "Show a playlist",
		ArgsUsage: "<id|uri|url>",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Text output format: text, csv or markdown",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:  "market",
				Usage: "ISO 3166-1 country code",
			},
		),
		Action: r.Playlist,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Comma-separated item types: track, artist, album, playlist",
				Value:   "track",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results per type",
				Value: 10,
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Index of the first result",
			},
			&cli.StringFlag{
				Name:  "market",
				Usage: "ISO 3166-1 country code",
			},
		),
		Action: r.Search,
	}
}

func meCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "me",
		Usage:  "Show the current user's profile",
		Flags:  outputFlags(),
		Action: r.Me,
	}
}

// libraryCommand handles the user's saved tracks
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Saved tracks",
		Commands: []*cli.Command{
			{
				Name:  "saved",
				Usage: "List saved tracks",
				Flags: append(outputFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to return",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Index of the first track",
					},
				),
				Action: r.LibrarySaved,
			},
			{
				Name:      "save",
				Usage:     "Save tracks to the library",
				ArgsUsage: "<track>...",
				Action:    r.LibrarySave,
			},
			{
				Name:      "remove",
				Usage:     "Remove tracks from the library",
				ArgsUsage: "<track>...",
				Action:    r.LibraryRemove,
			},
			{
				Name:      "contains",
				Usage:     "Check whether tracks are saved",
				ArgsUsage: "<track>...",
				Action:    r.LibraryContains,
			},
		},
	}
}

// playerCommand handles playback control
func playerCommand(r *Runner) *cli.Command {
	simple := func(name, usage string, action cli.ActionFunc) *cli.Command {
		return &cli.Command{
			Name:   name,
			Usage:  usage,
			Flags:  []cli.Flag{deviceFlag()},
			Action: action,
		}
	}
	withArg := func(name, usage, arg string, action cli.ActionFunc) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: "<" + arg + ">",
			Arguments: []cli.Argument{&cli.StringArg{Name: arg}},
			Flags:     []cli.Flag{deviceFlag()},
			Action:    action,
		}
	}

	return &cli.Command{
		Name:  "player",
		Usage: "Playback control",
		Commands: []*cli.Command{
			{
				Name:   "devices",
				Usage:  "List available devices",
				Flags:  outputFlags(),
				Action: r.PlayerDevices,
			},
			{
				Name:      "play",
				Usage:     "Start or resume playback of a context or of tracks",
				ArgsUsage: "[track]...",
				Flags: []cli.Flag{
					deviceFlag(),
					&cli.StringFlag{
						Name:  "context",
						Usage: "Album, artist or playlist URI to play",
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Zero-based position in the context to start from",
						Value: -1,
					},
					&cli.IntFlag{
						Name:  "position-ms",
						Usage: "Position within the first track",
						Value: -1,
					},
				},
				Action: r.PlayerPlay,
			},
			simple("pause", "Pause playback", r.PlayerPause),
			simple("next", "Skip to the next track", r.PlayerNext),
			simple("previous", "Skip to the previous track", r.PlayerPrevious),
			withArg("seek", "Seek to a position in milliseconds", "position-ms", r.PlayerSeek),
			withArg("volume", "Set the volume, 0 to 100", "percent", r.PlayerVolume),
			withArg("repeat", "Set repeat mode: track, context or off", "state", r.PlayerRepeat),
			withArg("shuffle", "Turn shuffle on or off", "state", r.PlayerShuffle),
			withArg("queue", "Add a track to the queue", "track", r.PlayerQueue),
		},
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
