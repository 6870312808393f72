package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/spotapi/internal/resolve"
	"github.com/desertthunder/spotapi/internal/services"
	"github.com/desertthunder/spotapi/internal/shared"
	tu "github.com/desertthunder/spotapi/internal/testing"
	"github.com/desertthunder/spotapi/internal/ui"
)

const trackBody = `{"id":"4iV5W9uYEdYUVa79Axb7Rh","name":"Never Gonna Give You Up","duration_ms":213000,"artists":[{"id":"a1","name":"Rick Astley"}],"album":{"name":"Whenever You Need Somebody"}}`

const playlistBody = `{"id":"p1","name":"Road Trip","public":true,"owner":{"display_name":"Bob"},"tracks":{"total":1,"items":[{"track":{"id":"t1","name":"Song","duration_ms":61000,"artists":[{"name":"A"}],"album":{"name":"LP"},"external_ids":{"isrc":"X1"}}}]}}`

func TestIdentifierCommands(t *testing.T) {
	tt := []struct {
		name string
		args []string
		want string
	}{
		{name: "id from uri", args: []string{"id", "track", "spotify:track:4iV5W9uYEdYUVa79Axb7Rh"}, want: "4iV5W9uYEdYUVa79Axb7Rh\n"},
		{name: "id from url", args: []string{"id", "album", "https://open.spotify.com/album/1DFixLWuPkv3KT3TnV35m3"}, want: "1DFixLWuPkv3KT3TnV35m3\n"},
		{name: "uri from id", args: []string{"uri", "artist", "0OdUWJ0sBjDrqHygGUXeCF"}, want: "spotify:artist:0OdUWJ0sBjDrqHygGUXeCF\n"},
		{name: "mismatch passes through", args: []string{"id", "artist", "spotify:album:1DFixLWuPkv3KT3TnV35m3"}, want: "spotify:album:1DFixLWuPkv3KT3TnV35m3\n"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			runner, rt, output := newTestRunner(t, http.StatusOK, `{}`)

			if err := run(runner, tc.args...); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, output.String())
			}
			if len(rt.Requests()) != 0 {
				t.Error("expected no requests")
			}
		})
	}

	t.Run("unknown type suggests", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusOK, `{}`)

		err := run(runner, "id", "trak", "abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}

		var unknown *resolve.UnknownError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownError, got %T", err)
		}
		if len(unknown.Suggestions) == 0 || unknown.Suggestions[0] != "track" {
			t.Errorf("expected track suggestion, got %v", unknown.Suggestions)
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusOK, `{}`)
		if err := run(runner, "uri", "track"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestAPICommands(t *testing.T) {
	t.Run("get with params and query", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, `{"items":[{"name":"First"},{"name":"Second"}]}`)

		if err := run(runner, "api", "get", "--param", "limit=2", "--param", "time_range=short_term", "--query", ".items[0].name", "me/top/tracks"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req := rt.Last(t)
		if req.Method != http.MethodGet || req.URL != "https://api.spotify.com/v1/me/top/tracks?limit=2&time_range=short_term" {
			t.Errorf("unexpected request %s %s", req.Method, req.URL)
		}
		if req.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("unexpected authorization %q", req.Header.Get("Authorization"))
		}
		if output.String() != "\"First\"\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("get with bad param", func(t *testing.T) {
		runner, rt, _ := newTestRunner(t, http.StatusOK, `{}`)

		if err := run(runner, "api", "get", "--param", "limit", "me"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if len(rt.Requests()) != 0 {
			t.Error("expected no requests")
		}
	})

	t.Run("get without path", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusOK, `{}`)
		if err := run(runner, "api", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("post sends data as body", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusCreated, `{"id":"new"}`)

		if err := run(runner, "api", "post", "--data", `{"name":"Mix","public":false}`, "--pretty=false", "users/bob/playlists"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req := rt.Last(t)
		if req.Method != http.MethodPost || req.URL != "https://api.spotify.com/v1/users/bob/playlists" {
			t.Errorf("unexpected request %s %s", req.Method, req.URL)
		}

		var body map[string]any
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			t.Fatalf("expected JSON body, got %q", req.Body)
		}
		if body["name"] != "Mix" || body["public"] != false {
			t.Errorf("unexpected body %v", body)
		}
		if output.String() != "{\"id\":\"new\"}\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("delete without data sends no body", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, ``)

		if err := run(runner, "api", "delete", "me/tracks?ids=a"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req := rt.Last(t); req.Method != http.MethodDelete || req.Body != "" {
			t.Errorf("unexpected request %s body %q", req.Method, req.Body)
		}
		if output.Len() != 0 {
			t.Errorf("expected no output, got %q", output.String())
		}
	})

	t.Run("invalid data", func(t *testing.T) {
		runner, rt, _ := newTestRunner(t, http.StatusOK, `{}`)

		if err := run(runner, "api", "put", "--data", "{nope", "me/player/play"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(rt.Requests()) != 0 {
			t.Error("expected no requests")
		}
	})

	t.Run("classified failure", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusUnauthorized, `{"error":{"status":401,"message":"The access token expired"}}`)

		if err := run(runner, "api", "get", "me"); !services.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}

func TestCatalogCommands(t *testing.T) {
	t.Run("track text", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, trackBody)

		if err := run(runner, "track", "https://open.spotify.com/track/4iV5W9uYEdYUVa79Axb7Rh"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := rt.Last(t).URL; got != "https://api.spotify.com/v1/tracks/4iV5W9uYEdYUVa79Axb7Rh" {
			t.Errorf("unexpected url %s", got)
		}
		for _, want := range []string{"Track: Never Gonna Give You Up", "Artists: Rick Astley", "Duration: 3:33"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output, got:\n%s", want, output.String())
			}
		}
	})

	t.Run("track json", func(t *testing.T) {
		runner, _, output := newTestRunner(t, http.StatusOK, trackBody)

		if err := run(runner, "track", "--json", "4iV5W9uYEdYUVa79Axb7Rh"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(output.Bytes(), &decoded); err != nil {
			t.Fatalf("expected JSON output, got %q", output.String())
		}
		if decoded["name"] != "Never Gonna Give You Up" {
			t.Errorf("unexpected name %v", decoded["name"])
		}
	})

	t.Run("track save", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		dir := t.TempDir()
		tu.MustChdir(t, dir)
		t.Cleanup(func() { tu.MustChdir(t, wd) })

		runner, _, output := newTestRunner(t, http.StatusOK, trackBody)

		if err := run(runner, "track", "--save", "4iV5W9uYEdYUVa79Axb7Rh"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		path := filepath.Join(dir, "track_never-gonna-give-you-up.json")
		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.Contains(content, `"name": "Never Gonna Give You Up"`) {
			t.Errorf("unexpected file content:\n%s", content)
		}
		if !strings.Contains(output.String(), "✓ Saved to track_never-gonna-give-you-up.json") {
			t.Errorf("expected save confirmation, got:\n%s", output.String())
		}
	})

	t.Run("missing id", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusOK, `{}`)
		if err := run(runner, "album"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusNotFound, `{"error":{"status":404,"message":"Non existing id"}}`)

		err := run(runner, "artist", "0OdUWJ0sBjDrqHygGUXeCF")
		var apiErr *services.APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Non existing id" {
			t.Errorf("expected APIError, got %v", err)
		}
	})

	t.Run("playlist formats", func(t *testing.T) {
		tt := []struct {
			format string
			want   []string
		}{
			{format: "text", want: []string{"Playlist: Road Trip", "1. A - Song [1:01]"}},
			{format: "csv", want: []string{"ID,Title,Artist,Album,Duration,ISRC", "t1,Song,A,LP,61,X1"}},
			{format: "markdown", want: []string{"# Road Trip", "1. A - Song (LP) [1:01]"}},
		}

		for _, tc := range tt {
			t.Run(tc.format, func(t *testing.T) {
				runner, rt, output := newTestRunner(t, http.StatusOK, playlistBody)

				if err := run(runner, "playlist", "--format", tc.format, "--market", "US", "spotify:playlist:p1"); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if got := rt.Last(t).URL; !strings.HasPrefix(got, "https://api.spotify.com/v1/playlists/p1") || !strings.Contains(got, "market=US") {
					t.Errorf("unexpected url %s", got)
				}
				for _, want := range tc.want {
					if !strings.Contains(output.String(), want) {
						t.Errorf("expected %q in output, got:\n%s", want, output.String())
					}
				}
			})
		}
	})

	t.Run("playlist invalid format", func(t *testing.T) {
		runner, rt, _ := newTestRunner(t, http.StatusOK, playlistBody)

		if err := run(runner, "playlist", "--format", "xml", "p1"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if len(rt.Requests()) != 0 {
			t.Error("expected no requests")
		}
	})

	t.Run("search", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, `{"tracks":{"total":1,"items":[{"id":"t1","name":"Song","duration_ms":61000,"artists":[{"name":"A"}]}]}}`)

		if err := run(runner, "search", "--limit", "5", "abba"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got := rt.Last(t).URL
		for _, want := range []string{"https://api.spotify.com/v1/search?", "q=abba", "type=track", "limit=5"} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %q in url %s", want, got)
			}
		}
		if !strings.Contains(output.String(), "Tracks (1)") || !strings.Contains(output.String(), "A - Song [1:01]") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("me", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, `{"id":"bob","display_name":"Bob","product":"premium"}`)

		if err := run(runner, "me"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := rt.Last(t).URL; got != "https://api.spotify.com/v1/me/" {
			t.Errorf("unexpected url %s", got)
		}
		if !strings.Contains(output.String(), "User: Bob") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})
}

func TestLibraryCommands(t *testing.T) {
	t.Run("saved", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, `{"offset":0,"total":1,"items":[{"track":{"id":"t1","name":"Song","artists":[{"name":"A"}]}}]}`)

		if err := run(runner, "library", "saved", "--limit", "5"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := rt.Last(t).URL; !strings.Contains(got, "me/tracks") || !strings.Contains(got, "limit=5") {
			t.Errorf("unexpected url %s", got)
		}
		if !strings.Contains(output.String(), "1. A - Song") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("save", func(t *testing.T) {
		runner, rt, output := newTestRunner(t, http.StatusOK, ``)

		if err := run(runner, "lib", "save", "spotify:track:a", "b"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		req := rt.Last(t)
		if req.Method != http.MethodPut || req.URL != "https://api.spotify.com/v1/me/tracks/?ids=a,b" {
			t.Errorf("unexpected request %s %s", req.Method, req.URL)
		}
		if output.String() != "✓ Saved 2 track(s)\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("remove", func(t *testing.T) {
		runner, rt, _ := newTestRunner(t, http.StatusOK, ``)

		if err := run(runner, "library", "remove", "a"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req := rt.Last(t); req.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", req.Method)
		}
	})

	t.Run("contains", func(t *testing.T) {
		runner, _, output := newTestRunner(t, http.StatusOK, `[true,false]`)

		if err := run(runner, "library", "contains", "a", "b"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "a\ttrue\nb\tfalse\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("no tracks", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusOK, ``)
		if err := run(runner, "library", "save"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestPlayerCommands(t *testing.T) {
	tt := []struct {
		name   string
		args   []string
		method string
		url    []string
		want   string
	}{
		{name: "pause", args: []string{"pause"}, method: http.MethodPut, url: []string{"me/player/pause"}, want: "✓ Paused\n"},
		{name: "next on device", args: []string{"next", "--device", "d1"}, method: http.MethodPost, url: []string{"me/player/next", "device_id=d1"}, want: "✓ Skipped to next track\n"},
		{name: "previous", args: []string{"previous"}, method: http.MethodPost, url: []string{"me/player/previous"}, want: "✓ Skipped to previous track\n"},
		{name: "seek", args: []string{"seek", "61000"}, method: http.MethodPut, url: []string{"me/player/seek", "position_ms=61000"}, want: "✓ Seeked to 1:01\n"},
		{name: "volume", args: []string{"volume", "--device", "d1", "40"}, method: http.MethodPut, url: []string{"me/player/volume", "volume_percent=40", "device_id=d1"}, want: "✓ Volume set to 40%\n"},
		{name: "repeat", args: []string{"repeat", "Track"}, method: http.MethodPut, url: []string{"me/player/repeat", "state=track"}, want: "✓ Repeat track\n"},
		{name: "shuffle", args: []string{"shuffle", "on"}, method: http.MethodPut, url: []string{"me/player/shuffle", "state=true"}, want: "✓ Shuffle on\n"},
		{name: "queue", args: []string{"queue", "4iV5W9uYEdYUVa79Axb7Rh"}, method: http.MethodPost, url: []string{"me/player/queue", "uri=spotify%3Atrack%3A4iV5W9uYEdYUVa79Axb7Rh"}, want: "✓ Queued spotify:track:4iV5W9uYEdYUVa79Axb7Rh\n"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			runner, rt, output := newTestRunner(t, http.StatusNoContent, ``)

			if err := run(runner, append([]string{"player"}, tc.args...)...); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			req := rt.Last(t)
			if req.Method != tc.method {
				t.Errorf("expected %s, got %s", tc.method, req.Method)
			}
			for _, want := range tc.url {
				if !strings.Contains(req.URL, want) {
					t.Errorf("expected %q in url %s", want, req.URL)
				}
			}
			if output.String() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, output.String())
			}
		})
	}

	t.Run("invalid arguments", func(t *testing.T) {
		for _, args := range [][]string{
			{"volume", "loud"},
			{"volume", "101"},
			{"shuffle", "maybe"},
			{"repeat", "forever"},
		} {
			runner, rt, _ := newTestRunner(t, http.StatusNoContent, ``)

			if err := run(runner, append([]string{"player"}, args...)...); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("%v: expected ErrInvalidArgument, got %v", args, err)
			}
			if len(rt.Requests()) != 0 {
				t.Errorf("%v: expected no requests", args)
			}
		}
	})

	t.Run("play context", func(t *testing.T) {
		runner, rt, _ := newTestRunner(t, http.StatusNoContent, ``)

		if err := run(runner, "player", "play", "--context", "spotify:album:1DFixLWuPkv3KT3TnV35m3", "--offset", "2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var body map[string]any
		if err := json.Unmarshal([]byte(rt.Last(t).Body), &body); err != nil {
			t.Fatalf("expected JSON body, got %q", rt.Last(t).Body)
		}
		if body["context_uri"] != "spotify:album:1DFixLWuPkv3KT3TnV35m3" {
			t.Errorf("unexpected context_uri %v", body["context_uri"])
		}
		if offset, ok := body["offset"].(map[string]any); !ok || offset["position"] != float64(2) {
			t.Errorf("unexpected offset %v", body["offset"])
		}
		if _, ok := body["position_ms"]; ok {
			t.Error("expected position_ms to be omitted")
		}
	})

	t.Run("play tracks", func(t *testing.T) {
		runner, rt, _ := newTestRunner(t, http.StatusNoContent, ``)

		if err := run(runner, "player", "play", "a", "spotify:track:b"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if body := rt.Last(t).Body; !strings.Contains(body, `"uris":["spotify:track:a","spotify:track:b"]`) {
			t.Errorf("unexpected body %s", body)
		}
	})

	t.Run("devices", func(t *testing.T) {
		runner, _, output := newTestRunner(t, http.StatusOK, `{"devices":[{"id":"d1","name":"Kitchen","type":"Speaker","is_active":true,"volume_percent":40}]}`)

		if err := run(runner, "player", "devices"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "* Kitchen (Speaker) volume 40%") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("premium required", func(t *testing.T) {
		runner, _, _ := newTestRunner(t, http.StatusForbidden, `{"error":{"status":403,"message":"Player command failed: Premium required","reason":"PREMIUM_REQUIRED"}}`)

		err := run(runner, "player", "pause")
		var apiErr *services.APIError
		if !errors.As(err, &apiErr) || apiErr.Kind != services.PlayerError || apiErr.Reason != "PREMIUM_REQUIRED" {
			t.Fatalf("expected player error, got %v", err)
		}
		if !strings.Contains(hint(err), "Premium") {
			t.Errorf("unexpected hint %q", hint(err))
		}
	})
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	runner, _, output := newTestRunner(t, http.StatusOK, ``)

	if err := run(runner, "config", "init", "--path", path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	tu.AssertFileExists(t, path)
	if content := tu.MustReadFile(t, path); !strings.Contains(content, "[spotify]") {
		t.Errorf("unexpected config content:\n%s", content)
	}
	if info, err := os.Stat(path); err == nil && info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
	if output.String() != "✓ Wrote "+path+"\n" {
		t.Errorf("unexpected output %q", output.String())
	}

	if err := run(NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Getenv: func(string) string { return "" }}), "--config", path, "config", "init", "--path", path); err == nil {
		t.Error("expected error when the file already exists")
	}
}

func TestReportError(t *testing.T) {
	tt := []struct {
		name string
		err  error
		hint string
	}{
		{name: "missing credentials", err: shared.ErrMissingCredentials, hint: "spotapi config init"},
		{name: "unauthorized", err: services.ErrUnauthorized, hint: "refresh it"},
		{name: "rate limited with retry", err: &services.RateLimitError{RetryAfter: 3e9, HasRetryAfter: true}, hint: "retry after 3s"},
		{name: "rate limited", err: &services.RateLimitError{}, hint: "wait a moment"},
		{name: "no active device", err: &services.APIError{Kind: services.PlayerError, Status: 404, Reason: "NO_ACTIVE_DEVICE"}, hint: "--device"},
		{name: "transport", err: &services.TransportError{Op: "send request", Err: errors.New("dial")}, hint: "network"},
		{name: "parse", err: &services.ParseError{Op: "decode response", Err: errors.New("bad")}, hint: "api get"},
		{name: "other", err: errors.New("boom"), hint: ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, ui.Plain(), tc.err)

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if lines[0] != "✗ "+tc.err.Error() {
				t.Errorf("unexpected first line %q", lines[0])
			}
			if tc.hint == "" {
				if len(lines) != 1 {
					t.Errorf("expected no hint, got %q", buf.String())
				}
				return
			}
			if len(lines) != 2 || !strings.Contains(lines[1], tc.hint) {
				t.Errorf("expected hint containing %q, got %q", tc.hint, buf.String())
			}
		})
	}
}
