package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotapi/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// TokenResolver supplies the bearer token for a request. It is called before every dispatched request,
// so implementations that hit the network should cache tokens themselves.
type TokenResolver interface {
	ResolveToken(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

func (s StaticToken) ResolveToken(context.Context) (string, error) {
	return string(s), nil
}

// ResolverFunc adapts a function to [TokenResolver].
type ResolverFunc func(ctx context.Context) (string, error)

func (f ResolverFunc) ResolveToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// TokenSourceResolver resolves tokens from an [oauth2.TokenSource], reusing each token until it expires.
type TokenSourceResolver struct {
	source oauth2.TokenSource
}

// NewTokenSourceResolver wraps ts in an [oauth2.ReuseTokenSource].
func NewTokenSourceResolver(ts oauth2.TokenSource) *TokenSourceResolver {
	return &TokenSourceResolver{source: oauth2.ReuseTokenSource(nil, ts)}
}

func (r *TokenSourceResolver) ResolveToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token, err := r.source.Token()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token source returned an empty access token")
	}
	return token.AccessToken, nil
}

// ResolverFromConfig picks a credential source from cfg, in order:
//
//  1. access_token: a [StaticToken]
//  2. client_id, client_secret and refresh_token: a refreshing user token
//  3. client_id and client_secret: the client-credentials grant
//
// ctx is retained by the token source for every later refresh, so it must outlive the client.
// httpClient, when non-nil, is used for token endpoint calls.
func ResolverFromConfig(ctx context.Context, cfg shared.SpotifyConfig, httpClient *http.Client) (TokenResolver, error) {
	if cfg.AccessToken != "" {
		return StaticToken(cfg.AccessToken), nil
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, shared.ErrMissingCredentials
	}

	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	if cfg.RefreshToken != "" {
		authURL := cfg.AuthURL
		if authURL == "" {
			authURL = spotifyAuthURL
		}
		conf := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		}
		return NewTokenSourceResolver(conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})), nil
	}

	conf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}
	return NewTokenSourceResolver(conf.TokenSource(ctx)), nil
}
