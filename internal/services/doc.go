// Package services implements an authenticated client for the Spotify Web API.
//
// # Client
//
// [New] builds a [Client] from [Options]. Every request goes through [Client.Dispatch]:
// relative paths are joined to the prefix, a bearer token is obtained from the configured
// [TokenResolver], and the raw body of a 2xx response is returned as a string.
//
// GET payloads are encoded as query parameters. POST, PUT and DELETE payloads are encoded as a
// JSON body. The client performs no retries and no caching.
//
// # Credentials
//
// A [TokenResolver] is consulted before each request:
//   - [StaticToken] : a fixed access token
//   - [TokenSourceResolver] : an [oauth2.TokenSource], refreshed as needed
//   - [ResolverFunc] : any function
//
// [ResolverFromConfig] chooses one from the [shared.SpotifyConfig] section.
//
// # Identifiers
//
// [NormalizeID] and [NormalizeURI] accept bare ids, spotify:<type>:<id> URIs and
// open.spotify.com URLs. Input whose embedded type does not match is logged and passed through.
//
// # Error Handling
//
// Non-2xx responses are mapped by [Classify]:
//   - 401 : [ErrUnauthorized]
//   - 429 : [*RateLimitError] with an optional Retry-After hint
//   - 403, 404 : [*APIError] decoded from the body, else [*StatusError]
//   - others : [*StatusError]
//
// Local failures are [*TransportError] or [*ParseError]. Use [KindOf] or the IsXxx helpers to branch.
//
// # Endpoints
//
// Typed wrappers for catalog, library and player endpoints decode responses into [models] types
// with [Decode].
package services
