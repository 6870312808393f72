// Package models defines the value types shared by the Spotify client and the CLI.
//
// The package contains two categories of types:
//
// 1. Identifiers
//   - [ResourceType] : the kind of catalog entity an id refers to, used only to validate ids
//   - [ParseID] : strips a URI (spotify:track:ID) or URL (.../track/ID) down to its bare id
//   - [URI] : builds a spotify:<type>:<id> URI
//
// 2. Response objects: structs decoded from successful API responses
//   - [Track], [Album], [Artist], [Playlist] and their simplified forms
//   - [Page] : generic offset-based paging wrapper
//   - [SearchResult], [Devices], [SnapshotResult]
//
// Nothing in this package performs I/O or logging.
package models
