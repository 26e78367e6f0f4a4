// Package models defines the JSON documents printed by the spores commands.
//
// Each command prints exactly one document to standard output:
//   - [SearchResult] : search, with one of [TrackItem], [AlbumItem], [ArtistItem] or [PlaylistItem] per entry
//   - [PlaylistList] : playlist list, built from [PlaylistSummary] entries
//   - [CreatedPlaylist] : playlist create
//   - [PlaylistInfo] : playlist info, whose items are [PlaylistTrack], [PlaylistEpisode] or [UnknownItem]
//   - [ItemsAdded] : playlist add
//   - [Saved] : save
//   - [AuthStatus] : auth status and auth login
//   - [ErrorDocument] : any failure
//
// Identifiers are Spotify URIs. Pointer fields encode as null when Spotify has no value.
package models
