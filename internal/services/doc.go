// Package services defines the [Service] interface used by the CLI and implements it for the Spotify Web API.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 (authorization code with PKCE) for authentication.
// The [oauth2.Client] automatically refreshes expired tokens using the refresh token and
// reports the new token through the callback set with [SpotifyService.SetTokenRefreshCallback].
//
// Requests are paced by a [rate.Limiter]. Bulk writes are split to the API's batch limits:
// 100 items per playlist add, 50 tracks or 20 albums per library save.
//
// # Identifiers
//
// [ParseID] and [ParsePlayable] accept bare IDs, spotify: URIs and open.spotify.com URLs.
// IDs are printed back as URIs (spotify:<kind>:<id>).
//
// # Token Cache
//
// [TokenCache] stores the token and its granted scopes as JSON next to the config file.
// A cached token whose scopes do not cover [Scopes] is ignored.
//
// # Error Handling
//
// Services use typed errors from shared package. [APIError] unwraps to:
//   - [shared.ErrNotAuthenticated] : 401, or OAuthenticate() not called
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrRateLimited] : 429
//   - [shared.ErrAPIRequest] : any other non-2xx status
//
// A rejected token refresh is reported as [shared.ErrAuthFailed].
package services
