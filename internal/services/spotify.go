// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/spores/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	maxSearchLimit    = 50
	maxPlaylistPage   = 50
	maxPlaylistAdd    = 100
	maxSaveTracks     = 50
	maxSaveAlbums     = 20
	defaultRatePerSec = 10
)

// Scopes requested during authorization.
var Scopes = []string{
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-public",
	"playlist-modify-private",
	"user-library-modify",
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID           string            `json:"id"`
	DisplayName  *string           `json:"display_name"`
	Country      string            `json:"country,omitempty"`
	Product      string            `json:"product,omitempty"` // premium, free, etc.
	Followers    followers         `json:"followers"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// SpotifyArtist represents a Spotify artist (simplified or full).
type SpotifyArtist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Genres       []string          `json:"genres"`
	Followers    followers         `json:"followers"`
	Popularity   int               `json:"popularity"`
	URI          string            `json:"uri"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// SpotifyAlbum represents a simplified Spotify album.
type SpotifyAlbum struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []SpotifyArtist   `json:"artists"`
	ReleaseDate  *string           `json:"release_date"`
	TotalTracks  int               `json:"total_tracks"`
	URI          string            `json:"uri"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// SpotifyTrack represents a Spotify track. ID is empty for local files.
type SpotifyTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []SpotifyArtist   `json:"artists"`
	Album        SpotifyAlbum      `json:"album"`
	DurationMS   int64             `json:"duration_ms"`
	Explicit     bool              `json:"explicit"`
	IsLocal      bool              `json:"is_local"`
	Popularity   int               `json:"popularity"`
	URI          string            `json:"uri"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type spotifyShow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyEpisode represents a podcast episode.
type SpotifyEpisode struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMS int64       `json:"duration_ms"`
	Show       spotifyShow `json:"show"`
	URI        string      `json:"uri"`
}

// SpotifyPlayable is a playlist entry: a track, an episode, or a type this client does not know.
type SpotifyPlayable struct {
	Type    string
	Track   *SpotifyTrack
	Episode *SpotifyEpisode
}

// UnmarshalJSON decodes the object according to its "type" field.
func (p *SpotifyPlayable) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	p.Type = head.Type
	switch head.Type {
	case "track":
		p.Track = &SpotifyTrack{}
		return json.Unmarshal(data, p.Track)
	case "episode":
		p.Episode = &SpotifyEpisode{}
		return json.Unmarshal(data, p.Episode)
	}
	return nil
}

// Owner is the user owning a playlist.
type Owner struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
}

// Page is Spotify's paging object.
type Page[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists and search results).
type SpotifySimplePlaylist struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   *string             `json:"description"`
	Owner         Owner               `json:"owner"`
	Public        *bool               `json:"public"`
	Collaborative bool                `json:"collaborative"`
	Tracks        simplePlaylistTrack `json:"tracks"`
	URI           string              `json:"uri"`
	ExternalURLs  map[string]string   `json:"external_urls"`
	SnapshotID    string              `json:"snapshot_id"`
}

// SpotifyPlaylistItem represents an entry within a playlist. Track is nil for removed items.
type SpotifyPlaylistItem struct {
	AddedAt string           `json:"added_at"`
	Track   *SpotifyPlayable `json:"track"`
}

// SpotifyPlaylist represents a full Spotify playlist.
type SpotifyPlaylist struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Description   *string                   `json:"description"`
	Owner         Owner                     `json:"owner"`
	Public        *bool                     `json:"public"`
	Collaborative bool                      `json:"collaborative"`
	Followers     followers                 `json:"followers"`
	Tracks        Page[SpotifyPlaylistItem] `json:"tracks"`
	URI           string                    `json:"uri"`
	ExternalURLs  map[string]string         `json:"external_urls"`
	SnapshotID    string                    `json:"snapshot_id"`
}

// SpotifySearchResult holds the page matching the requested [SearchType]; the others are nil.
//
// Spotify may return null entries in playlist results.
type SpotifySearchResult struct {
	Tracks    *Page[SpotifyTrack]           `json:"tracks"`
	Albums    *Page[SpotifyAlbum]           `json:"albums"`
	Artists   *Page[SpotifyArtist]          `json:"artists"`
	Playlists *Page[*SpotifySimplePlaylist] `json:"playlists"`
}

// SnapshotResponse is returned by endpoints that modify a playlist.
type SnapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}

// CreatePlaylistOpts describes a new playlist.
type CreatePlaylistOpts struct {
	Name        string  `json:"name"`
	Public      bool    `json:"public"`
	Description *string `json:"description,omitempty"`
}

// APIError is a non-2xx response from the Web API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify API error: status %d", e.Status)
	}
	return fmt.Sprintf("spotify API error (status %d): %s", e.Status, e.Message)
}

// Unwrap maps the status code to a shared sentinel error.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return shared.ErrNotAuthenticated
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusTooManyRequests:
		return shared.ErrRateLimited
	default:
		return shared.ErrAPIRequest
	}
}

// Option configures a [SpotifyService].
type Option func(*SpotifyService)

// WithBaseURL points the service at another Web API root (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(s *SpotifyService) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithEndpoint overrides the OAuth2 authorize and token endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(s *SpotifyService) { s.config.Endpoint = endpoint }
}

// WithRateLimit paces requests to rps per second; zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(s *SpotifyService) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithHTTPClient sets the client used for token exchange and as the base transport for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *SpotifyService) { s.baseClient = client }
}

// SpotifyService implements the Service interface for Spotify API interactions.
// Uses [oauth2] for authentication and provides methods for search, playlist and library operations.
type SpotifyService struct {
	config         *oauth2.Config
	token          *oauth2.Token
	httpClient     *http.Client
	baseClient     *http.Client
	baseURL        string
	limiter        *rate.Limiter
	onTokenRefresh func(*oauth2.Token)
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string, opts ...Option) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id in credentials", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret in credentials", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = shared.DefaultRedirectURI
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	s := &SpotifyService{
		config:  config,
		baseURL: spotifyBaseURL,
		limiter: rate.NewLimiter(rate.Limit(defaultRatePerSec), 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// OAuthenticate installs token as the service credential.
//
// Expired tokens are refreshed by the token source on the next request and reported to the
// callback registered with [SpotifyService.SetTokenRefreshCallback].
func (s *SpotifyService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: no token provided", shared.ErrNotAuthenticated)
	}

	ctx = s.clientContext(ctx)
	s.token = token
	source := &refreshableTokenSource{
		source:   s.config.TokenSource(ctx, token),
		callback: s.onTokenRefresh,
		last:     token.AccessToken,
	}
	s.httpClient = oauth2.NewClient(ctx, source)
	return nil
}

// SetTokenRefreshCallback registers fn to receive every new access token.
func (s *SpotifyService) SetTokenRefreshCallback(fn func(*oauth2.Token)) {
	s.onTokenRefresh = fn
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string, opts ...oauth2.AuthCodeOption) string {
	return s.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for a token. verifier may be empty when PKCE is not used.
//
// The loopback callback handler exchanges through this method, so the client set by [WithHTTPClient] applies.
func (s *SpotifyService) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	var opts []oauth2.AuthCodeOption
	if verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	token, err := s.config.Exchange(s.clientContext(ctx), code, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

func (s *SpotifyService) clientContext(ctx context.Context) context.Context {
	if s.baseClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, s.baseClient)
	}
	return ctx
}

// doRequest performs an authenticated HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.httpClient == nil {
		return fmt.Errorf("%w: call OAuthenticate first", shared.ErrNotAuthenticated)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fmt.Errorf("%w: token refresh rejected: %v", shared.ErrAuthFailed, retrieveErr)
		}
		return fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Error.Message
	}

	return apiErr
}

// CurrentUser retrieves the current authenticated user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Search queries the catalog for a single item type.
func (s *SpotifyService) Search(ctx context.Context, query string, kind SearchType, limit int) (*SpotifySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrMissingArgument)
	}
	if limit <= 0 || limit > maxSearchLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", shared.ErrInvalidArgument, maxSearchLimit)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", string(kind))
	params.Set("limit", strconv.Itoa(limit))

	var result SpotifySearchResult
	if err := s.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserPlaylists retrieves one page of the current user's playlists.
func (s *SpotifyService) UserPlaylists(ctx context.Context, limit, offset int) (*Page[SpotifySimplePlaylist], error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPlaylistPage {
		limit = maxPlaylistPage
	}

	endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", limit, offset)

	var response Page[SpotifySimplePlaylist]
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// AllPlaylists walks every page of the current user's playlists.
func (s *SpotifyService) AllPlaylists(ctx context.Context) ([]SpotifySimplePlaylist, error) {
	var all []SpotifySimplePlaylist
	offset := 0

	for {
		page, err := s.UserPlaylists(ctx, maxPlaylistPage, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		if page.Next == nil || len(page.Items) == 0 {
			break
		}
		offset += maxPlaylistPage
	}

	return all, nil
}

// CreatePlaylist creates a playlist owned by userID.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, userID string, opts CreatePlaylistOpts) (*SpotifyPlaylist, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))

	var playlist SpotifyPlaylist
	if err := s.doRequest(ctx, http.MethodPost, endpoint, opts, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Playlist retrieves a playlist by ID with the first page of its items.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error) {
	endpoint := fmt.Sprintf("/playlists/%s?additional_types=track,episode", url.PathEscape(playlistID))

	var playlist SpotifyPlaylist
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// AddPlaylistItems appends track or episode URIs to a playlist, 100 per request.
//
// The snapshot of the last request is returned.
func (s *SpotifyService) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) (*SnapshotResponse, error) {
	if len(uris) == 0 {
		return nil, fmt.Errorf("%w: no items to add", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	var snapshot SnapshotResponse
	for _, batch := range chunk(uris, maxPlaylistAdd) {
		body := struct {
			URIs []string `json:"uris"`
		}{URIs: batch}

		if err := s.doRequest(ctx, http.MethodPost, endpoint, body, &snapshot); err != nil {
			return nil, err
		}
	}

	return &snapshot, nil
}

// SaveTracks adds tracks to the current user's library.
func (s *SpotifyService) SaveTracks(ctx context.Context, trackIDs []string) error {
	return s.saveToLibrary(ctx, "/me/tracks", trackIDs, maxSaveTracks)
}

// SaveAlbums adds albums to the current user's library.
func (s *SpotifyService) SaveAlbums(ctx context.Context, albumIDs []string) error {
	return s.saveToLibrary(ctx, "/me/albums", albumIDs, maxSaveAlbums)
}

func (s *SpotifyService) saveToLibrary(ctx context.Context, endpoint string, ids []string, size int) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no IDs provided", shared.ErrMissingArgument)
	}

	for _, batch := range chunk(ids, size) {
		query := "?ids=" + url.QueryEscape(strings.Join(batch, ","))
		if err := s.doRequest(ctx, http.MethodPut, endpoint+query, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// FollowPlaylist adds a playlist to the current user's library.
func (s *SpotifyService) FollowPlaylist(ctx context.Context, playlistID string) error {
	endpoint := fmt.Sprintf("/playlists/%s/followers", url.PathEscape(playlistID))
	return s.doRequest(ctx, http.MethodPut, endpoint, struct{}{}, nil)
}

func chunk[T any](items []T, size int) [][]T {
	var batches [][]T
	for size < len(items) {
		items, batches = items[size:], append(batches, items[:size])
	}
	return append(batches, items)
}
