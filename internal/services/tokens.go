package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/spores/internal/shared"
	"golang.org/x/oauth2"
)

// CachedToken is the on-disk form of an OAuth token together with its granted scopes.
type CachedToken struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes"`
}

// Token converts the cached entry back into an [oauth2.Token].
func (c *CachedToken) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    c.TokenType,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// Covers reports whether every scope in scopes was granted.
func (c *CachedToken) Covers(scopes []string) bool {
	for _, s := range scopes {
		if !slices.Contains(c.Scopes, s) {
			return false
		}
	}
	return true
}

// Usable reports whether the token can authorize requests, either directly or after a refresh.
func (c *CachedToken) Usable() bool {
	if c.AccessToken == "" {
		return false
	}
	return c.RefreshToken != "" || c.Expiry.IsZero() || time.Now().Before(c.Expiry)
}

// TokenCache persists OAuth tokens as JSON at a fixed path.
type TokenCache struct {
	path string
	mu   sync.Mutex
}

func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

func (c *TokenCache) Path() string {
	return c.path
}

// Load reads the cached token. A missing file yields [shared.ErrNotAuthenticated].
func (c *TokenCache) Load() (*CachedToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no cached token at %s", shared.ErrNotAuthenticated, c.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var cached CachedToken
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("%w: corrupt token cache %s: %v", shared.ErrNotAuthenticated, c.path, err)
	}
	return &cached, nil
}

// Save writes token to the cache file with owner-only permissions.
//
// Granted scopes are read from the token response when present and fall back to requested.
func (c *TokenCache) Save(token *oauth2.Token, requested []string) error {
	if token == nil {
		return fmt.Errorf("%w: no token to save", shared.ErrInvalidArgument)
	}

	scopes := requested
	if granted, ok := token.Extra("scope").(string); ok && granted != "" {
		scopes = strings.Fields(granted)
	}

	cached := CachedToken{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		Scopes:       scopes,
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}

// Update rewrites the cache with a refreshed token, keeping the stored refresh token and scopes
// when the refresh response omits them.
func (c *TokenCache) Update(token *oauth2.Token) error {
	previous, err := c.Load()
	if err != nil {
		return c.Save(token, Scopes)
	}

	if token.RefreshToken == "" {
		refreshed := *token
		refreshed.RefreshToken = previous.RefreshToken
		token = &refreshed
	}
	return c.Save(token, previous.Scopes)
}

// Clear deletes the cache file. A missing file is not an error.
func (c *TokenCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token cache: %w", err)
	}
	return nil
}

// refreshableTokenSource wraps an [oauth2.TokenSource] and reports new access tokens to callback.
type refreshableTokenSource struct {
	source   oauth2.TokenSource
	callback func(*oauth2.Token)
	last     string
	mu       sync.Mutex
}

func (s *refreshableTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	changed := token.AccessToken != s.last
	s.last = token.AccessToken
	s.mu.Unlock()

	if changed && s.callback != nil {
		s.callback(token)
	}
	return token, nil
}
