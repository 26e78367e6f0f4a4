package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/spores/internal/formatter"
	"github.com/desertthunder/spores/internal/server"
	"github.com/desertthunder/spores/internal/services"
	"github.com/desertthunder/spores/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// authenticate installs a token on svc, reusing the cache unless force is set.
//
// Tokens refreshed later by the oauth2 token source are written back to cache.
func (r *Runner) authenticate(ctx context.Context, svc *services.SpotifyService, cache *services.TokenCache, force bool) error {
	r.persistRefreshes(svc, cache)

	if !force {
		cached, err := cache.Load()
		switch {
		case err != nil:
			r.logger.Debug("no cached token", "error", err)
		case !cached.Covers(services.Scopes):
			r.logger.Debug("cached token is missing scopes", "scopes", cached.Scopes)
		case !cached.Usable():
			r.logger.Debug("cached token expired without refresh token")
		default:
			r.logger.Debug("using cached token", "path", cache.Path())
			return svc.OAuthenticate(ctx, cached.Token())
		}
	}

	token, err := r.authorize(ctx, svc)
	if err != nil {
		return err
	}

	if err := cache.Save(token, services.Scopes); err != nil {
		return err
	}
	r.logger.Debug("cached token", "path", cache.Path())

	return svc.OAuthenticate(ctx, token)
}

func (r *Runner) persistRefreshes(svc *services.SpotifyService, cache *services.TokenCache) {
	svc.SetTokenRefreshCallback(func(token *oauth2.Token) {
		r.logger.Debug("access token refreshed", "expiry", token.Expiry)
		if err := cache.Update(token); err != nil {
			r.logger.Warn("failed to update token cache", "error", err)
		}
	})
}

// authorize runs the authorization code flow with PKCE.
//
// A loopback redirect URI is served locally; otherwise, or when its port is taken, the user
// pastes the URL the browser was redirected to.
func (r *Runner) authorize(ctx context.Context, svc *services.SpotifyService) (*oauth2.Token, error) {
	config, err := r.loadConfig()
	if err != nil {
		return nil, err
	}

	target, err := server.ParseRedirect(config.Redirect())
	if err != nil {
		return nil, err
	}

	state := shared.GenerateState()
	verifier := oauth2.GenerateVerifier()
	authURL := svc.GetAuthURL(state, oauth2.S256ChallengeOption(verifier))

	logger := shared.WithLogger(r.logger, "redirect", config.Redirect())
	if target.Loopback {
		handler := server.NewOAuthHandler(svc, state,
			server.WithVerifier(verifier), server.WithCallbackPath(target.Path))
		router := server.NewBasicRouter()
		router.Use(server.RequestLogger(logger))
		router.Handler(handler)

		srv, err := server.Listen(target.Addr, router, logger)
		if err == nil {
			defer srv.Shutdown()

			r.showAuthURL(config, authURL)
			r.notify("Waiting for authorization (%s timeout)...\n", config.AuthTimeout())
			return srv.Wait(ctx, handler, config.AuthTimeout())
		}
		logger.Warn("could not start callback server; falling back to manual entry", "error", err)
	}

	r.notify("Open this URL in your browser:\n%s\n\n", authURL)
	r.notify("Paste the URL you were redirected to: ")

	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read redirect URL: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("%w: no redirect URL entered", shared.ErrAuthFailed)
	}

	code, err := server.ParseCallbackURL(line, state)
	if err != nil {
		return nil, err
	}
	return svc.Exchange(ctx, code, verifier)
}

func (r *Runner) showAuthURL(config *shared.Config, authURL string) {
	if config.Auth.OpenBrowser {
		err := r.openBrowser(authURL)
		if err == nil {
			r.notify("Opening browser for Spotify authorization...\n")
			return
		}
		r.logger.Warn("failed to open browser", "error", err)
	}
	r.notify("Open this URL in your browser:\n%s\n\n", authURL)
}

// AuthLogin forces a new authorization and caches the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.newSpotify()
	if err != nil {
		return err
	}

	cache, err := r.tokenCache()
	if err != nil {
		return err
	}

	if err := r.authenticate(ctx, svc, cache, true); err != nil {
		return err
	}

	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return err
	}

	cached, err := cache.Load()
	if err != nil {
		return err
	}
	return r.writeJSON(formatter.AuthStatus(cache.Path(), cached, user))
}

// AuthStatus prints the cached token and, when it still works, the user it belongs to.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	cache, err := r.tokenCache()
	if err != nil {
		return err
	}

	cached, err := cache.Load()
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return r.writeJSON(formatter.AuthStatus(cache.Path(), nil, nil))
	}
	if err != nil {
		return err
	}

	var user *services.SpotifyUser
	if cached.Usable() {
		svc, err := r.newSpotify()
		if err != nil {
			return err
		}
		r.persistRefreshes(svc, cache)
		if err := svc.OAuthenticate(ctx, cached.Token()); err != nil {
			return err
		}

		user, err = svc.CurrentUser(ctx)
		if err != nil {
			r.logger.Warn("cached token was rejected", "error", err)
			user = nil
		} else if refreshed, err := cache.Load(); err == nil {
			cached = refreshed
		}
	}

	return r.writeJSON(formatter.AuthStatus(cache.Path(), cached, user))
}

// AuthLogout deletes the token cache.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	cache, err := r.tokenCache()
	if err != nil {
		return err
	}

	if err := cache.Clear(); err != nil {
		return err
	}

	r.logger.Debug("removed token cache", "path", cache.Path())
	return r.writeJSON(formatter.AuthStatus(cache.Path(), nil, nil))
}
