package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spores/internal/shared"
	"golang.org/x/oauth2"
)

// RedirectTarget describes where the local callback server must listen for a redirect URI.
type RedirectTarget struct {
	Addr     string // host:port to bind
	Path     string // callback path
	Loopback bool   // host resolves to this machine
}

// ParseRedirect splits a redirect URI into the address and path the callback server serves.
//
// Hosts other than 127.0.0.1, ::1 and localhost are reported as non-loopback; the caller
// falls back to reading the redirected URL from the user.
func ParseRedirect(redirectURI string) (RedirectTarget, error) {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return RedirectTarget{}, fmt.Errorf("%w: invalid redirect_uri %q", shared.ErrInvalidConfig, redirectURI)
	}

	host, port := u.Hostname(), u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	loopback := host == "localhost"
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		loopback = true
	}

	return RedirectTarget{
		Addr:     net.JoinHostPort(host, port),
		Path:     path,
		Loopback: loopback && u.Scheme == "http",
	}, nil
}

// CallbackServer serves a [Router] on a bound listener until Shutdown.
type CallbackServer struct {
	server *http.Server
	ln     net.Listener
	errs   chan error
	logger *log.Logger
}

// Listen binds addr and starts serving handler in the background.
func Listen(addr string, handler http.Handler, logger *log.Logger) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback server on %s: %w", addr, err)
	}

	s := &CallbackServer{
		server: &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		ln:     ln,
		errs:   make(chan error, 1),
		logger: logger,
	}

	go func() {
		logger.Debug("starting OAuth callback server", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
	}()

	return s, nil
}

// Addr returns the bound address.
func (s *CallbackServer) Addr() string {
	return s.ln.Addr().String()
}

// Wait blocks until handler receives a callback, the server fails, timeout passes or ctx is done.
func (s *CallbackServer) Wait(ctx context.Context, handler *OAuthHandler, timeout time.Duration) (*oauth2.Token, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var result OAuthResult
	select {
	case result = <-handler.Result():
	case err := <-s.errs:
		return nil, fmt.Errorf("callback server error: %w", err)
	case <-timer.C:
		return nil, fmt.Errorf("%w: no authorization received after %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, result.Error()
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}
	return result.Token, nil
}

// Shutdown stops the server, waiting at most 5 seconds for open connections.
func (s *CallbackServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("error shutting down callback server", "error", err)
	}
}
