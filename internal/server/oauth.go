package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/desertthunder/spores/internal/shared"
	"golang.org/x/oauth2"
)

const callbackPage = `<!DOCTYPE html>
<html>
<head>
    <title>spores</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`

// OAuthResult contains the result of an OAuth authorization flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// Exchanger trades an authorization code and its PKCE verifier for a token.
//
// An empty verifier means the authorization URL carried no code challenge.
type Exchanger interface {
	Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error)
}

// OAuthOption configures an [OAuthHandler].
type OAuthOption func(*OAuthHandler)

// WithVerifier sends the PKCE code verifier with the token exchange.
func WithVerifier(verifier string) OAuthOption {
	return func(h *OAuthHandler) { h.verifier = verifier }
}

// WithCallbackPath serves the callback on path instead of /callback.
func WithCallbackPath(path string) OAuthOption {
	return func(h *OAuthHandler) {
		if path != "" {
			h.path = path
		}
	}
}

// OAuthHandler handles OAuth2 callback requests for authorization code flow.
// Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	exchanger   Exchanger
	state       string
	verifier    string
	path        string
	resultChan  chan OAuthResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewOAuthHandler creates a new OAuth handler with the given code exchanger and state token.
// The state token should be cryptographically random for CSRF protection.
func NewOAuthHandler(exchanger Exchanger, state string, opts ...OAuthOption) *OAuthHandler {
	h := &OAuthHandler{
		exchanger:  exchanger,
		state:      state,
		path:       "/callback",
		resultChan: make(chan OAuthResult, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{h.path}
}

// ServeHTTP handles the OAuth callback request.
//
// Requests carrying the wrong state are rejected without ending the flow. The first request with a matching
// state is exchanged for tokens and its result sent through the result channel.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("state") != h.state {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	code, err := CodeFromQuery(query, h.state)
	if err != nil {
		h.Send(OAuthResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.exchanger.Exchange(r.Context(), code, h.verifier)
	if err != nil {
		h.Send(OAuthResult{err: fmt.Errorf("%w: token exchange failed: %v", shared.ErrAuthFailed, err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.Send(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, callbackPage)
}

// Send sends the OAuth result through the channel (only once).
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving OAuth flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}

// CodeFromQuery validates the state of an authorization response and returns its code.
func CodeFromQuery(query url.Values, state string) (string, error) {
	if query.Get("state") != state {
		return "", fmt.Errorf("%w: invalid state parameter", shared.ErrAuthFailed)
	}

	code := query.Get("code")
	if code == "" {
		errParam := query.Get("error")
		if errParam == "" {
			errParam = "missing code"
		}
		if desc := query.Get("error_description"); desc != "" {
			errParam += " - " + desc
		}
		return "", fmt.Errorf("%w: authorization denied: %s", shared.ErrAuthFailed, errParam)
	}

	return code, nil
}

// ParseCallbackURL extracts the authorization code from a redirect URL pasted by the user.
func ParseCallbackURL(raw, state string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return "", fmt.Errorf("%w: %q is not a redirect URL", shared.ErrAuthFailed, raw)
	}
	return CodeFromQuery(u.Query(), state)
}
