// Package server runs the short-lived local HTTP server that receives the Spotify OAuth redirect.
//
// # OAuth Callback Handler
//
// [OAuthHandler] serves the path of the configured redirect URI. It validates the state
// parameter (CSRF protection), exchanges the authorization code for a token using the PKCE
// verifier, and sends the result through a channel. It only processes one callback; later
// requests get 400.
//
// [ParseCallbackURL] applies the same checks to a redirect URL pasted by the user when the
// redirect URI is not a loopback address or its port cannot be bound.
//
// # Router Infrastructure
//
// [BasicRouter] registers handlers on an [http.ServeMux] with method-qualified patterns and wraps
// them with [Middleware]. [RequestLogger] logs each callback request at debug level.
//
// [CallbackServer] binds the redirect address synchronously, so a busy port is reported before
// the browser is opened, and shuts down once [CallbackServer.Wait] returns.
package server
