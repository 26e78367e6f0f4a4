package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest  = fmt.Errorf("API request failed")
	ErrNotFound    = fmt.Errorf("resource not found")
	ErrRateLimited = fmt.Errorf("rate limited")

	// Input validation errors
	ErrInvalidID       = fmt.Errorf("invalid Spotify ID")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrUnsupported     = fmt.Errorf("unsupported operation")
	ErrAborted         = fmt.Errorf("aborted by user")
)
