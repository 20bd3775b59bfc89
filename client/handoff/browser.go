package handoff

import "context"

// BrowserResultType mirrors the three ways an external auth browser
// session can end.
type BrowserResultType string

const (
	BrowserResultSuccess   BrowserResultType = "success"   // Browser landed on the callback URL
	BrowserResultCancelled BrowserResultType = "cancelled" // User dismissed the browser
	BrowserResultFailed    BrowserResultType = "failed"    // Browser-level error after launch
)

// BrowserResult is the tagged outcome of one auth browser session. URL
// is set only for BrowserResultSuccess and carries the full callback URL
// the browser landed on, query string included.
type BrowserResult struct {
	Type BrowserResultType
	URL  string
	Err  error // Set for BrowserResultFailed
}

// Browser opens an external, authenticated-session-capable browser on a
// login page and waits for it to land on the callback URL. Implementations
// must return when the callback is hit, the user dismisses the browser
// (ctx cancellation in the CLI rendition), or the browser fails.
// A returned error means the browser could not be launched at all.
type Browser interface {
	// CallbackURL is the URL the login page should send the browser
	// back to, known before the session is opened.
	CallbackURL() string

	OpenAuthSession(ctx context.Context, loginURL, callbackURL string) (BrowserResult, error)
}
