// Package handoff implements the cross-surface login flow: the app opens
// a web login page in an external browser, the page redirects back into
// the app with a session token, and the token is persisted for future
// API calls.
package handoff

import (
	"context"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/taskbridge/go-task-server/client/tokenstore"
)

// State of the login flow.
type State string

const (
	StateLoggedOut             State = "LOGGED_OUT"
	StateAwaitingBrowserResult State = "AWAITING_BROWSER_RESULT"
	StateLoggedIn              State = "LOGGED_IN"
)

var (
	// ErrBrowserLaunch: the browser could not be opened or failed mid-session.
	ErrBrowserLaunch = errors.New("failed to open login browser")
	// ErrMissingToken: the callback URL carried no session token.
	ErrMissingToken = errors.New("no session token in callback")
	// ErrSuperseded: a newer login attempt replaced this one while its
	// browser session was still open; the stale result was discarded.
	ErrSuperseded = errors.New("login attempt superseded")
)

// Flow drives the login handoff and owns the in-memory session token.
// The token store remains the single source of truth across restarts;
// RestoreSession re-adopts whatever it holds.
type Flow struct {
	clientURL string // Base URL of the web login surface
	browser   Browser
	store     tokenstore.Store

	mu         sync.Mutex
	state      State
	token      string
	generation uint64 // Single-flight guard: one live login attempt at a time
}

func NewFlow(clientURL string, browser Browser, store tokenstore.Store) (*Flow, error) {
	if clientURL == "" {
		return nil, errors.New("[NewFlow] clientURL is required")
	}
	if browser == nil {
		return nil, errors.New("[NewFlow] browser is required")
	}
	if store == nil {
		return nil, errors.New("[NewFlow] token store is required")
	}
	return &Flow{
		clientURL: clientURL,
		browser:   browser,
		store:     store,
		state:     StateLoggedOut,
	}, nil
}

// Login runs one handoff attempt: build the callback URL, open the login
// page in the external browser, wait for the redirect, and persist the
// returned token. The calling goroutine suspends until the browser
// session ends; nothing else is blocked.
//
// Starting a second Login while one is awaiting its browser result
// supersedes the first: the stale attempt's outcome is discarded when it
// eventually lands.
func (f *Flow) Login(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.state = StateAwaitingBrowserResult
	f.mu.Unlock()

	callbackURL := f.browser.CallbackURL()
	loginURL := f.clientURL + "/login?postLoginMobileAppRedirectUrl=" + url.QueryEscape(callbackURL)

	result, err := f.browser.OpenAuthSession(ctx, loginURL, callbackURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		log.Info().Msg("Login: discarding result of superseded attempt")
		return ErrSuperseded
	}

	if err != nil {
		f.state = StateLoggedOut
		return errors.Wrap(ErrBrowserLaunch, err.Error())
	}

	switch result.Type {
	case BrowserResultCancelled:
		log.Info().Msg("Login cancelled by user")
		f.state = StateLoggedOut
		return nil

	case BrowserResultFailed:
		f.state = StateLoggedOut
		if result.Err != nil {
			return errors.Wrap(ErrBrowserLaunch, result.Err.Error())
		}
		return ErrBrowserLaunch

	case BrowserResultSuccess:
		token, err := sessionTokenFromCallback(result.URL)
		if err != nil {
			f.state = StateLoggedOut
			return err
		}
		f.adoptToken(token)
		return nil

	default:
		f.state = StateLoggedOut
		return errors.Errorf("[Flow.Login] unknown browser result %q", result.Type)
	}
}

// RestoreSession re-reads the token store at startup. A storage read
// failure is treated as "no token": logged, never fatal.
func (f *Flow) RestoreSession() {
	token, err := f.store.Get()
	if err != nil {
		log.Err(err).Msg("RestoreSession: treating unreadable storage as logged out")
		return
	}
	if token == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	f.state = StateLoggedIn
}

// Logout clears the persisted and in-memory token.
func (f *Flow) Logout() {
	if err := f.store.Clear(); err != nil {
		log.Err(err).Msg("Logout: failed to clear token store")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.state = StateLoggedOut
}

// Token returns the active session token, or "" when logged out. The
// method value satisfies apiclient.TokenProvider.
func (f *Flow) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) LoggedIn() bool {
	return f.State() == StateLoggedIn
}

// adoptToken persists the token and switches to LOGGED_IN. A storage
// write failure keeps the token for this session only. Called with the
// lock held.
func (f *Flow) adoptToken(token string) {
	if err := f.store.Set(token); err != nil {
		log.Err(err).Msg("Login: token not durably saved, keeping it in memory")
	}
	f.token = token
	f.state = StateLoggedIn
}

func sessionTokenFromCallback(callbackURL string) (string, error) {
	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return "", errors.Wrap(ErrMissingToken, err.Error())
	}
	token := parsed.Query().Get("sessionId")
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
