package handoff

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// callbackPage is shown in the browser once the redirect lands.
const callbackPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Logged in</title></head>
<body style="font-family: system-ui, sans-serif; text-align: center; padding-top: 15vh;">
<h1>Logged in</h1><p>You can close this window and return to the app.</p>
</body></html>`

var _ Browser = (*SystemBrowser)(nil)

// SystemBrowser is the desktop rendition of the OS deep link: it listens
// on a loopback port for the post-login redirect and opens the login
// page in the user's default browser. One instance serves one login
// attempt; dismissal is modelled by cancelling the context.
type SystemBrowser struct {
	listener net.Listener
	openCmd  func(url string) error
}

// SystemBrowserOption overrides SystemBrowser internals (for testing).
type SystemBrowserOption func(*SystemBrowser)

// WithOpenCommand replaces how the browser process is launched.
func WithOpenCommand(open func(url string) error) SystemBrowserOption {
	return func(b *SystemBrowser) {
		b.openCmd = open
	}
}

func NewSystemBrowser(options ...SystemBrowserOption) (*SystemBrowser, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errors.Wrap(err, "[NewSystemBrowser] failed to bind callback listener")
	}
	b := &SystemBrowser{
		listener: listener,
		openCmd:  openSystemBrowser,
	}
	for _, opt := range options {
		opt(b)
	}
	return b, nil
}

// CallbackURL is the loopback URL the login page redirects back to.
func (b *SystemBrowser) CallbackURL() string {
	return fmt.Sprintf("http://%s/callback", b.listener.Addr().String())
}

// OpenAuthSession launches the system browser on loginURL and waits for
// the callback, context cancellation (treated as the user dismissing the
// login), or a launch failure. The listener is closed on return; the
// instance is single-use.
func (b *SystemBrowser) OpenAuthSession(ctx context.Context, loginURL, callbackURL string) (BrowserResult, error) {
	landed := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackPage)
		select {
		case landed <- callbackURL + "?" + r.URL.RawQuery:
		default: // A second hit on the callback is ignored
		}
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(b.listener) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := b.openCmd(loginURL); err != nil {
		return BrowserResult{}, errors.Wrap(err, "[OpenAuthSession] failed to launch browser")
	}

	select {
	case url := <-landed:
		return BrowserResult{Type: BrowserResultSuccess, URL: url}, nil
	case <-ctx.Done():
		return BrowserResult{Type: BrowserResultCancelled}, nil
	}
}

func openSystemBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
