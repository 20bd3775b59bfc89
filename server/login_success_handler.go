package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// LoginSuccessHandler is the post-login landing page. When a mobile
// redirect target was stashed before the login form, the browser is sent
// straight on to `target?sessionId=<token>` and the stash is cleared;
// the token therefore only leaves the server after authentication has
// actually succeeded, and a later unrelated page load cannot re-trigger
// the mobile redirect. Without a stash it falls through to the home page.
func (s *Server) LoginSuccessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browserSession, _ := s.cookieStore.Get(r, browserSessionName)

		token, _ := browserSession.Values[sessionValueToken].(string)
		if token == "" {
			// Not a post-login state; leave any stash alone
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		flowID, ok := browserSession.Values[sessionValueFlowID].(string)
		if !ok || flowID == "" {
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		// Single-use: drop the flow ID from the cookie and consume the stash
		delete(browserSession.Values, sessionValueFlowID)
		if err := browserSession.Save(r, w); err != nil {
			log.Err(err).Msg("Login success: failed to save browser session")
		}

		target, err := s.pendingRedirects.Consume(flowID)
		if err != nil {
			log.Err(err).Str("flow_id", flowID).Msg("Login success: no pending redirect target")
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, target+"?"+ParamSessionID+"="+url.QueryEscape(token), http.StatusSeeOther)
	}
}
