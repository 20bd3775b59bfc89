package server

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	browserSessionName = "taskapp_session"

	sessionValueToken  = "sessionToken"
	sessionValueFlowID = "handoffFlowID"

	contentTypeHTML = "text/html; charset=utf-8"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Error   string
	Email   string // Preserve email on error
}

// LoginPageUIHandler displays the login page (GET /login).
//
// When the postLoginMobileAppRedirectUrl query parameter is present this
// is a mobile handoff login: any existing browser session is revoked
// (the intent is to mint a fresh token, never to silently reuse an
// already-authenticated web session) and the redirect target is stashed
// server-side, keyed by a single-use flow ID in the browser cookie.
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		browserSession, _ := s.cookieStore.Get(r, browserSessionName)

		if target := r.URL.Query().Get(ParamMobileRedirectURL); target != "" {
			// Force clear any existing session to force a fresh login
			if token, ok := browserSession.Values[sessionValueToken].(string); ok && token != "" {
				if err := s.auth.Logout(token); err != nil {
					log.Err(err).Msg("Handoff login: failed to revoke existing session")
				}
			}
			delete(browserSession.Values, sessionValueToken)

			flowID := uuid.New().String()
			if err := s.pendingRedirects.Put(flowID, target); err != nil {
				log.Err(err).Msg("Handoff login: failed to stash redirect target")
				http.Error(w, "Invalid redirect target", http.StatusBadRequest)
				return
			}
			browserSession.Values[sessionValueFlowID] = flowID

			if err := browserSession.Save(r, w); err != nil {
				log.Err(err).Msg("Handoff login: failed to save browser session")
			}
		}

		data := LoginPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
			Email:   r.URL.Query().Get("email"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" || password == "" {
			s.renderLoginError(w, r, "Email and password are required", email)
			return
		}

		session, err := s.auth.Login(email, password)
		if err != nil {
			s.renderLoginError(w, r, "Invalid email or password", email)
			return
		}

		browserSession, _ := s.cookieStore.Get(r, browserSessionName)
		browserSession.Values[sessionValueToken] = session.Token
		if err := browserSession.Save(r, w); err != nil {
			log.Err(err).Msg("Login: failed to save browser session")
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, RouteLoginSuccess, http.StatusSeeOther)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browserSession, _ := s.cookieStore.Get(r, browserSessionName)

		if token, ok := browserSession.Values[sessionValueToken].(string); ok && token != "" {
			if err := s.auth.Logout(token); err != nil {
				log.Err(err).Msg("Logout: failed to delete session")
			}
		}

		browserSession.Options.MaxAge = -1 // Delete cookie
		if err := browserSession.Save(r, w); err != nil {
			log.Err(err).Msg("Logout: failed to clear browser session")
		}

		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// renderLoginError redirects to the login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
