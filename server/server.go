package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	gsessions "github.com/gorilla/sessions"
	"github.com/taskbridge/go-task-server/auth"
	"github.com/taskbridge/go-task-server/internal/config"
	"github.com/taskbridge/go-task-server/server/pendingredirect"
	"github.com/taskbridge/go-task-server/sessions"
	"github.com/taskbridge/go-task-server/tasks"
	"github.com/taskbridge/go-task-server/users"
)

// Repos holds the repositories the server operates on.
type Repos struct {
	Users    users.Repo
	Tasks    tasks.Repo
	Sessions sessions.Repo
}

type Server struct {
	env              string // Environment (e.g., "DEV", "production")
	mux              *http.ServeMux
	routes           []string
	config           config.Config
	auth             *auth.Service
	repos            Repos
	cookieStore      *gsessions.CookieStore
	pendingRedirects pendingredirect.Repo
}

func New(cfg config.Config, repos Repos, pendingRedirectRepo pendingredirect.Repo) (*Server, error) {
	authService, err := auth.NewService(auth.Repos{Users: repos.Users, Sessions: repos.Sessions}, cfg)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}
	if repos.Tasks == nil {
		return nil, fmt.Errorf("[Server New] Tasks repo is required")
	}
	if pendingRedirectRepo == nil {
		return nil, fmt.Errorf("[Server New] pending redirect repo is required")
	}

	s := &Server{
		mux:              http.NewServeMux(),
		config:           cfg,
		repos:            repos,
		auth:             authService,
		cookieStore:      gsessions.NewCookieStore([]byte(cfg.GetSessionCookieKey())),
		pendingRedirects: pendingRedirectRepo,
	}
	s.env = cfg.GetEnv()

	// Bootstrap: ensure the demo user and their tasks exist
	if err := s.InitialiseSystem(cfg); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
