package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-mall-client/internal/config"
	"github.com/jrsteele09/go-mall-client/server/shoprepo"
	"github.com/jrsteele09/go-mall-client/token"
	"github.com/jrsteele09/go-mall-client/users"
	"github.com/rs/zerolog/log"
)

// ErrMissingRepo is returned by New when a repository is not supplied
var ErrMissingRepo = errors.New("repository is required")

// Server is a development implementation of the mall HTTP API
type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	router  *mux.Router
	api     *mux.Router
	handler http.HandlerFunc
	routes  []string
	config  config.Config
	users   users.UserRepo
	shop    shoprepo.Repo
	signer  token.Signer
	creator *token.Creator
	revoked token.RevocationList
	now     func() time.Time
}

func New(config config.Config, userRepo users.UserRepo, shopRepo shoprepo.Repo) (*Server, error) {
	if userRepo == nil || shopRepo == nil {
		return nil, fmt.Errorf("[Server New] %w", ErrMissingRepo)
	}

	signer, err := token.NewSigner(config.GetSigningAlgorithm(), config.GetSigningSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] signer: %w", err)
	}
	s := &Server{
		env:     config.GetEnv(),
		router:  mux.NewRouter(),
		config:  config,
		users:   userRepo,
		shop:    shopRepo,
		signer:  signer,
		creator: token.NewCreator(signer, config.GetTokenTTL()),
		revoked: token.NewInMemoryRevocationList(),
		now:     time.Now,
	}
	s.api = s.router.PathPrefix(APIPrefix).Subrouter()
	s.router.NotFoundHandler = ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...)
	s.router.MethodNotAllowedHandler = ChainMiddleware(s.MethodNotAllowedHandler(), s.APIMiddleware()...)
	s.api.NotFoundHandler = s.router.NotFoundHandler
	s.api.MethodNotAllowedHandler = s.router.MethodNotAllowedHandler
	s.handler = s.CorsMiddleware(s.router.ServeHTTP)

	// Bootstrap: ensure the administrator account and demo catalog exist
	if err := s.InitialiseSystem(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

// RegisterRouteFunc mounts handler for method and path beneath APIPrefix
func (s *Server) RegisterRouteFunc(method, path string, handler http.HandlerFunc) {
	s.routes = append(s.routes, method+" "+APIPrefix+path)
	s.api.HandleFunc(path, handler).Methods(method)
}

// Routes lists the registered "METHOD /path" patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		var method, path string
		if _, err := fmt.Sscanf(route, "%s %s", &method, &path); err != nil {
			continue
		}
		logRoute(method, path)
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%s] %s", paintMethod(method), path)
}
