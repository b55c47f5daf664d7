package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vidgallery/vidgallery/internal/auth"
	"github.com/vidgallery/vidgallery/internal/database"
	"github.com/vidgallery/vidgallery/internal/httputil"
	"github.com/vidgallery/vidgallery/internal/ratelimit"
	"github.com/vidgallery/vidgallery/internal/validate"
	"github.com/vidgallery/vidgallery/internal/video"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	DB        database.DBTX
	Pinger    Pinger
	JWTSecret string
	BaseURL   string
}

type Server struct {
	router       chi.Router
	pinger       Pinger
	authHandler  *auth.Handler
	videoHandler *video.Handler
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(requestLogger("/api/health"))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(cfg.BaseURL))

	s := &Server{router: r, pinger: cfg.Pinger}

	if cfg.DB != nil {
		s.authHandler = auth.NewHandler(cfg.DB, cfg.JWTSecret)
		s.videoHandler = video.NewHandler(cfg.DB)
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/limits", s.handleLimits)

	if s.authHandler != nil {
		authLimiter := ratelimit.NewLimiter(0.5, 5)
		s.router.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/api/signup", s.authHandler.Signup)
			r.Post("/api/login", s.authHandler.Login)
		})
	}

	if s.videoHandler != nil {
		s.router.Route("/api/videos", func(r chi.Router) {
			r.Use(s.authHandler.Middleware)
			r.Get("/", s.videoHandler.List)
			r.Post("/", s.videoHandler.Create)
			r.Post("/{id}/like", s.videoHandler.Like)
			r.Delete("/{id}", s.videoHandler.Delete)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"database unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleLimits publishes the field length limits so clients can
// validate before submitting.
func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, validate.FieldLimits())
}
