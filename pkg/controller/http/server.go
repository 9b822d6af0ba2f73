package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/filterschema/pkg/usecase"
	"github.com/secmon-lab/filterschema/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	secureCookie  bool
	sessionMaxAge time.Duration
}

type Options func(*Server)

// WithSecureCookie forces the Secure attribute on the session cookie, for
// deployments behind a TLS terminating proxy
func WithSecureCookie(secure bool) Options {
	return func(s *Server) {
		s.secureCookie = secure
	}
}

// WithSessionMaxAge sets the lifetime of the session cookie
func WithSessionMaxAge(d time.Duration) Options {
	return func(s *Server) {
		s.sessionMaxAge = d
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:        r,
		uc:            uc,
		sessionMaxAge: 30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/views", func(r chi.Router) {
		r.Get("/", viewsHandler(uc.Filter))
		r.Route("/{view}", func(r chi.Router) {
			r.Get("/", viewHandler(uc.Filter))
			r.Get("/options", optionsHandler(uc.Filter))
			r.Post("/filter", filterHandler(uc.Filter))
		})
	})

	r.Route("/api/lists/{list}", func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Get("/state", stateHandler(uc.ViewState))
		r.Post("/pin", pinHandler(uc.ViewState))
		r.Put("/columns/{column}", columnHandler(uc.ViewState))
		r.Post("/toolbar", toolbarHandler(uc.ViewState))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
