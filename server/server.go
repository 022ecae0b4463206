// Package server wires the stores, services and HTTP handlers of the degree
// portal into one chi router and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/degreeportal-go/applications"
	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
	"github.com/user/degreeportal-go/config"
	"github.com/user/degreeportal-go/degreecourses"
	_ "github.com/user/degreeportal-go/docs" // registers the swagger document
	"github.com/user/degreeportal-go/logging"
	"github.com/user/degreeportal-go/users"
)

// Stores groups the persistence of every module.
type Stores struct {
	Users        users.Store
	Courses      degreecourses.Store
	Applications applications.Store
}

// NewMemoryStores returns empty in-memory stores.
func NewMemoryStores() Stores {
	return Stores{
		Users:        users.NewMemoryStore(),
		Courses:      degreecourses.NewMemoryStore(),
		Applications: applications.NewMemoryStore(),
	}
}

// NewPostgresStores returns stores sharing one pgx pool.
func NewPostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:        users.NewPostgresStore(pool),
		Courses:      degreecourses.NewPostgresStore(pool),
		Applications: applications.NewPostgresStore(pool),
	}
}

// Services groups the business logic the router exposes.
type Services struct {
	Auth          *auth.Service
	Authenticator *auth.TokenAuthenticator
	Users         *users.UserService
	Courses       degreecourses.DegreeCourseService
	Applications  applications.ApplicationService
}

// NewServices builds every service over stores. opts reach the token issuer and authenticator.
func NewServices(cfg *config.AuthConfig, stores Stores, opts ...auth.TokenOption) Services {
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	return Services{
		Auth:          auth.NewService(stores.Users, hasher, auth.NewTokenIssuer(cfg.JWTSecret, opts...)),
		Authenticator: auth.NewTokenAuthenticator(cfg.JWTSecret, opts...),
		Users:         users.NewUserService(stores.Users, hasher, cfg.BootstrapAdminPassword),
		Courses:       degreecourses.NewDegreeCourseService(stores.Courses),
		Applications:  applications.NewApplicationService(stores.Applications, stores.Courses, stores.Users),
	}
}

// requestTimeout bounds one request; the server's WriteTimeout leaves room for
// the timeout response to be written.
const requestTimeout = 60 * time.Second

// NewRouter returns the HTTP handler of the whole API.
func NewRouter(svc Services, cfg *config.ServerConfig, logger *slog.Logger) http.Handler {
	authHandlers := auth.NewHandlers(svc.Auth)
	userHandlers := users.NewUserHandlers(svc.Users)
	courseHandler := degreecourses.NewCourseHandler(svc.Courses)
	applicationHandler := applications.NewApplicationHandler(svc.Applications)
	authenticate := auth.JWTMiddleware(svc.Authenticator)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Set before any Route call so that sub-routers inherit them.
	r.NotFound(endpointNotExisting)
	r.MethodNotAllowed(endpointNotExisting)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/authenticate", authHandlers.RegisterRoutes)
		r.Route("/publicUsers", userHandlers.RegisterPublicRoutes)

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate)
			userHandlers.RegisterRoutes(r)
		})

		r.Route("/degreeCourses", func(r chi.Router) {
			courseHandler.RegisterRoutes(r, authenticate)
			r.With(authenticate, auth.RequireAccess(auth.AdminOnly)).
				Get("/{id}/degreeCourseApplications", applicationHandler.HandleListForCourse())
		})

		r.Route("/degreeCourseApplications", func(r chi.Router) {
			r.Use(authenticate)
			applicationHandler.RegisterRoutes(r)
		})
	})

	return r
}

func endpointNotExisting(w http.ResponseWriter, r *http.Request) {
	auth.WriteError(w, r, apperror.NewNotFoundError("Endpoint not existing", nil))
}

// recoverer turns a handler panic into the standard 500 body.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				auth.WriteError(w, r, apperror.NewInternalError("panic", fmt.Errorf("%v", rvr)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Run serves handler on cfg.Port until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.ServerConfig, handler http.Handler) error {
	srv := newHTTPServer(cfg, handler)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
