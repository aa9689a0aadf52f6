package httpx

import (
	"log/slog"
	"net/http"

	"github.com/elan-ev/tobira-auth-callback-service/config"
	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
	"github.com/elan-ev/tobira-auth-callback-service/internal/observability/metrics"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Resolver *core.Resolver
	Headers  config.HeaderConfig
	// Metrics enables the /metrics endpoint and request counting when set.
	Metrics *metrics.Metrics
	// EnableAuthEndpoints registers the auth and login callbacks.
	EnableAuthEndpoints bool
	// EnableDummyBackend registers the development stand-in user web services.
	EnableDummyBackend bool
	Logger             *slog.Logger
}

// NewRouter creates and configures the HTTP router with the middleware stack
// applied.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.EnableAuthEndpoints {
		authHandlers := &AuthHandlers{
			Resolver: services.Resolver,
			Headers:  services.Headers,
			Logger:   logger,
		}
		loginHandlers := &LoginHandlers{Resolver: services.Resolver, Logger: logger}
		mux.Handle("GET /auth/{$}", http.HandlerFunc(authHandlers.HandleAuthCallback))
		mux.Handle("POST /login/{$}", http.HandlerFunc(loginHandlers.HandleLoginCallback))
	}

	if services.EnableDummyBackend {
		dummyHandlers := &DummyBackendHandlers{Logger: logger}
		mux.Handle("POST /user/login/{username}", http.HandlerFunc(dummyHandlers.HandleLogin))
		mux.Handle("GET /user/{username}/courses", http.HandlerFunc(dummyHandlers.HandleCourses))
	}

	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics.Handler())
	}

	middlewares := []func(http.Handler) http.Handler{
		Recover(logger),
		RequestID(),
		Logging(logger),
	}
	if services.Metrics != nil {
		middlewares = append(middlewares, RecordMetrics(services.Metrics))
	}
	return Chain(mux, middlewares...)
}
