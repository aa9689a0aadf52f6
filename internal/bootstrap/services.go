package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elan-ev/tobira-auth-callback-service/config"
	"github.com/elan-ev/tobira-auth-callback-service/internal/adapters/courses"
	rediscache "github.com/elan-ev/tobira-auth-callback-service/internal/adapters/redis"
	"github.com/elan-ev/tobira-auth-callback-service/internal/adapters/userlogin"
	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
	"github.com/elan-ev/tobira-auth-callback-service/internal/observability/metrics"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Resolver *core.Resolver
	Roles    *core.RoleService
	Admins   *core.AdminRegistry
	Metrics  *metrics.Metrics
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the role resolution pipeline: admin registry, caches,
// upstream clients, role assembly and the resolver.
func NewServices(deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var m *metrics.Metrics
	if cfg.Observability.MetricsEnabled {
		m = metrics.New()
	}

	// Cache keys are namespaced by the clients ("courses:", "login:"), so
	// both caches can share one Redis keyspace. In-process they are kept
	// separate so login entries never evict course entries.
	courseCache := newCache(deps)
	loginCache := newCache(deps)

	courseLookup := courses.NewClient(courses.Options{
		Config: courses.Config{
			URLTemplate: cfg.Upstream.UserCoursesURL,
			Timeout:     cfg.Upstream.Timeout,
		},
		Cache:   courseCache,
		Logger:  logger,
		Metrics: m,
	})

	loginVerifier := userlogin.NewClient(userlogin.Options{
		Config: userlogin.Config{
			URLTemplate: cfg.Upstream.UserLoginURL,
			Timeout:     cfg.Upstream.Timeout,
		},
		Logger:  logger,
		Metrics: m,
	})

	admins := core.NewAdminRegistry(cfg.Auth.AdminUsers, cfg.Auth.AdminMails)
	roles := core.NewRoleService(core.RoleServiceOptions{
		Admins:  admins,
		Courses: courseLookup,
		Logger:  logger,
	})

	resolver := core.NewResolver(core.ResolverOptions{
		Roles:             roles,
		Login:             loginVerifier,
		LoginCache:        loginCache,
		DisplayNameFormat: cfg.Auth.DisplayNameFormat,
		CustomRoles:       cfg.Auth.CustomRoles,
		Logger:            logger,
	})

	return ServiceContainer{
		Resolver: resolver,
		Roles:    roles,
		Admins:   admins,
		Metrics:  m,
	}
}

// newCache selects the cache backend: Redis when configured, so multiple
// instances share lookup results, otherwise an in-process LRU.
func newCache(deps *ServiceDeps) core.Cache {
	cfg := deps.Config
	if deps.RedisClient != nil {
		return rediscache.NewRoleCache(deps.RedisClient, "tobira-auth:", cfg.Cache.TTL)
	}
	return core.NewMemoryCache(cfg.Cache.Size, cfg.Cache.TTL)
}

// ConnectRedis connects to Redis when an address is configured. It returns
// nil without error when Redis is not configured.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis after ping failure", "error", cerr)
		}
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.InfoContext(ctx, "connected to redis", "addr", cfg.Addr)
	return client, nil
}
