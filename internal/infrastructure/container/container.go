// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aiapp "github.com/chefwise/chefwise/internal/application/ai"
	mealplanapp "github.com/chefwise/chefwise/internal/application/mealplan"
	preferencesapp "github.com/chefwise/chefwise/internal/application/preferences"
	recipeapp "github.com/chefwise/chefwise/internal/application/recipe"
	"github.com/chefwise/chefwise/internal/infrastructure/ai/openai"
	"github.com/chefwise/chefwise/internal/infrastructure/config"
	"github.com/chefwise/chefwise/internal/infrastructure/monitoring"
	"github.com/chefwise/chefwise/internal/infrastructure/persistence"
	gormrepo "github.com/chefwise/chefwise/internal/infrastructure/persistence/gorm"
	"github.com/chefwise/chefwise/internal/infrastructure/persistence/memory"
	"github.com/chefwise/chefwise/internal/infrastructure/persistence/redis"
	"github.com/chefwise/chefwise/internal/ports/inbound"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	"github.com/chefwise/chefwise/pkg/errors"
	"github.com/chefwise/chefwise/pkg/healthcheck"
	"github.com/chefwise/chefwise/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	RepositoryModule,
	AIModule,
	ServiceModule,
	HealthModule,
	LifecycleModule,
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug && !cfg.IsProduction(),
		})
	},
)

// MonitoringModule provides the metrics registry, metrics, and tracer
var MonitoringModule = fx.Provide(
	prometheus.NewRegistry,
	func(reg *prometheus.Registry) prometheus.Registerer { return reg },
	func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
	func(cfg *config.Config, reg prometheus.Registerer) *monitoring.Metrics {
		if !cfg.Monitoring.EnableMetrics {
			return nil
		}
		return monitoring.NewMetrics(reg)
	},
	func() *monitoring.Tracer {
		return monitoring.NewTracer(otel.GetTracerProvider())
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := persistence.Open(cfg, log)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if err := persistence.Close(db); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
				return nil
			},
		})
		return db, nil
	},
)

// RepositoryModule provides the unit of work and the draft store
var RepositoryModule = fx.Provide(
	func(db *gorm.DB, log *zap.Logger, metrics *monitoring.Metrics, tracer *monitoring.Tracer) outbound.UnitOfWork {
		return gormrepo.NewUnitOfWork(db, log,
			gormrepo.WithUnitOfWorkMetrics(metrics),
			gormrepo.WithUnitOfWorkTracer(tracer),
		)
	},
	NewDraftStore,
)

// NewDraftStore provides the draft store selected by drafts.backend
func NewDraftStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.DraftStore, error) {
	if cfg.Drafts.Backend != config.DraftsRedis {
		log.Debug("Using in-memory draft store", zap.Duration("ttl", cfg.Drafts.TTL))
		return memory.NewDraftStore(cfg.Drafts.TTL), nil
	}

	client, err := redis.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	log.Debug("Using redis draft store",
		zap.String("addr", cfg.RedisAddr()),
		zap.Duration("ttl", cfg.Drafts.TTL),
	)
	return redis.NewDraftStore(goredis.Cmdable(client), cfg.Drafts.TTL, log), nil
}

// AIModule provides the model client
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, metrics *monitoring.Metrics, tracer *monitoring.Tracer) (outbound.ModelClient, error) {
		return openai.NewClient(cfg.AI, log,
			openai.WithMetrics(metrics),
			openai.WithTracer(tracer),
		)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		aiapp.NewRecipeSuggestionService,
		fx.As(new(inbound.RecipeSuggester)),
	),
	fx.Annotate(
		func(client outbound.ModelClient, log *zap.Logger) *aiapp.MealPlanService {
			return aiapp.NewMealPlanService(client, log)
		},
		fx.As(new(inbound.MealPlanner)),
	),
	fx.Annotate(
		aiapp.NewRecipeModificationService,
		fx.As(new(inbound.RecipeModifier)),
	),
	fx.Annotate(
		recipeapp.NewLibraryService,
		fx.As(new(inbound.RecipeLibrary)),
	),
	fx.Annotate(
		func(uow outbound.UnitOfWork, log *zap.Logger) *mealplanapp.Service {
			return mealplanapp.NewService(uow, log)
		},
		fx.As(new(inbound.MealPlanLibrary)),
	),
	fx.Annotate(
		preferencesapp.NewService,
		fx.As(new(inbound.PreferencesService)),
	),
)

// HealthModule provides the dependency checks behind "chefwise doctor"
var HealthModule = fx.Provide(NewHealthCheck)

// draftProbeID never names a stored draft
const draftProbeID = "healthcheck-probe"

// NewHealthCheck registers checks for the database, the draft store and the
// model configuration. The model check only inspects settings and makes no
// request.
func NewHealthCheck(cfg *config.Config, db *gorm.DB, drafts outbound.DraftStore, log *zap.Logger) *healthcheck.HealthCheck {
	hc := healthcheck.New("", log)

	hc.Register("database", healthcheck.NewDatabaseChecker(db))

	hc.Register("drafts", healthcheck.NewCustomChecker(func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		metadata := map[string]interface{}{"backend": cfg.Drafts.Backend, "ttl": cfg.Drafts.TTL.String()}
		_, err := drafts.Get(ctx, draftProbeID)
		if err == nil || errors.IsNotFound(err) {
			return healthcheck.StatusHealthy, "", metadata
		}
		return healthcheck.StatusUnhealthy, err.Error(), metadata
	}))

	hc.Register("model", healthcheck.NewCustomChecker(func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		metadata := map[string]interface{}{"model": cfg.AI.Model, "complex_model": cfg.AI.ComplexModel}
		if cfg.AI.BaseURL != "" {
			metadata["base_url"] = cfg.AI.BaseURL
		}
		if strings.TrimSpace(cfg.AI.APIKey) == "" {
			return healthcheck.StatusDegraded, "OPENAI_API_KEY is not set; only library commands will work", metadata
		}
		return healthcheck.StatusHealthy, "", metadata
	}))

	return hc
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks dumps metrics and flushes logs on shutdown
func RegisterLifecycleHooks(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, gatherer prometheus.Gatherer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if cfg.Monitoring.EnableMetrics && cfg.Monitoring.MetricsFile != "" {
				if err := monitoring.WriteTextfile(cfg.Monitoring.MetricsFile, gatherer); err != nil {
					log.Error("Failed to write metrics", zap.Error(err))
				}
			}
			_ = log.Sync()
			return nil
		},
	})
}

// New builds the application for cfg and fills targets, which must be
// pointers to provided types. Only the dependencies the targets need are
// constructed, so commands that never call the model run without an API key.
func New(cfg *config.Config, targets ...interface{}) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		Module,
		fx.Populate(targets...),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			if cfg.App.Debug {
				return &fxevent.ZapLogger{Logger: log.Named("fx")}
			}
			return fxevent.NopLogger
		}),
	)
}
