package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"custodian/internal/compliance/adapters"
	"custodian/internal/compliance/handler"
	compliancemetrics "custodian/internal/compliance/metrics"
	"custodian/internal/compliance/service"
	"custodian/internal/compliance/store"
	storememory "custodian/internal/compliance/store/memory"
	storepostgres "custodian/internal/compliance/store/postgres"
	storeredis "custodian/internal/compliance/store/redis"
	jwttoken "custodian/internal/jwt_token"
	"custodian/internal/platform/config"
	"custodian/internal/platform/httpserver"
	"custodian/internal/platform/logger"
	platformmetrics "custodian/internal/platform/metrics"
	"custodian/internal/platform/postgres"
	platformredis "custodian/internal/platform/redis"
	"custodian/pkg/platform/audit"
	"custodian/pkg/platform/audit/publishers/compliance"
	kafkasink "custodian/pkg/platform/audit/sink/kafka"
	auditmemory "custodian/pkg/platform/audit/store/memory"
	auditpostgres "custodian/pkg/platform/audit/store/postgres"
	"custodian/pkg/platform/circuit"
	"custodian/pkg/platform/httputil"
	authmw "custodian/pkg/platform/middleware/auth"
	"custodian/pkg/platform/middleware/metadata"
	"custodian/pkg/platform/middleware/request"
	"custodian/pkg/platform/middleware/requesttime"
)

const auditorRole = "auditor"

// main wires dependencies from configuration and runs the HTTP server until
// SIGINT or SIGTERM. Business logic lives in internal/compliance.
func main() {
	configPath := flag.String("config", os.Getenv("CUSTODIAN_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	stores, err := buildStores(cfg, deps)
	if err != nil {
		return err
	}
	auditStore, err := buildAuditStore(cfg, deps)
	if err != nil {
		return err
	}

	publisherOpts := []compliance.Option{
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	}
	if cfg.Audit.Kafka.Enabled {
		sink, err := kafkasink.New(ctx, kafkasink.Config{
			Brokers:      cfg.Audit.Kafka.Brokers,
			Topic:        cfg.Audit.Kafka.Topic,
			Partitions:   cfg.Audit.Kafka.Partitions,
			Replication:  cfg.Audit.Kafka.Replication,
			PseudonymKey: []byte(cfg.Audit.Kafka.PseudonymKey),
		}, kafkasink.WithLogger(log))
		if err != nil {
			return fmt.Errorf("audit kafka sink: %w", err)
		}
		defer sink.Close()
		publisherOpts = append(publisherOpts, compliance.WithSink(sink))
		log.Info("audit stream enabled", "topic", cfg.Audit.Kafka.Topic)
	}
	publisher := compliance.New(auditStore, publisherOpts...)
	defer publisher.Close()

	breaker := circuit.New("third-party-notifier",
		circuit.WithFailureThreshold(cfg.Notifier.FailureThreshold),
		circuit.WithSuccessThreshold(cfg.Notifier.SuccessThreshold),
	)
	svc := service.New(service.Config{
		GDPREnabled:  cfg.Compliance.GDPREnabled,
		HIPAAEnabled: cfg.Compliance.HIPAAEnabled,
		ContactEmail: cfg.Compliance.ContactEmail,
		LockTimeout:  cfg.Compliance.LockTimeout,
	}, stores, publisher,
		service.WithLogger(log),
		service.WithMetrics(compliancemetrics.New(reg)),
		service.WithNotifier(adapters.NewBreakerNotifier(adapters.NewSimulatedNotifier(), breaker, log)),
	)
	if err := svc.Init(ctx); err != nil {
		return fmt.Errorf("init compliance service: %w", err)
	}
	defer func() { _ = svc.Close(context.WithoutCancel(ctx)) }()

	router := newRouter(cfg, log, reg, svc, deps)
	srv := httpserver.New(cfg.Server, router)
	return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

// infra holds the optional shared connections.
type infra struct {
	db    *sql.DB
	redis *platformredis.Client
}

func (i *infra) close() {
	if i.db != nil {
		_ = i.db.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
}

func openInfra(ctx context.Context, cfg *config.Config, log *slog.Logger) (*infra, error) {
	i := &infra{}
	if cfg.State.Backend == "postgres" || cfg.Audit.Backend == "postgres" {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		i.db = db
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(db); err != nil {
				i.close()
				return nil, err
			}
			log.Info("postgres migrations applied")
		}
	}
	if cfg.State.Backend == "redis" {
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			i.close()
			return nil, err
		}
		i.redis = client
	}
	return i, nil
}

func buildStores(cfg *config.Config, i *infra) (*store.Stores, error) {
	switch cfg.State.Backend {
	case "memory":
		return storememory.NewStores(), nil
	case "redis":
		return storeredis.NewStores(i.redis.Client, i.redis.Prefix()), nil
	case "postgres":
		return storepostgres.NewStores(i.db), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

func buildAuditStore(cfg *config.Config, i *infra) (audit.Store, error) {
	switch cfg.Audit.Backend {
	case "memory":
		return auditmemory.NewInMemoryStore(), nil
	case "postgres":
		return auditpostgres.New(i.db), nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Audit.Backend)
	}
}

func newRouter(cfg *config.Config, log *slog.Logger, reg *prometheus.Registry, svc *service.Service, i *infra) http.Handler {
	httpMetrics := platformmetrics.New(reg)
	h := handler.New(svc, log)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(httpMetrics.Middleware)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if i.redis != nil {
			if err := i.redis.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		if i.db != nil {
			if err := i.db.PingContext(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "postgres": err.Error()})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/v1/compliance", func(r chi.Router) {
		if !cfg.Auth.Disabled {
			jwt := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
			r.Use(authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), log))
		} else {
			log.Warn("API authentication disabled", "production", cfg.IsProduction())
		}
		h.Register(r)
		r.Group(func(r chi.Router) {
			if !cfg.Auth.Disabled {
				r.Use(authmw.RequireRole(auditorRole, log))
			}
			h.RegisterAudit(r)
		})
	})
	return r
}
