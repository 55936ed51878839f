package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"talentdesk/internal/aggregate"
	"talentdesk/internal/audit"
	"talentdesk/internal/authprovider"
	"talentdesk/internal/blobstore"
	"talentdesk/internal/cache"
	"talentdesk/internal/catalog"
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/internal/jwtauth"
	"talentdesk/internal/notify"
	"talentdesk/internal/platform/config"
	"talentdesk/internal/platform/httpserver"
	"talentdesk/internal/platform/logger"
	"talentdesk/internal/platform/metrics"
	platformredis "talentdesk/internal/platform/redis"
	"talentdesk/internal/provisioning"
	"talentdesk/internal/remote"
	"talentdesk/internal/source"
	httptransport "talentdesk/internal/transport/http"
	"talentdesk/internal/verification"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		log.Error("postgres pool init failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := docstore.NewPostgres(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	var keyed cache.KeyedCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		keyed = cache.NewRedis(redisClient.Client)
		log.Info("cache backend: redis")
	} else {
		keyed = cache.NewInMemory()
		log.Info("cache backend: in-memory")
	}

	accountsRemote := remote.NewAccounts(store)
	talentsRemote := remote.NewTalents(store)
	clientsRemote := remote.NewClients(store)
	adminsRemote := remote.NewAdmins(store)
	rolesRemote := remote.NewRoles(store)

	repo := aggregate.NewRepository(
		source.Pair[domain.Account]{
			Remote: accountsRemote,
			Local:  source.NewLocal[domain.Account](keyed, aggregate.CacheKeyAccounts),
		},
		source.Pair[domain.TalentProfile]{
			Remote: talentsRemote,
			Local:  source.NewLocal[domain.TalentProfile](keyed, aggregate.CacheKeyTalents),
		},
		source.Pair[domain.ClientProfile]{
			Remote: clientsRemote,
			Local:  source.NewLocal[domain.ClientProfile](keyed, aggregate.CacheKeyClients),
		},
		log,
	)

	var auditStore audit.Store = audit.NewInMemoryStore()
	if cfg.Kafka.Enabled() {
		kafkaStore, err := audit.NewKafkaStore(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka audit store init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
		log.Info("audit backend: kafka", "topic", cfg.Kafka.Topic)
	}
	publisher := audit.NewPublisher(256, log)
	auditWorker := audit.NewWorker(auditStore, publisher.Inbox(), log)

	blobs := blobstore.NewHTTPDeleter(cfg.BlobStorage.BaseURL, cfg.BlobStorage.Token, nil)
	verificationSvc := verification.NewService(talentsRemote, repo, blobs, log,
		verification.WithAuditPublisher(publisher),
	)

	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		mailer = notify.NewInMemory()
		log.Warn("smtp not configured, welcome emails will not be delivered")
	}
	registrar := authprovider.NewHTTPRegistrar(cfg.AuthProvider.BaseURL, cfg.AuthProvider.APIKey, nil)
	provisioningSvc := provisioning.NewService(adminsRemote, accountsRemote, registrar, mailer, log,
		provisioning.WithAuditPublisher(publisher),
	)

	roleCatalog := catalog.New(rolesRemote, keyed, log)
	if err := roleCatalog.SeedDefaults(ctx); err != nil {
		log.Error("role catalog seed failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	validator := jwtauth.NewService(cfg.Server.JWTSigningKey, "talentdesk")
	router := httptransport.NewRouter(log, m, validator,
		httptransport.NewAggregateHandler(repo, log),
		httptransport.NewVerificationHandler(verificationSvc, log),
		httptransport.NewAdminHandler(provisioningSvc, roleCatalog, log),
	)

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditWorker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting talentdesk", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
