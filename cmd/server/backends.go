package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/janisto/realty-portal/internal/config"
	"github.com/janisto/realty-portal/internal/http/health"
	"github.com/janisto/realty-portal/internal/http/v1/routes"
	"github.com/janisto/realty-portal/internal/platform/auth"
	"github.com/janisto/realty-portal/internal/platform/firebase"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/storage"
	favoritesvc "github.com/janisto/realty-portal/internal/service/favorite"
	leadsvc "github.com/janisto/realty-portal/internal/service/lead"
	"github.com/janisto/realty-portal/internal/service/notify"
	personalizationsvc "github.com/janisto/realty-portal/internal/service/personalization"
	"github.com/janisto/realty-portal/internal/service/postal"
	profilesvc "github.com/janisto/realty-portal/internal/service/profile"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

// backends are the stores, clients and verifier the API runs on.
type backends struct {
	services routes.Services
	verifier auth.Verifier
	checks   map[string]health.Check
	closers  []func() error
}

// localAdmin is the identity behind ADMIN_TOKEN when Firebase is not
// configured.
var localAdmin = &auth.User{UID: "local-admin", Email: "admin@localhost", Admin: true}

// newBackends connects every configured backend. Without a Firebase project
// the catalog, favorites, profiles and leads live in memory, seeded with sample
// listings. DATABASE_URL moves leads to Postgres and REDIS_URL moves
// personalization to Redis.
func newBackends(ctx context.Context, cfg *config.Config) (_ *backends, err error) {
	b := &backends{checks: make(map[string]health.Check)}
	defer func() {
		if err != nil {
			_ = b.Close()
		}
	}()

	var leadRepo leadsvc.Repository
	if cfg.FirebaseProjectID != "" {
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, clients.Close)
		b.verifier = auth.NewFirebaseVerifier(clients.Auth)
		b.services.Properties = propertysvc.NewFirestoreStore(clients.Firestore)
		b.services.Favorites = favoritesvc.NewFirestoreStore(clients.Firestore)
		b.services.Profiles = profilesvc.NewFirestoreStore(clients.Firestore)
		leadRepo = leadsvc.NewFirestoreRepository(clients.Firestore)
		applog.LogInfo(ctx, "using firestore", zap.String("project", cfg.FirebaseProjectID),
			zap.Bool("emulator", firebase.UsingEmulators()))
	} else {
		verifier := auth.NewStaticVerifier()
		if cfg.AdminToken != "" {
			verifier.Add(cfg.AdminToken, localAdmin)
		}
		b.verifier = verifier
		b.services.Properties = propertysvc.NewMemoryStore(propertysvc.SampleListings()...)
		b.services.Favorites = favoritesvc.NewMemoryStore()
		b.services.Profiles = profilesvc.NewMemoryStore()
		leadRepo = leadsvc.NewMemoryRepository()
		applog.LogWarn(ctx, "FIREBASE_PROJECT_ID not set, using in-memory stores",
			zap.Bool("adminToken", cfg.AdminToken != ""))
	}

	if cfg.DatabaseURL != "" {
		pool, err := storage.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error { pool.Close(); return nil })
		b.checks["postgres"] = pool.Ping
		repo := leadsvc.NewPostgresRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrating leads table: %w", err)
		}
		leadRepo = repo
		applog.LogInfo(ctx, "storing leads in postgres")
	}

	var kv personalizationsvc.Backend = personalizationsvc.NewMemoryBackend()
	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		b.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		kv = personalizationsvc.NewRedisBackend(client, personalizationsvc.DefaultTTL)
		applog.LogInfo(ctx, "storing personalization in redis")
	}
	b.services.Personalization = personalizationsvc.NewStore(kv)

	notifier, err := b.notifier(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.services.Leads = leadsvc.NewService(leadRepo, b.services.Personalization, notifier)

	b.services.Postal = postal.NewClient(
		&http.Client{Timeout: cfg.PostalTimeout},
		postal.WithBaseURL(cfg.PostalBaseURL),
	)
	return b, nil
}

// notifier always logs leads and adds email and event delivery when
// configured.
func (b *backends) notifier(ctx context.Context, cfg *config.Config) (notify.Notifier, error) {
	notifiers := notify.Multi{notify.LogNotifier{}}

	if cfg.SMTP.Enabled() {
		notifiers = append(notifiers, notify.NewSMTPNotifier(smtpConfig(cfg.SMTP)))
		applog.LogInfo(ctx, "lead emails enabled", zap.String("smtpHost", cfg.SMTP.Host))
	}

	if cfg.AMQPURL != "" {
		publisher, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, publisher.Close)
		b.checks["amqp"] = func(context.Context) error { return publisher.Ready() }
		notifiers = append(notifiers, publisher)
		applog.LogInfo(ctx, "publishing lead events", zap.String("exchange", cfg.AMQPExchange))
	}

	if len(notifiers) == 1 {
		return notifiers[0], nil
	}
	return notifiers, nil
}

func smtpConfig(s config.SMTP) notify.SMTPConfig {
	return notify.SMTPConfig{
		Host:       s.Host,
		Port:       s.Port,
		Username:   s.Username,
		Password:   s.Password,
		From:       s.From,
		AgentEmail: s.AgentEmail,
		SiteName:   s.SiteName,
		Timeout:    s.Timeout,
		Insecure:   s.Insecure,
	}
}

// Close releases backends in reverse order of creation.
func (b *backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
