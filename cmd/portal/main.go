package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hostable/credkit/modules/portal"
	"github.com/hostable/credkit/pkg/apikey"
	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/config"
	"github.com/hostable/credkit/pkg/httpserver"
	"github.com/hostable/credkit/pkg/invoice"
	"github.com/hostable/credkit/pkg/logger"
	"github.com/hostable/credkit/pkg/pg"
	"github.com/hostable/credkit/pkg/ratelimit"
	"github.com/hostable/credkit/pkg/redis"
	"github.com/hostable/credkit/pkg/sessiontoken"
	"github.com/hostable/credkit/pkg/twofactor"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Portal portal.Config
	PG     pg.Config
	Redis  redis.Config
	HTTP   httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	logOpts := []logger.Option{logger.WithService("portal")}
	if cfg.Environment == "development" {
		logOpts = append(logOpts, logger.WithDevelopment())
	}
	log := logger.New(logOpts...)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("portal exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	if err := cfg.Portal.Validate(); err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	store := portal.NewPgStorage(pool)

	tokens, err := sessiontoken.New(cfg.Portal.SessionSigningKey,
		sessiontoken.WithTTL(cfg.Portal.SessionTTL))
	if err != nil {
		return err
	}

	otp, err := twofactor.New(store,
		twofactor.WithTTL(cfg.Portal.OTPTTL),
		twofactor.WithLogger(log))
	if err != nil {
		return err
	}

	authSvc, err := auth.New(store, tokens, otp, auth.WithLogger(log))
	if err != nil {
		return err
	}

	keys, err := apikey.New(store, apikey.WithLogger(log))
	if err != nil {
		return err
	}

	signer, err := invoice.New(store, cfg.Portal.InvoiceSigningSecret,
		invoice.WithLogger(log))
	if err != nil {
		return err
	}

	limiter, err := ratelimit.New(
		ratelimit.NewRedisStore(rdb, "authlimit"),
		ratelimit.Config{Limit: cfg.Portal.AuthRateLimit, Window: cfg.Portal.AuthRateWindow},
	)
	if err != nil {
		return err
	}

	cookies := sessiontoken.NewCookieTransport(cfg.Portal.SessionCookieName, cfg.Portal.SecureCookies)

	router := portal.Router(portal.RouterOptions{
		Auth:        portal.NewAuthService(authSvc, tokens, cookies, portal.NewLogMailer(log), log),
		APIKeys:     portal.NewAPIKeyService(keys),
		Invoices:    portal.NewInvoiceService(signer, store, store),
		Authn:       portal.NewAuthenticator(tokens, cookies, keys, store),
		AuthLimiter: limiter,
		Healthchecks: map[string]func(context.Context) error{
			"postgres": pg.Healthcheck(pool),
			"redis":    redis.Healthcheck(rdb),
		},
	})

	return httpserver.New(cfg.HTTP, log).Run(ctx, router)
}
