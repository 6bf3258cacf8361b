package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/cloud4wi/signup-service/internal/application/wizard"
	"github.com/cloud4wi/signup-service/internal/config"
	"github.com/cloud4wi/signup-service/internal/infrastructure/enrich"
	"github.com/cloud4wi/signup-service/internal/infrastructure/memory"
	"github.com/cloud4wi/signup-service/internal/infrastructure/otp"
	"github.com/cloud4wi/signup-service/internal/infrastructure/registry"
	"github.com/cloud4wi/signup-service/internal/infrastructure/redis"
	"github.com/cloud4wi/signup-service/internal/logger"
	http_handlers "github.com/cloud4wi/signup-service/internal/transport/http/handlers"
	"github.com/cloud4wi/signup-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewOTPGateway func() (wizard.OTPGateway, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) session store: redis when reachable, memory otherwise (best-effort)
	var sessionStore wizard.SessionStore
	var storePinger http_handlers.Pinger

	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory sessions")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			if rc, ok := c.(*redis.Client); ok {
				sessionStore = redis.NewSessionStore(rc, cfg.SessionTTL)
				storePinger = rc
			}
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}
	if sessionStore == nil {
		sessionStore = memory.NewSessionStore(cfg.SessionTTL)
	}

	// 2) OTP gateway; without credentials the affected endpoints fail loudly
	gateway, err := deps.NewOTPGateway()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("otp provider not configured; verification endpoints will fail")
		gateway = otp.Unconfigured{Reason: err}
	}

	// 3) remaining upstreams
	checker := registry.NewSentinel()
	enricher := enrich.NewClient(cfg.EnrichBaseURL, cfg.EnrichToken, cfg.UpstreamTimeout)

	// 4) wizard service
	wizardSvc := wizard.NewService(
		sessionStore,
		checker,
		gateway,
		enricher,
		wizard.Config{
			ResendCooldown: cfg.ResendCooldown,
			SubmitDelay:    cfg.SubmitDelay,
		},
	)

	wizardSvc = wizardSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	// 5) handlers
	proxyH := http_handlers.NewProxyHandler(checker, gateway, enricher)
	wizardH := http_handlers.NewWizardHandler(wizardSvc)
	healthH := http_handlers.NewHealthHandler(storePinger)

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Proxy:  proxyH,
		Wizard: wizardH,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewOTPGateway: func() (wizard.OTPGateway, error) {
			return otp.FromEnv()
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
