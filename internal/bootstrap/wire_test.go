package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cloud4wi/signup-service/internal/application/wizard"
	"github.com/cloud4wi/signup-service/internal/config"
	"github.com/cloud4wi/signup-service/internal/logger"
	"github.com/cloud4wi/signup-service/internal/transport/http/router"
)

func init() {
	logger.Init()
}

type fakeGateway struct{}

func (fakeGateway) Send(ctx context.Context, email string) error { return nil }
func (fakeGateway) Check(ctx context.Context, email, code string) (bool, error) {
	return code == "123456", nil
}

type fakeRedis struct {
	pingErr error
	closed  bool
}

func (f *fakeRedis) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:             "dev",
		HTTPAddr:        ":0",
		SessionTTL:      time.Hour,
		ResendCooldown:  45 * time.Second,
		UpstreamTimeout: time.Second,
	}
}

func testDeps(cfg *config.Config) Deps {
	return Deps{
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		NewOTPGateway: func() (wizard.OTPGateway, error) {
			return fakeGateway{}, nil
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

func TestNewServerWithDepsMemoryStore(t *testing.T) {
	srv, cleanup, err := NewServerWithDeps(testDeps(testConfig()))
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, ":0", srv.Addr)
	require.NotNil(t, srv.Handler)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServerConfigFailure(t *testing.T) {
	deps := testDeps(nil)
	deps.LoadConfig = func() (*config.Config, error) { return nil, errors.New("bad env") }

	_, _, err := NewServerWithDeps(deps)
	require.Error(t, err)
}

func TestNewServerRouterFailure(t *testing.T) {
	deps := testDeps(testConfig())
	deps.NewRouter = func(d router.Deps) (http.Handler, error) { return nil, errors.New("boom") }

	_, _, err := NewServerWithDeps(deps)
	require.Error(t, err)
}

func TestNewServerUnreachableRedisFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	fr := &fakeRedis{pingErr: errors.New("refused")}
	deps := testDeps(cfg)
	deps.NewRedis = func(addr, password string, db int) RedisClient { return fr }

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	defer cleanup()

	require.True(t, fr.closed)

	// sessions still work on the in-memory store
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signup/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestNewServerMissingOTPCredentialsFailsLoudly(t *testing.T) {
	deps := testDeps(testConfig())
	deps.NewOTPGateway = func() (wizard.OTPGateway, error) {
		return nil, errors.New("missing credentials")
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	defer cleanup()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/otp/send", strings.NewReader(`{"email":"jane@acme.com"}`))
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Server configuration error")
}
