package http_handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cloud4wi/signup-service/internal/domain"
)

type fakeRegistry struct {
	result domain.RegistryResult
	err    error
	calls  []string
}

func (f *fakeRegistry) Lookup(ctx context.Context, email string) (domain.RegistryResult, error) {
	f.calls = append(f.calls, email)
	if f.err != nil {
		return domain.RegistryResult{}, f.err
	}
	if strings.EqualFold(strings.TrimSpace(email), "duplicate@cloud4wi.com") {
		return domain.RegistryResult{Exists: true, Message: "This email is already associated with an existing account."}, nil
	}
	return f.result, nil
}

type fakeGateway struct {
	sendErr  error
	checkErr error
	approved bool
	sends    []string
	checks   [][2]string
}

func (f *fakeGateway) Send(ctx context.Context, email string) error {
	f.sends = append(f.sends, email)
	return f.sendErr
}

func (f *fakeGateway) Check(ctx context.Context, email, code string) (bool, error) {
	f.checks = append(f.checks, [2]string{email, code})
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.approved, nil
}

type fakeFetcher struct {
	status int
	body   []byte
	err    error
}

func (f *fakeFetcher) Fetch(ctx context.Context, email string) (int, []byte, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return f.status, f.body, nil
}

// doJSON drives a handler through a real chi router so URL params resolve.
func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func proxyRouter(h *ProxyHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/check-email", h.CheckEmail)
	r.Post("/api/otp/send", h.SendOTP)
	r.Post("/api/otp/verify", h.VerifyOTP)
	r.Get("/api/enrich", h.Enrich)
	return r
}

func wizardRouter(h *WizardHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/signup/v1/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/identity", h.Identity)
			r.Post("/verify", h.Verify)
			r.Post("/resend", h.Resend)
			r.Post("/password", h.Password)
			r.Post("/business", h.Business)
			r.Post("/back", h.Back)
			r.Post("/submit", h.Submit)
			r.Post("/reset", h.Reset)
		})
	})
	return r
}
