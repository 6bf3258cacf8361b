package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appmw "github.com/cloud4wi/signup-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

// ProxyHandler exposes the frozen legacy /api/* endpoints.
type ProxyHandler interface {
	CheckEmail(w http.ResponseWriter, r *http.Request)
	SendOTP(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	Enrich(w http.ResponseWriter, r *http.Request)
}

// WizardHandler exposes the session-keyed wizard API.
type WizardHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Identity(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Resend(w http.ResponseWriter, r *http.Request)
	Password(w http.ResponseWriter, r *http.Request)
	Business(w http.ResponseWriter, r *http.Request)
	Back(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Proxy  ProxyHandler
	Wizard WizardHandler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Proxy == nil {
		return nil, fmt.Errorf("nil Proxy handler")
	}
	if deps.Wizard == nil {
		return nil, fmt.Errorf("nil Wizard handler")
	}

	r := chi.NewRouter()
	r.Use(appmw.RequestID)
	r.Use(appmw.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	// legacy proxy surface, wire shapes frozen
	r.Route("/api", func(r chi.Router) {
		r.Post("/check-email", deps.Proxy.CheckEmail)
		r.Post("/otp/send", deps.Proxy.SendOTP)
		r.Post("/otp/verify", deps.Proxy.VerifyOTP)
		r.Get("/enrich", deps.Proxy.Enrich)
	})

	r.Route("/signup/v1/sessions", func(r chi.Router) {
		r.Post("/", deps.Wizard.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", deps.Wizard.Get)
			r.Post("/identity", deps.Wizard.Identity)
			r.Post("/verify", deps.Wizard.Verify)
			r.Post("/resend", deps.Wizard.Resend)
			r.Post("/password", deps.Wizard.Password)
			r.Post("/business", deps.Wizard.Business)
			r.Post("/back", deps.Wizard.Back)
			r.Post("/submit", deps.Wizard.Submit)
			r.Post("/reset", deps.Wizard.Reset)
		})
	})

	return r, nil
}
