package http_handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cloud4wi/signup-service/internal/application/wizard"
	"github.com/cloud4wi/signup-service/internal/domain"
	"github.com/cloud4wi/signup-service/internal/logger"
	"github.com/cloud4wi/signup-service/internal/metrics"
)

// EnrichFetcher is the raw upstream call used by the enrichment proxy.
type EnrichFetcher interface {
	Fetch(ctx context.Context, email string) (int, []byte, error)
}

// ProxyHandler serves the legacy /api/* endpoints. Their wire shapes predate
// the wizard API and are frozen: plain objects, no envelope, the exact
// messages existing clients match on.
type ProxyHandler struct {
	registry wizard.AccountRegistry
	gateway  wizard.OTPGateway
	enricher EnrichFetcher
}

func NewProxyHandler(registry wizard.AccountRegistry, gateway wizard.OTPGateway, enricher EnrichFetcher) *ProxyHandler {
	return &ProxyHandler{
		registry: registry,
		gateway:  gateway,
		enricher: enricher,
	}
}

// writeLegacy emits a bare JSON object, no envelope.
func writeLegacy(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// CheckEmail handles POST /api/check-email.
func (h *ProxyHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": "Failed to check email"})
		return
	}
	if req.Email == "" {
		writeLegacy(w, http.StatusBadRequest, map[string]string{"error": "Email is required"})
		return
	}

	res, err := h.registry.Lookup(r.Context(), req.Email)
	if err != nil {
		metrics.DuplicateChecksTotal.WithLabelValues("error").Inc()
		logger.WithCtx(r.Context()).Error().Err(err).Msg("check_email_failed")
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": "Failed to check email"})
		return
	}

	if res.Exists {
		metrics.DuplicateChecksTotal.WithLabelValues("taken").Inc()
		writeLegacy(w, http.StatusOK, map[string]any{"exists": true, "message": res.Message})
		return
	}
	metrics.DuplicateChecksTotal.WithLabelValues("available").Inc()
	writeLegacy(w, http.StatusOK, map[string]any{"exists": false})
}

// SendOTP handles POST /api/otp/send.
func (h *ProxyHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": "Failed to send OTP"})
		return
	}
	if req.Email == "" {
		writeLegacy(w, http.StatusBadRequest, map[string]string{"error": "Email is required"})
		return
	}

	if err := h.gateway.Send(r.Context(), req.Email); err != nil {
		metrics.OTPSendsTotal.WithLabelValues(sendFailureLabel(err)).Inc()
		logger.WithCtx(r.Context()).Error().Err(err).Msg("otp_send_failed")
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": legacyMessage(err, "Failed to send OTP")})
		return
	}

	metrics.OTPSendsTotal.WithLabelValues("sent").Inc()
	writeLegacy(w, http.StatusOK, map[string]bool{"success": true})
}

// VerifyOTP handles POST /api/otp/verify.
func (h *ProxyHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": "Failed to verify OTP"})
		return
	}
	if req.Email == "" || req.Code == "" {
		writeLegacy(w, http.StatusBadRequest, map[string]string{"error": "Email and code are required"})
		return
	}

	approved, err := h.gateway.Check(r.Context(), req.Email, req.Code)
	if err != nil {
		metrics.OTPChecksTotal.WithLabelValues("provider_error").Inc()
		logger.WithCtx(r.Context()).Error().Err(err).Msg("otp_verify_failed")
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": legacyMessage(err, "Failed to verify OTP")})
		return
	}

	if !approved {
		metrics.OTPChecksTotal.WithLabelValues("rejected").Inc()
		writeLegacy(w, http.StatusBadRequest, map[string]string{"error": "Invalid code"})
		return
	}
	metrics.OTPChecksTotal.WithLabelValues("approved").Inc()
	writeLegacy(w, http.StatusOK, map[string]bool{"success": true})
}

// Enrich handles GET /api/enrich?email=. The upstream body is relayed
// verbatim on success; upstream errors keep the upstream status but get a
// wrapped body so the raw provider error text never reaches a field the
// client renders directly.
func (h *ProxyHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeLegacy(w, http.StatusBadRequest, map[string]string{"error": "Email is required"})
		return
	}

	status, body, err := h.enricher.Fetch(r.Context(), email)
	if err != nil {
		metrics.EnrichmentLookupsTotal.WithLabelValues("error").Inc()
		logger.WithCtx(r.Context()).Error().Err(err).Msg("enrichment_fetch_failed")
		if domain.Is(err, "not_configured") {
			writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": "Server configuration error"})
			return
		}
		writeLegacy(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	if status < 200 || status >= 300 {
		metrics.EnrichmentLookupsTotal.WithLabelValues("miss").Inc()
		logger.WithCtx(r.Context()).Error().
			Int("status", status).
			Str("body", truncate(string(body), 2048)).
			Msg("enrichment_upstream_error")
		writeLegacy(w, status, map[string]string{
			"error":   "Failed to fetch company data",
			"details": string(body),
		})
		return
	}

	metrics.EnrichmentLookupsTotal.WithLabelValues("hit").Inc()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// legacyMessage surfaces the domain message when there is one, matching the
// old proxy's error.message passthrough.
func legacyMessage(err error, fallback string) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

func sendFailureLabel(err error) string {
	if domain.Is(err, "not_configured") {
		return "not_configured"
	}
	return "provider_error"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
