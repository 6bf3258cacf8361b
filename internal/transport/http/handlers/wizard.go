package http_handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cloud4wi/signup-service/internal/application/wizard"
	"github.com/cloud4wi/signup-service/internal/logger"
	"github.com/cloud4wi/signup-service/internal/metrics"
	"github.com/cloud4wi/signup-service/internal/transport/http/dto"
	"github.com/cloud4wi/signup-service/internal/transport/http/response"
)

type WizardHandler struct {
	svc *wizard.Service
	now func() time.Time
}

func NewWizardHandler(svc *wizard.Service) *WizardHandler {
	return &WizardHandler{svc: svc, now: time.Now}
}

func (h *WizardHandler) sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// Create handles POST /signup/v1/sessions.
func (h *WizardHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Start(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("session_id", sess.ID).
		Msg("wizard_session_created")

	response.Created(w, dto.NewSessionView(sess, h.now()))
}

// Get handles GET /signup/v1/sessions/{id}.
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Get(r.Context(), h.sessionID(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSessionView(sess, h.now()))
}

// Identity handles POST /signup/v1/sessions/{id}/identity.
func (h *WizardHandler) Identity(w http.ResponseWriter, r *http.Request) {
	var req dto.IdentityRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.SubmitIdentity(r.Context(), h.sessionID(r), wizard.IdentityInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		WorkEmail:   req.WorkEmail,
		AcceptTerms: req.AcceptTerms,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("session_id", sess.ID).
		Msg("identity_accepted")

	response.OK(w, dto.NewSessionView(sess, h.now()))
}

// Verify handles POST /signup/v1/sessions/{id}/verify.
func (h *WizardHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.VerifyCode(r.Context(), h.sessionID(r), req.Code)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("session_id", sess.ID).
		Msg("email_verified")

	response.OK(w, dto.NewSessionView(sess, h.now()))
}

// Resend handles POST /signup/v1/sessions/{id}/resend.
func (h *WizardHandler) Resend(w http.ResponseWriter, r *http.Request) {
	resendIn, err := h.svc.ResendCode(r.Context(), h.sessionID(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ResendView{ResendIn: resendIn})
}

// Password handles POST /signup/v1/sessions/{id}/password.
func (h *WizardHandler) Password(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.SetPassword(r.Context(), h.sessionID(r), req.Password, req.ConfirmPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSessionView(sess, h.now()))
}

// Business handles POST /signup/v1/sessions/{id}/business.
func (h *WizardHandler) Business(w http.ResponseWriter, r *http.Request) {
	var req dto.BusinessRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.UpdateBusiness(r.Context(), h.sessionID(r), wizard.BusinessInput{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Country:     req.Country,
		Website:     req.Website,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSessionView(sess, h.now()))
}

// Back handles POST /signup/v1/sessions/{id}/back.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Retreat(r.Context(), h.sessionID(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSessionView(sess, h.now()))
}

// Submit handles POST /signup/v1/sessions/{id}/submit.
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Submit(r.Context(), h.sessionID(r))
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		response.WriteError(w, r, err)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("email", payload.WorkEmail).
		Msg("signup_submitted")

	response.OK(w, payload)
}

// Reset handles POST /signup/v1/sessions/{id}/reset.
func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Reset(r.Context(), h.sessionID(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSessionView(sess, h.now()))
}
