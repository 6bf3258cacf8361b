package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

// ErrInvalidFields carries the per-field messages produced by the wizard
// schema. Meta maps JSON field names to human-readable messages so clients
// can render inline errors.
func ErrInvalidFields(fields map[string]string) *Error {
	return WithMeta(New(KindValidation, "invalid_fields", "one or more fields are invalid"), fields)
}

// The code entry is structurally incomplete; the gateway is never called.
func ErrCodeIncomplete() *Error {
	return New(KindValidation, "code_incomplete", "Please enter the complete 6-digit code")
}

// The gateway answered: structurally fine code, but not the one that was sent.
func ErrInvalidCode() *Error {
	return New(KindValidation, "invalid_code", "Invalid code")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrSessionNotFound() *Error {
	return New(KindNotFound, "session_not_found", "signup session not found or expired")
}

func ErrCompanyNotFound(email string) *Error {
	return WithMeta(New(KindNotFound, "company_not_found", "no company data for this email"), map[string]string{
		"email": email,
	})
}

// ----------------------
// Conflict (409)
// ----------------------

// ErrEmailAlreadyRegistered surfaces the registry's own message so the client
// can show it next to the email field with a login link.
func ErrEmailAlreadyRegistered(message string) *Error {
	if message == "" {
		message = "This email is already associated with an existing account."
	}
	return New(KindConflict, "email_already_registered", message)
}

func ErrWrongStep(current, wanted Step) *Error {
	return WithMeta(New(KindConflict, "wrong_step", "operation not valid for the current step"), map[string]string{
		"current": strconv.Itoa(int(current)),
		"wanted":  strconv.Itoa(int(wanted)),
	})
}

func ErrAlreadySubmitted() *Error {
	return New(KindConflict, "already_submitted", "signup already submitted")
}

func ErrEmailNotVerified() *Error {
	return New(KindConflict, "email_not_verified", "email has not been verified")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrResendCooldown(remaining int) *Error {
	return WithMeta(New(KindRateLimited, "resend_cooldown", "please wait before requesting another code"), map[string]string{
		"resend_in": strconv.Itoa(remaining),
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

// Transport or provider failure on the OTP gateway. Distinct from
// ErrInvalidCode: callers must not show this as a wrong-code message.
func ErrOTPProviderFailure(cause error) *Error {
	return Wrap(KindInfrastructure, "otp_provider_unavailable", "verification service unavailable", cause)
}

func ErrRegistryUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "registry_unavailable", "account registry unavailable", cause)
}

func ErrEnrichmentUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "enrichment_unavailable", "company lookup unavailable", cause)
}

func ErrSessionStoreUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "session_store_unavailable", "session store unavailable", cause)
}

// Missing upstream credentials. Fatal at the endpoint level: every request
// fails rather than degrading to an insecure default.
func ErrNotConfigured(what string, cause error) *Error {
	return WithMeta(Wrap(KindInternal, "not_configured", "Server configuration error", cause), map[string]string{
		"dependency": what,
	})
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
