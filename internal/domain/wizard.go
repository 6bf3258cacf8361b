package domain

import (
	"strings"
	"time"
)

// Step identifies one of the four wizard views. The index is always clamped
// to [StepIdentity, StepBusiness]; Submitted is tracked separately because
// it is terminal rather than a fifth step.
type Step int

const (
	StepIdentity     Step = 1 // names, work email, terms
	StepVerification Step = 2 // 6-character OTP entry
	StepPassword     Step = 3 // password + confirmation
	StepBusiness     Step = 4 // enrichment-prefilled company info
)

const (
	StepMin = StepIdentity
	StepMax = StepBusiness
)

// WizardState is the record accumulated across steps. It is never partially
// persisted anywhere else: it lives inside a Session until submission.
//
// Validate tags are consumed by the validation package; JSON names double as
// the field keys in inline-error maps.
type WizardState struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	WorkEmail string `json:"workEmail" validate:"required,email,work_email"`

	AcceptTerms bool `json:"acceptTerms" validate:"required"`

	// Held only until the verify call succeeds, then cleared.
	VerificationCode string `json:"verificationCode" validate:"len=6"`

	Password        string `json:"password" validate:"required,min=8,has_upper,has_digit"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`

	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Website     string `json:"website"`
}

// EmailDomain returns the part after '@', or "" when the address has none.
func (s WizardState) EmailDomain() string {
	_, dom, ok := strings.Cut(s.WorkEmail, "@")
	if !ok {
		return ""
	}
	return dom
}

// Session is one user's wizard run, keyed by ID. All transitions are strictly
// sequential per session; the store is the only shared structure.
type Session struct {
	ID    string      `json:"id"`
	Step  Step        `json:"step"`
	State WizardState `json:"state"`

	// Set when the OTP gateway approved a code for State.WorkEmail.
	// Cleared whenever the email changes.
	EmailVerified bool `json:"email_verified"`

	// Resend is disabled until this instant. Zero means no cooldown armed.
	ResendDeadline time.Time `json:"resend_deadline,omitempty"`

	Submitted bool `json:"submitted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Advance moves one step forward, clamped at StepMax.
func (s *Session) Advance() {
	if s.Step < StepMax {
		s.Step++
	}
}

// Retreat moves one step back, clamped at StepMin.
func (s *Session) Retreat() {
	if s.Step > StepMin {
		s.Step--
	}
}

// ResendRemaining reports the seconds left on the resend cooldown at now,
// rounded up. Zero means resend is allowed.
func (s *Session) ResendRemaining(now time.Time) int {
	if s.ResendDeadline.IsZero() || !now.Before(s.ResendDeadline) {
		return 0
	}
	rem := s.ResendDeadline.Sub(now)
	secs := int((rem + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// BusinessInfo is the nested sub-object of the final payload. Fields default
// to empty strings so the output shape is stable even when enrichment never
// populated them.
type BusinessInfo struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Website     string `json:"website"`
}

// AccountPayload is the assembled output of a completed wizard run: flat
// identity/credential fields plus the nested business sub-object. This is
// the one place multiple steps' data are merged.
type AccountPayload struct {
	FirstName                  string       `json:"firstName"`
	LastName                   string       `json:"lastName"`
	WorkEmail                  string       `json:"workEmail"`
	Password                   string       `json:"password"`
	IsDomainConditionsAccepted bool         `json:"isDomainConditionsAccepted"`
	Business                   BusinessInfo `json:"business"`
}

// BuildPayload assembles the final payload from the accumulated state.
func (s WizardState) BuildPayload() AccountPayload {
	return AccountPayload{
		FirstName:                  s.FirstName,
		LastName:                   s.LastName,
		WorkEmail:                  s.WorkEmail,
		Password:                   s.Password,
		IsDomainConditionsAccepted: s.AcceptTerms,
		Business: BusinessInfo{
			CompanyName: s.CompanyName,
			Industry:    s.Industry,
			Country:     s.Country,
			Website:     s.Website,
		},
	}
}

// CompanyProfile is the parsed subset of an enrichment response that the
// wizard prefills from.
type CompanyProfile struct {
	Name     string
	Industry string
	Country  string
	Domain   string
}

// RegistryResult is the answer of a duplicate-email lookup.
type RegistryResult struct {
	Exists  bool
	Message string
}
