package dto

import (
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// SessionView is the wizard session as shown to the client. Password and
// verification code never appear here; the server only ever confirms that
// verification happened.
type SessionView struct {
	ID            string       `json:"id"`
	Step          int          `json:"step"`
	EmailVerified bool         `json:"emailVerified"`
	Submitted     bool         `json:"submitted"`
	ResendIn      int          `json:"resendIn"`
	Identity      IdentityView `json:"identity"`
	Business      BusinessView `json:"business"`
}

type IdentityView struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	WorkEmail   string `json:"workEmail"`
	AcceptTerms bool   `json:"acceptTerms"`
}

type BusinessView struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Website     string `json:"website"`
}

// ResendView is returned by the resend endpoint: how long until the next
// resend is allowed.
type ResendView struct {
	ResendIn int `json:"resendIn"`
}

func NewSessionView(sess domain.Session, now time.Time) SessionView {
	return SessionView{
		ID:            sess.ID,
		Step:          int(sess.Step),
		EmailVerified: sess.EmailVerified,
		Submitted:     sess.Submitted,
		ResendIn:      sess.ResendRemaining(now),
		Identity: IdentityView{
			FirstName:   sess.State.FirstName,
			LastName:    sess.State.LastName,
			WorkEmail:   sess.State.WorkEmail,
			AcceptTerms: sess.State.AcceptTerms,
		},
		Business: BusinessView{
			CompanyName: sess.State.CompanyName,
			Industry:    sess.State.Industry,
			Country:     sess.State.Country,
			Website:     sess.State.Website,
		},
	}
}
