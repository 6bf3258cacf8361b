package wizard

import (
	"context"

	"github.com/cloud4wi/signup-service/internal/domain"
)

/*
SessionStore
------------
Persistence port for wizard sessions. Backed by Redis or process memory;
entries expire on their own (abandoned wizards), so there is no Delete.
*/
type SessionStore interface {
	Create(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, sess domain.Session) error
}

/*
OTPGateway
----------
Send dispatches a one-time passcode to the address; Check answers whether a
user-supplied code matches. Check returns (false, nil) for a structurally
fine but wrong code: that is a business rejection, not a transport failure,
and callers must keep the two apart. The gateway has no resend throttling;
that is this service's job.
*/
type OTPGateway interface {
	Send(ctx context.Context, email string) error
	Check(ctx context.Context, email, code string) (approved bool, err error)
}

/*
AccountRegistry
---------------
Duplicate-email lookup. The shipped implementation is a fixed-sentinel stand-in;
a real deployment replaces it with an account-registry call preserving the
same result shape.
*/
type AccountRegistry interface {
	Lookup(ctx context.Context, email string) (domain.RegistryResult, error)
}

/*
Enricher
--------
Company lookup keyed by email. Returns domain.ErrCompanyNotFound-coded errors
when the upstream has no record; any error makes the wizard fall back to
deriving the website from the email domain.
*/
type Enricher interface {
	Lookup(ctx context.Context, email string) (domain.CompanyProfile, error)
}
