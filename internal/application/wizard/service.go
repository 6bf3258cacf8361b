// Package wizard is the signup wizard controller: it owns the per-session
// step index and accumulated form state, and guards every forward transition
// with the validation schema plus the step's upstream side effect.
package wizard

import (
	"errors"
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
)

type Service struct {
	sessions SessionStore
	registry AccountRegistry
	gateway  OTPGateway
	enricher Enricher

	resendCooldown time.Duration
	submitDelay    time.Duration

	now   func() time.Time
	audit func(action string, fields map[string]string)
}

type Config struct {
	// ResendCooldown is the caller-side throttle armed after each resend.
	ResendCooldown time.Duration
	// SubmitDelay simulates the latency of the account-creation call that a
	// non-demo build would perform at submission.
	SubmitDelay time.Duration
}

func NewService(
	sessions SessionStore,
	registry AccountRegistry,
	gateway OTPGateway,
	enricher Enricher,
	cfg Config,
) *Service {
	cooldown := cfg.ResendCooldown
	if cooldown <= 0 {
		cooldown = 45 * time.Second
	}
	return &Service{
		sessions: sessions,
		registry: registry,
		gateway:  gateway,
		enricher: enricher,

		resendCooldown: cooldown,
		submitDelay:    cfg.SubmitDelay,

		now:   time.Now,
		audit: func(string, map[string]string) {},
	}
}

// WithAudit installs an audit sink for wizard milestones.
func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// asDomain passes structured errors through and wraps anything else with the
// given constructor so adapters may return plain errors.
func asDomain(err error, wrap func(error) *domain.Error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return wrap(err)
}
