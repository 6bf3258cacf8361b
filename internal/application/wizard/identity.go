package wizard

import (
	"context"
	"strings"

	"github.com/cloud4wi/signup-service/internal/domain"
	"github.com/cloud4wi/signup-service/internal/validation"
)

type IdentityInput struct {
	FirstName   string
	LastName    string
	WorkEmail   string
	AcceptTerms bool
}

// SubmitIdentity is the step-1 forward transition: local validation, then
// the duplicate-email check, then the initial OTP send. Any failure blocks
// the advance; in particular a failed send never lets the session reach
// step 2 without a code in flight.
func (s *Service) SubmitIdentity(ctx context.Context, id string, in IdentityInput) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.Submitted {
		return domain.Session{}, domain.ErrAlreadySubmitted()
	}
	if sess.Step != domain.StepIdentity {
		return domain.Session{}, domain.ErrWrongStep(sess.Step, domain.StepIdentity)
	}

	email := strings.TrimSpace(in.WorkEmail)
	if email != sess.State.WorkEmail {
		// A different address invalidates any earlier verification.
		sess.State.VerificationCode = ""
		sess.EmailVerified = false
	}
	sess.State.FirstName = strings.TrimSpace(in.FirstName)
	sess.State.LastName = strings.TrimSpace(in.LastName)
	sess.State.WorkEmail = email
	sess.State.AcceptTerms = in.AcceptTerms

	if errs := validation.ValidateStep(sess.State, domain.StepIdentity); len(errs) > 0 {
		return domain.Session{}, domain.ErrInvalidFields(errs)
	}

	res, err := s.registry.Lookup(ctx, email)
	if err != nil {
		return domain.Session{}, asDomain(err, domain.ErrRegistryUnavailable)
	}
	if res.Exists {
		return domain.Session{}, domain.ErrEmailAlreadyRegistered(res.Message)
	}

	if err := s.gateway.Send(ctx, email); err != nil {
		return domain.Session{}, asDomain(err, domain.ErrOTPProviderFailure)
	}

	sess.Advance()
	if err := s.save(ctx, &sess); err != nil {
		return domain.Session{}, err
	}

	s.audit("identity_submitted", map[string]string{
		"session_id": sess.ID,
		"email":      email,
	})
	return sess, nil
}
