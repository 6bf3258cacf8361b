package wizard

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// VerifyCode is the step-2 forward transition. A wrong code and a provider
// failure both leave the session on step 2; neither ever resets it to step 1.
func (s *Service) VerifyCode(ctx context.Context, id, code string) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.Submitted {
		return domain.Session{}, domain.ErrAlreadySubmitted()
	}
	if sess.Step != domain.StepVerification {
		return domain.Session{}, domain.ErrWrongStep(sess.Step, domain.StepVerification)
	}

	code = strings.TrimSpace(code)
	if utf8.RuneCountInString(code) != 6 {
		return domain.Session{}, domain.ErrCodeIncomplete()
	}

	approved, err := s.gateway.Check(ctx, sess.State.WorkEmail, code)
	if err != nil {
		return domain.Session{}, asDomain(err, domain.ErrOTPProviderFailure)
	}
	if !approved {
		return domain.Session{}, domain.ErrInvalidCode()
	}

	sess.EmailVerified = true
	sess.State.VerificationCode = "" // transiently held, never stored past the check
	sess.ResendDeadline = time.Time{}
	sess.Advance()

	if err := s.save(ctx, &sess); err != nil {
		return domain.Session{}, err
	}

	s.audit("email_verified", map[string]string{
		"session_id": sess.ID,
		"email":      sess.State.WorkEmail,
	})
	return sess, nil
}

// ResendCode re-sends the passcode and arms the resend cooldown. The
// cooldown lives here, with the caller of the gateway, not in the gateway.
func (s *Service) ResendCode(ctx context.Context, id string) (int, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if sess.Submitted {
		return 0, domain.ErrAlreadySubmitted()
	}
	if sess.Step != domain.StepVerification {
		return 0, domain.ErrWrongStep(sess.Step, domain.StepVerification)
	}

	if rem := sess.ResendRemaining(s.now()); rem > 0 {
		return 0, domain.ErrResendCooldown(rem)
	}

	if err := s.gateway.Send(ctx, sess.State.WorkEmail); err != nil {
		return 0, asDomain(err, domain.ErrOTPProviderFailure)
	}

	sess.ResendDeadline = s.now().Add(s.resendCooldown)
	if err := s.save(ctx, &sess); err != nil {
		return 0, err
	}

	s.audit("code_resent", map[string]string{"session_id": sess.ID})
	return int(s.resendCooldown / time.Second), nil
}
