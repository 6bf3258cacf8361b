package wizard

import (
	"context"
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// Retreat moves one step back, clamped at step 1. Back transitions are
// unguarded: no validation, no upstream calls, no re-send.
func (s *Service) Retreat(ctx context.Context, id string) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.Submitted {
		return domain.Session{}, domain.ErrAlreadySubmitted()
	}

	if sess.Step == domain.StepVerification {
		// Leaving step 2 releases the resend cooldown.
		sess.ResendDeadline = time.Time{}
	}
	sess.Retreat()

	if err := s.save(ctx, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Reset starts the wizard over: fresh empty state at step 1. This is the
// only way out of the Submitted state.
func (s *Service) Reset(ctx context.Context, id string) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	sess.State = domain.WizardState{}
	sess.Step = domain.StepIdentity
	sess.EmailVerified = false
	sess.ResendDeadline = time.Time{}
	sess.Submitted = false

	if err := s.save(ctx, &sess); err != nil {
		return domain.Session{}, err
	}

	s.audit("wizard_reset", map[string]string{"session_id": sess.ID})
	return sess, nil
}
