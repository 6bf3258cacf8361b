package wizard

import (
	"context"
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
	"github.com/cloud4wi/signup-service/internal/validation"
)

// Submit is the terminal transition: full-state validation, then payload
// assembly. The fixed delay stands in for the account-creation call a
// non-demo build performs against an identity service.
func (s *Service) Submit(ctx context.Context, id string) (domain.AccountPayload, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.AccountPayload{}, err
	}
	if sess.Submitted {
		return domain.AccountPayload{}, domain.ErrAlreadySubmitted()
	}
	if sess.Step != domain.StepBusiness {
		return domain.AccountPayload{}, domain.ErrWrongStep(sess.Step, domain.StepBusiness)
	}
	if !sess.EmailVerified {
		return domain.AccountPayload{}, domain.ErrEmailNotVerified()
	}

	if errs := validation.Validate(sess.State); len(errs) > 0 {
		return domain.AccountPayload{}, domain.ErrInvalidFields(errs)
	}

	if s.submitDelay > 0 {
		select {
		case <-time.After(s.submitDelay):
		case <-ctx.Done():
			return domain.AccountPayload{}, domain.ErrInternal(ctx.Err())
		}
	}

	payload := sess.State.BuildPayload()

	sess.Submitted = true
	if err := s.save(ctx, &sess); err != nil {
		return domain.AccountPayload{}, err
	}

	s.audit("signup_submitted", map[string]string{
		"session_id": sess.ID,
		"email":      payload.WorkEmail,
	})
	return payload, nil
}
