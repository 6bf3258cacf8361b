package wizard

import (
	"context"
	"strings"

	"github.com/cloud4wi/signup-service/internal/domain"
	"github.com/cloud4wi/signup-service/internal/validation"
)

// SetPassword is the step-3 forward transition: pure local validation, no
// upstream call. Entering step 4 triggers the enrichment prefill.
func (s *Service) SetPassword(ctx context.Context, id, password, confirm string) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.Submitted {
		return domain.Session{}, domain.ErrAlreadySubmitted()
	}
	if sess.Step != domain.StepPassword {
		return domain.Session{}, domain.ErrWrongStep(sess.Step, domain.StepPassword)
	}

	sess.State.Password = password
	sess.State.ConfirmPassword = confirm

	if errs := validation.ValidateStep(sess.State, domain.StepPassword); len(errs) > 0 {
		return domain.Session{}, domain.ErrInvalidFields(errs)
	}

	sess.Advance()
	if err := s.save(ctx, &sess); err != nil {
		return domain.Session{}, err
	}

	s.prefillBusiness(ctx, sess.ID, sess.State.WorkEmail)

	// Re-read so the caller sees the prefilled fields.
	return s.load(ctx, sess.ID)
}

// prefillBusiness runs the enrichment lookup and applies the result. The
// session is re-read before applying so a late response is dropped when the
// user has since left step 4 or changed the email.
func (s *Service) prefillBusiness(ctx context.Context, id, email string) {
	if !strings.Contains(email, "@") {
		return
	}

	profile, lookupErr := s.enricher.Lookup(ctx, email)

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return
	}
	if sess.Step != domain.StepBusiness || sess.Submitted || sess.State.WorkEmail != email {
		return // stale response, ignore
	}

	if lookupErr != nil {
		// Lookup error or no record: derive the website from the email
		// domain and leave the other fields untouched.
		if dom := sess.State.EmailDomain(); dom != "" {
			sess.State.Website = "https://" + dom
		}
		s.audit("enrichment_fallback", map[string]string{
			"session_id": sess.ID,
			"reason":     lookupErr.Error(),
		})
	} else {
		sess.State.CompanyName = profile.Name
		sess.State.Industry = profile.Industry
		sess.State.Country = profile.Country
		if profile.Domain != "" {
			sess.State.Website = "https://" + profile.Domain
		} else {
			sess.State.Website = ""
		}
		s.audit("enrichment_applied", map[string]string{"session_id": sess.ID})
	}

	sess.UpdatedAt = s.now()
	_ = s.sessions.Save(ctx, sess)
}
