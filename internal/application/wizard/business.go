package wizard

import (
	"context"
	"strings"

	"github.com/cloud4wi/signup-service/internal/domain"
)

type BusinessInput struct {
	CompanyName string
	Industry    string
	Country     string
	Website     string
}

// UpdateBusiness applies user edits over the enrichment-prefilled fields.
// All four fields are optional, so there is no validation to fail.
func (s *Service) UpdateBusiness(ctx context.Context, id string, in BusinessInput) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.Submitted {
		return domain.Session{}, domain.ErrAlreadySubmitted()
	}
	if sess.Step != domain.StepBusiness {
		return domain.Session{}, domain.ErrWrongStep(sess.Step, domain.StepBusiness)
	}

	sess.State.CompanyName = strings.TrimSpace(in.CompanyName)
	sess.State.Industry = strings.TrimSpace(in.Industry)
	sess.State.Country = strings.TrimSpace(in.Country)
	sess.State.Website = strings.TrimSpace(in.Website)

	if err := s.save(ctx, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}
