package wizard

import (
	"context"

	"github.com/google/uuid"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// Start creates a fresh session at step 1 with empty defaults.
func (s *Service) Start(ctx context.Context) (domain.Session, error) {
	now := s.now()
	sess := domain.Session{
		ID:        uuid.NewString(),
		Step:      domain.StepIdentity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return domain.Session{}, asDomain(err, domain.ErrSessionStoreUnavailable)
	}

	s.audit("wizard_started", map[string]string{"session_id": sess.ID})
	return sess, nil
}

// Get returns the current session.
func (s *Service) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Session{}, domain.ErrSessionNotFound()
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.Session{}, asDomain(err, domain.ErrSessionStoreUnavailable)
	}
	return sess, nil
}

func (s *Service) save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, *sess); err != nil {
		return asDomain(err, domain.ErrSessionStoreUnavailable)
	}
	return nil
}
