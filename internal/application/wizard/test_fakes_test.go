package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// -------------------------
// Fakes
// -------------------------

type fakeSessionStore struct {
	byID map[string]domain.Session

	createErr error
	getErr    error
	saveErr   error

	// onGet fires before each read; used to simulate concurrent mutation.
	onGet func()
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byID: make(map[string]domain.Session)}
}

func (f *fakeSessionStore) Create(ctx context.Context, sess domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[sess.ID] = sess
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if f.onGet != nil {
		f.onGet()
	}
	if f.getErr != nil {
		return domain.Session{}, f.getErr
	}
	sess, ok := f.byID[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound()
	}
	return sess, nil
}

func (f *fakeSessionStore) Save(ctx context.Context, sess domain.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byID[sess.ID] = sess
	return nil
}

type fakeRegistry struct {
	lookupFn func(email string) (domain.RegistryResult, error)
	calls    int
}

func (f *fakeRegistry) Lookup(ctx context.Context, email string) (domain.RegistryResult, error) {
	f.calls++
	if f.lookupFn != nil {
		return f.lookupFn(email)
	}
	return domain.RegistryResult{}, nil
}

type fakeGateway struct {
	sendFn  func(email string) error
	checkFn func(email, code string) (bool, error)

	sends  int
	checks int
}

func (f *fakeGateway) Send(ctx context.Context, email string) error {
	f.sends++
	if f.sendFn != nil {
		return f.sendFn(email)
	}
	return nil
}

func (f *fakeGateway) Check(ctx context.Context, email, code string) (bool, error) {
	f.checks++
	if f.checkFn != nil {
		return f.checkFn(email, code)
	}
	return code == "123456", nil
}

type fakeEnricher struct {
	lookupFn func(email string) (domain.CompanyProfile, error)
	calls    int
}

func (f *fakeEnricher) Lookup(ctx context.Context, email string) (domain.CompanyProfile, error) {
	f.calls++
	if f.lookupFn != nil {
		return f.lookupFn(email)
	}
	return domain.CompanyProfile{}, domain.ErrCompanyNotFound(email)
}

// -------------------------
// Wiring
// -------------------------

func newSvcForTest(t *testing.T) (*Service, *fakeSessionStore, *fakeRegistry, *fakeGateway, *fakeEnricher) {
	t.Helper()

	store := newFakeSessionStore()
	registry := &fakeRegistry{}
	gateway := &fakeGateway{}
	enricher := &fakeEnricher{}

	svc := NewService(store, registry, gateway, enricher, Config{
		ResendCooldown: 45 * time.Second,
		SubmitDelay:    0, // no simulated latency in unit tests
	})
	return svc, store, registry, gateway, enricher
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}

func validIdentityInput() IdentityInput {
	return IdentityInput{
		FirstName:   "John",
		LastName:    "Doe",
		WorkEmail:   "john@acme.com",
		AcceptTerms: true,
	}
}

// startAt creates a session and walks it to the given step with defaults.
func startAt(t *testing.T, svc *Service, step domain.Step) domain.Session {
	t.Helper()

	sess, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if step >= domain.StepVerification {
		sess, err = svc.SubmitIdentity(context.Background(), sess.ID, validIdentityInput())
		if err != nil {
			t.Fatalf("identity: %v", err)
		}
	}
	if step >= domain.StepPassword {
		sess, err = svc.VerifyCode(context.Background(), sess.ID, "123456")
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
	}
	if step >= domain.StepBusiness {
		sess, err = svc.SetPassword(context.Background(), sess.ID, "Passw0rd", "Passw0rd")
		if err != nil {
			t.Fatalf("password: %v", err)
		}
	}
	return sess
}
