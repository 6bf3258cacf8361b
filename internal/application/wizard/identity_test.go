package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/cloud4wi/signup-service/internal/domain"
)

func TestSubmitIdentity_InvalidFields_Blocks(t *testing.T) {
	t.Parallel()

	svc, _, registry, gateway, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepIdentity)

	_, err := svc.SubmitIdentity(context.Background(), sess.ID, IdentityInput{
		FirstName: "John",
		WorkEmail: "john@gmail.com",
	})
	requireDomainCode(t, err, "invalid_fields")

	var de *domain.Error
	errors.As(err, &de)
	if de.Meta["lastName"] == "" || de.Meta["workEmail"] == "" || de.Meta["acceptTerms"] == "" {
		t.Fatalf("expected per-field messages, got %v", de.Meta)
	}
	if registry.calls != 0 || gateway.sends != 0 {
		t.Fatalf("no upstream call may happen before local validation passes")
	}
}

func TestSubmitIdentity_DuplicateEmail_BlocksWithMessage(t *testing.T) {
	t.Parallel()

	svc, store, registry, gateway, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepIdentity)

	registry.lookupFn = func(email string) (domain.RegistryResult, error) {
		return domain.RegistryResult{Exists: true, Message: "This email is already associated with an existing account."}, nil
	}

	_, err := svc.SubmitIdentity(context.Background(), sess.ID, validIdentityInput())
	requireDomainCode(t, err, "email_already_registered")

	var de *domain.Error
	errors.As(err, &de)
	if de.Message != "This email is already associated with an existing account." {
		t.Fatalf("expected registry message surfaced, got %q", de.Message)
	}
	if gateway.sends != 0 {
		t.Fatalf("no code may be sent for a duplicate email")
	}
	if store.byID[sess.ID].Step != domain.StepIdentity {
		t.Fatalf("session must stay on step 1")
	}
}

func TestSubmitIdentity_SendFailure_NeverAdvancesSilently(t *testing.T) {
	t.Parallel()

	svc, store, _, gateway, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepIdentity)

	gateway.sendFn = func(string) error { return errors.New("smtp on fire") }

	_, err := svc.SubmitIdentity(context.Background(), sess.ID, validIdentityInput())
	requireDomainCode(t, err, "otp_provider_unavailable")

	if store.byID[sess.ID].Step != domain.StepIdentity {
		t.Fatalf("a failed send must block advancement")
	}
}

func TestSubmitIdentity_Success_AdvancesToVerification(t *testing.T) {
	t.Parallel()

	svc, _, registry, gateway, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepIdentity)

	got, err := svc.SubmitIdentity(context.Background(), sess.ID, IdentityInput{
		FirstName:   "  John ",
		LastName:    " Doe ",
		WorkEmail:   " john@acme.com ",
		AcceptTerms: true,
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if got.Step != domain.StepVerification {
		t.Fatalf("expected step 2, got %d", got.Step)
	}
	if got.State.FirstName != "John" || got.State.WorkEmail != "john@acme.com" {
		t.Fatalf("expected trimmed fields, got %+v", got.State)
	}
	if registry.calls != 1 || gateway.sends != 1 {
		t.Fatalf("expected one lookup and one send, got %d/%d", registry.calls, gateway.sends)
	}
	if !got.ResendDeadline.IsZero() {
		t.Fatalf("initial send must not arm the resend cooldown")
	}
}

func TestSubmitIdentity_EmailChange_ClearsVerification(t *testing.T) {
	t.Parallel()

	svc, store, _, _, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepPassword) // verified at this point

	// Back to step 1.
	if _, err := svc.Retreat(context.Background(), sess.ID); err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if _, err := svc.Retreat(context.Background(), sess.ID); err != nil {
		t.Fatalf("retreat: %v", err)
	}

	in := validIdentityInput()
	in.WorkEmail = "jane@acme.com"
	got, err := svc.SubmitIdentity(context.Background(), sess.ID, in)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if got.EmailVerified {
		t.Fatalf("a new email must clear the verified flag")
	}
	if store.byID[sess.ID].State.VerificationCode != "" {
		t.Fatalf("a new email must clear any held code")
	}
}

func TestSubmitIdentity_WrongStep(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepVerification)

	_, err := svc.SubmitIdentity(context.Background(), sess.ID, validIdentityInput())
	requireDomainCode(t, err, "wrong_step")
}

func TestSubmitIdentity_UnknownSession(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.SubmitIdentity(context.Background(), "nope", validIdentityInput())
	requireDomainCode(t, err, "session_not_found")
}
