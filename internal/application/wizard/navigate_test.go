package wizard

import (
	"context"
	"testing"

	"github.com/cloud4wi/signup-service/internal/domain"
)

func TestRetreat_NeverLeavesStepRange(t *testing.T) {
	t.Parallel()

	svc, store, _, _, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepIdentity)

	for i := 0; i < 25; i++ {
		got, err := svc.Retreat(context.Background(), sess.ID)
		if err != nil {
			t.Fatalf("retreat %d: %v", i, err)
		}
		if got.Step < domain.StepMin || got.Step > domain.StepMax {
			t.Fatalf("step index left [1,4]: %d", got.Step)
		}
	}
	if store.byID[sess.ID].Step != domain.StepIdentity {
		t.Fatalf("expected clamp at step 1, got %d", store.byID[sess.ID].Step)
	}
}

func TestRetreat_FromVerification_ReleasesCooldown(t *testing.T) {
	t.Parallel()

	svc, store, _, _, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepVerification)

	if _, err := svc.ResendCode(context.Background(), sess.ID); err != nil {
		t.Fatalf("resend: %v", err)
	}

	got, err := svc.Retreat(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}

	if got.Step != domain.StepIdentity {
		t.Fatalf("expected step 1, got %d", got.Step)
	}
	if !store.byID[sess.ID].ResendDeadline.IsZero() {
		t.Fatalf("leaving step 2 must cancel the cooldown")
	}
}

func TestRetreat_FromPassword_KeepsVerification(t *testing.T) {
	t.Parallel()

	svc, _, _, gateway, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepPassword)
	gateway.sends = 0
	gateway.checks = 0

	got, err := svc.Retreat(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}

	if got.Step != domain.StepVerification {
		t.Fatalf("expected step 2, got %d", got.Step)
	}
	if !got.EmailVerified {
		t.Fatalf("going back must not forget the verification")
	}
	if gateway.sends != 0 || gateway.checks != 0 {
		t.Fatalf("back navigation must not re-trigger send or verify")
	}
}

func TestReset_FreshStateAtStep1(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepBusiness)

	if _, err := svc.Submit(context.Background(), sess.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.Reset(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got.Step != domain.StepIdentity || got.Submitted || got.EmailVerified {
		t.Fatalf("expected fresh session, got %+v", got)
	}
	if got.State != (domain.WizardState{}) {
		t.Fatalf("expected empty state, got %+v", got.State)
	}
}

func TestRetreat_AfterSubmit_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	sess := startAt(t, svc, domain.StepBusiness)

	if _, err := svc.Submit(context.Background(), sess.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := svc.Retreat(context.Background(), sess.ID)
	requireDomainCode(t, err, "already_submitted")
}
