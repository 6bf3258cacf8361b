// Package registry answers "is this email already registered". The real
// account directory is not reachable from this service yet, so the checker
// recognises a single reserved address used by QA and demos to exercise the
// duplicate-account path end to end.
package registry

import (
	"context"
	"strings"

	"github.com/cloud4wi/signup-service/internal/domain"
)

const (
	// SentinelEmail always reports as registered, compared case-insensitively.
	SentinelEmail = "duplicate@cloud4wi.com"

	duplicateMessage = "This email is already associated with an existing account."
)

type SentinelChecker struct{}

func NewSentinel() SentinelChecker { return SentinelChecker{} }

func (SentinelChecker) Lookup(ctx context.Context, email string) (domain.RegistryResult, error) {
	if strings.EqualFold(strings.TrimSpace(email), SentinelEmail) {
		return domain.RegistryResult{Exists: true, Message: duplicateMessage}, nil
	}
	return domain.RegistryResult{}, nil
}
