package interfaces

import (
	"context"
	"time"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// ConfigSource supplies a consistent FilterConfig snapshot per invocation
type ConfigSource interface {
	Snapshot(ctx context.Context) (*model.FilterConfig, error)
}

// CredentialStore resolves secrets by credential id. The scope is the job
// full name of the run the secret is looked up for.
type CredentialStore interface {
	// Lookup returns the secret and true, or "" and false when not found
	Lookup(ctx context.Context, id, scope string) (string, bool)
}

// IdentityResolver resolves a host user to an email address
type IdentityResolver interface {
	// ResolveEmail returns the email of user, or empty string
	ResolveEmail(ctx context.Context, user model.User) string
}

// Deliverer sends a serialized payload to DX
type Deliverer interface {
	Deliver(ctx context.Context, cfg *model.FilterConfig, payload []byte, run *model.Run) model.DeliveryOutcome
}

// OutcomeRecorder records delivery outcomes, e.g. as metrics
type OutcomeRecorder interface {
	RecordOutcome(outcome model.DeliveryOutcome, elapsed time.Duration)
}

// NotificationRecorder counts received run notifications by result
type NotificationRecorder interface {
	RecordNotification(result string)
}
