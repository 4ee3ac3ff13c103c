package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// mockConfigSource returns a fixed snapshot
type mockConfigSource struct {
	cfg *model.FilterConfig
	err error
}

func (m *mockConfigSource) Snapshot(ctx context.Context) (*model.FilterConfig, error) {
	return m.cfg, m.err
}

// MockDeliverer records every Deliver call
type MockDeliverer struct {
	deliverFunc func(ctx context.Context, cfg *model.FilterConfig, payload []byte, run *model.Run) model.DeliveryOutcome
	calls       []MockDeliverCall
	mu          sync.Mutex
}

type MockDeliverCall struct {
	Config  *model.FilterConfig
	Payload []byte
	Run     *model.Run
}

func (m *MockDeliverer) Deliver(ctx context.Context, cfg *model.FilterConfig, payload []byte, run *model.Run) model.DeliveryOutcome {
	m.mu.Lock()
	m.calls = append(m.calls, MockDeliverCall{Config: cfg, Payload: payload, Run: run})
	m.mu.Unlock()
	if m.deliverFunc != nil {
		return m.deliverFunc(ctx, cfg, payload, run)
	}
	return model.Delivered(200)
}

// mockIdentity resolves users from a map keyed by user id and records lookups
type mockIdentity struct {
	emails  map[string]string
	lookups []string
}

func (m *mockIdentity) ResolveEmail(ctx context.Context, user model.User) string {
	m.lookups = append(m.lookups, user.ID)
	return m.emails[user.ID]
}

// mockRecorder keeps recorded outcomes
type mockRecorder struct {
	outcomes []model.DeliveryOutcome
}

func (m *mockRecorder) RecordOutcome(outcome model.DeliveryOutcome, elapsed time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}
