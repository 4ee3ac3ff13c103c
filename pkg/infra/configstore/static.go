package configstore

import (
	"context"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// Static serves a fixed configuration, typically built from CLI flags
type Static struct {
	cfg model.FilterConfig
}

// NewStatic creates a Static source
func NewStatic(cfg model.FilterConfig) *Static {
	return &Static{cfg: cfg}
}

// Snapshot returns a copy of the fixed configuration
func (s *Static) Snapshot(ctx context.Context) (*model.FilterConfig, error) {
	cfg := s.cfg
	return &cfg, nil
}
