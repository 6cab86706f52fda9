package domain

import "context"

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	// Check returns the status of every dependency and whether all are healthy
	Check(ctx context.Context) (map[string]string, bool)
}
