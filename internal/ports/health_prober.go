package ports

import "context"

// HealthProber checks backend liveness. A nil error means reachable.
type HealthProber interface {
	Probe(ctx context.Context, authenticated bool) error
}
