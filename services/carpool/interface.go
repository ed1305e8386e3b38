// File: services/carpool/interface.go
package carpool

import "context"

// Service attaches a carpool record to a carpool-enabled opportunity. The
// actual bookkeeping (seats, rides, matching) lives outside this backend;
// implementations adapt whatever system provides it.
type Service interface {
	Attach(ctx context.Context, opportunityID, source string) error
}

// Dispatcher hands off carpool attachment as a fire-and-forget side effect.
// Dispatch failures are logged, never surfaced to the request that caused them.
type Dispatcher interface {
	AttachLater(ctx context.Context, opportunityID, source string)
}

// NoopService is the default Service when no carpool system is wired in.
type NoopService struct{}

func (NoopService) Attach(ctx context.Context, opportunityID, source string) error {
	return nil
}
