// File: services/directory/interface.go
package directory

import "context"

// Directory answers existence checks for host organizations and users. User
// and organization management is an external collaborator; this backend only
// needs the boolean answer.
type Directory interface {
	OrganizationExists(ctx context.Context, id string) (bool, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

// AllowAll accepts every id. Used when no directory backend is configured.
type AllowAll struct{}

func (AllowAll) OrganizationExists(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func (AllowAll) UserExists(ctx context.Context, id string) (bool, error) {
	return true, nil
}
