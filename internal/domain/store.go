package domain

import "context"

// Store bundles the three repositories behind one transactional boundary.
// InTx runs fn against repositories bound to a single transaction: any error
// rolls the whole unit back and is returned to the caller.
type Store interface {
	Users() UserRepository
	Notes() NoteRepository
	Permissions() UserPermissionRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
