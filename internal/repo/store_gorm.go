package repo

import (
	"context"

	"gorm.io/gorm"

	"noteshare/internal/domain"
)

// GormStore binds the three repositories to one *gorm.DB. InTx rebinds them
// to a transaction so that cascading lifecycle operations commit or roll
// back as a unit.
type GormStore struct {
	db    *gorm.DB
	users *UserRepo
	notes *NoteRepo
	perms *PermissionRepo
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:    db,
		users: NewUserRepo(db),
		notes: NewNoteRepo(db),
		perms: NewPermissionRepo(db),
	}
}

func (s *GormStore) Users() domain.UserRepository { return s.users }

func (s *GormStore) Notes() domain.NoteRepository { return s.notes }

func (s *GormStore) Permissions() domain.UserPermissionRepository { return s.perms }

func (s *GormStore) InTx(ctx context.Context, fn func(domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
