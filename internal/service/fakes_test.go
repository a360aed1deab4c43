package service

import (
	"context"
	"time"

	"noteshare/internal/domain"
)

// fakeStore is an in-memory domain.Store. InTx snapshots all three tables
// and restores them when fn fails, mirroring a rolled-back transaction.
// failOn injects an error for one repository operation by name.
type fakeStore struct {
	users  []domain.User
	notes  []domain.Note
	perms  []domain.UserPermission
	nextID uint
	failOn map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, failOn: map[string]error{}}
}

func (s *fakeStore) Users() domain.UserRepository                 { return fakeUserRepo{s} }
func (s *fakeStore) Notes() domain.NoteRepository                 { return fakeNoteRepo{s} }
func (s *fakeStore) Permissions() domain.UserPermissionRepository { return fakePermRepo{s} }

func (s *fakeStore) InTx(ctx context.Context, fn func(domain.Store) error) error {
	users := append([]domain.User(nil), s.users...)
	notes := append([]domain.Note(nil), s.notes...)
	perms := append([]domain.UserPermission(nil), s.perms...)
	if err := fn(s); err != nil {
		s.users, s.notes, s.perms = users, notes, perms
		return err
	}
	return nil
}

func (s *fakeStore) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) addUser(name string) *domain.User {
	s.users = append(s.users, domain.User{
		ID:    s.id(),
		Name:  name,
		Email: name + "@example.com",
		Role:  "user",
	})
	return &s.users[len(s.users)-1]
}

func (s *fakeStore) addNote(owner *domain.User, title, contents string) *domain.Note {
	now := time.Now()
	s.notes = append(s.notes, domain.Note{
		ID:          s.id(),
		Title:       title,
		Contents:    contents,
		CreatedByID: owner.ID,
		UpdatedByID: owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return &s.notes[len(s.notes)-1]
}

func (s *fakeStore) addPerm(note *domain.Note, grantee *domain.User, typ string, accepted, deleted bool) *domain.UserPermission {
	s.perms = append(s.perms, domain.UserPermission{
		ID:              s.id(),
		NoteID:          note.ID,
		UserID:          grantee.ID,
		Type:            typ,
		InvitedUserName: grantee.Name,
		AcceptedFlag:    accepted,
		DeletedFlag:     deleted,
	})
	return &s.perms[len(s.perms)-1]
}

func (s *fakeStore) userByID(id uint) domain.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return domain.User{}
}

// noteWithUsers copies a note and resolves its creator/editor the way the
// gorm repositories preload them.
func (s *fakeStore) noteWithUsers(n domain.Note) domain.Note {
	n.CreatedUser = s.userByID(n.CreatedByID)
	n.UpdatedUser = s.userByID(n.UpdatedByID)
	return n
}

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.s.failOn["users.Create"]; err != nil {
		return err
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r fakeUserRepo) FindUndeletedByID(ctx context.Context, id uint) (*domain.User, error) {
	for i := range r.s.users {
		if r.s.users[i].ID == id && !r.s.users[i].DeletedFlag {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindUndeletedByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range r.s.users {
		if r.s.users[i].Email == email && !r.s.users[i].DeletedFlag {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindUndeletedByName(ctx context.Context, name string) (*domain.User, error) {
	for i := range r.s.users {
		if r.s.users[i].Name == name && !r.s.users[i].DeletedFlag {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) ExistsUndeletedByName(ctx context.Context, name string) (bool, error) {
	u, _ := r.FindUndeletedByName(ctx, name)
	return u != nil, nil
}

func (r fakeUserRepo) ExistsUndeletedByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.FindUndeletedByEmail(ctx, email)
	return u != nil, nil
}

func (r fakeUserRepo) List(ctx context.Context, offset, limit int, q string, withDeleted bool) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.s.users {
		if withDeleted || !u.DeletedFlag {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (r fakeUserRepo) SoftDelete(ctx context.Context, id uint) error {
	if err := r.s.failOn["users.SoftDelete"]; err != nil {
		return err
	}
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users[i].DeletedFlag = true
		}
	}
	return nil
}

type fakeNoteRepo struct{ s *fakeStore }

func (r fakeNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	if err := r.s.failOn["notes.Create"]; err != nil {
		return err
	}
	n.ID = r.s.id()
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	r.s.notes = append(r.s.notes, *n)
	return nil
}

func (r fakeNoteRepo) FindUndeletedByID(ctx context.Context, id uint) (*domain.Note, error) {
	for i := range r.s.notes {
		if r.s.notes[i].ID == id && !r.s.notes[i].DeletedFlag {
			n := r.s.noteWithUsers(r.s.notes[i])
			return &n, nil
		}
	}
	return nil, nil
}

func (r fakeNoteRepo) FindUndeletedByCreator(ctx context.Context, userID uint) ([]domain.Note, error) {
	var out []domain.Note
	for i := range r.s.notes {
		if r.s.notes[i].CreatedByID == userID && !r.s.notes[i].DeletedFlag {
			out = append(out, r.s.noteWithUsers(r.s.notes[i]))
		}
	}
	return out, nil
}

func (r fakeNoteRepo) UpdateContents(ctx context.Context, id uint, title, contents string, editorID uint) error {
	if err := r.s.failOn["notes.UpdateContents"]; err != nil {
		return err
	}
	for i := range r.s.notes {
		if r.s.notes[i].ID == id {
			r.s.notes[i].Title = title
			r.s.notes[i].Contents = contents
			r.s.notes[i].UpdatedByID = editorID
			r.s.notes[i].UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r fakeNoteRepo) SoftDeleteByIDs(ctx context.Context, ids []uint, actorID uint) error {
	if err := r.s.failOn["notes.SoftDeleteByIDs"]; err != nil {
		return err
	}
	for _, id := range ids {
		for i := range r.s.notes {
			if r.s.notes[i].ID == id {
				r.s.notes[i].DeletedFlag = true
				r.s.notes[i].UpdatedByID = actorID
				r.s.notes[i].UpdatedAt = time.Now()
			}
		}
	}
	return nil
}

type fakePermRepo struct{ s *fakeStore }

func (r fakePermRepo) Create(ctx context.Context, p *domain.UserPermission) error {
	if err := r.s.failOn["perms.Create"]; err != nil {
		return err
	}
	p.ID = r.s.id()
	r.s.perms = append(r.s.perms, *p)
	return nil
}

func (r fakePermRepo) FindUndeletedByID(ctx context.Context, id uint) (*domain.UserPermission, error) {
	for i := range r.s.perms {
		if r.s.perms[i].ID == id && !r.s.perms[i].DeletedFlag {
			p := r.s.perms[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r fakePermRepo) FindActiveByUser(ctx context.Context, userID uint) ([]domain.UserPermission, error) {
	var out []domain.UserPermission
	for i := range r.s.perms {
		p := r.s.perms[i]
		if p.UserID == userID && !p.DeletedFlag && p.AcceptedFlag {
			for j := range r.s.notes {
				if r.s.notes[j].ID == p.NoteID {
					p.Note = r.s.noteWithUsers(r.s.notes[j])
				}
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePermRepo) FindUndeletedByUser(ctx context.Context, userID uint) ([]domain.UserPermission, error) {
	var out []domain.UserPermission
	for i := range r.s.perms {
		if r.s.perms[i].UserID == userID && !r.s.perms[i].DeletedFlag {
			out = append(out, r.s.perms[i])
		}
	}
	return out, nil
}

func (r fakePermRepo) FindActiveByNote(ctx context.Context, noteID uint) ([]domain.UserPermission, error) {
	var out []domain.UserPermission
	for i := range r.s.perms {
		p := r.s.perms[i]
		if p.NoteID == noteID && !p.DeletedFlag && p.AcceptedFlag {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePermRepo) FindActiveByNoteAndUser(ctx context.Context, noteID, userID uint) ([]domain.UserPermission, error) {
	var out []domain.UserPermission
	for i := range r.s.perms {
		p := r.s.perms[i]
		if p.NoteID == noteID && p.UserID == userID && !p.DeletedFlag && p.AcceptedFlag {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePermRepo) ExistsUndeletedByNote(ctx context.Context, noteID uint) (bool, error) {
	for i := range r.s.perms {
		if r.s.perms[i].NoteID == noteID && !r.s.perms[i].DeletedFlag {
			return true, nil
		}
	}
	return false, nil
}

func (r fakePermRepo) SetAccepted(ctx context.Context, id uint, accepted bool) error {
	if err := r.s.failOn["perms.SetAccepted"]; err != nil {
		return err
	}
	for i := range r.s.perms {
		if r.s.perms[i].ID == id {
			r.s.perms[i].AcceptedFlag = accepted
		}
	}
	return nil
}

func (r fakePermRepo) SoftDeleteByNote(ctx context.Context, noteID uint) error {
	if err := r.s.failOn["perms.SoftDeleteByNote"]; err != nil {
		return err
	}
	for i := range r.s.perms {
		if r.s.perms[i].NoteID == noteID {
			r.s.perms[i].DeletedFlag = true
		}
	}
	return nil
}

func (r fakePermRepo) SoftDeleteByIDs(ctx context.Context, ids []uint) error {
	if err := r.s.failOn["perms.SoftDeleteByIDs"]; err != nil {
		return err
	}
	for _, id := range ids {
		for i := range r.s.perms {
			if r.s.perms[i].ID == id {
				r.s.perms[i].DeletedFlag = true
			}
		}
	}
	return nil
}
