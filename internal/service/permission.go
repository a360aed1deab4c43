package service

import (
	"context"

	"go.uber.org/zap"

	"noteshare/internal/domain"
)

type PermissionService struct {
	store domain.Store
	log   *zap.Logger
}

func NewPermissionService(store domain.Store, log *zap.Logger) *PermissionService {
	return &PermissionService{store: store, log: log}
}

// CanUpdateNote reports whether userID holds an active accepted grant with
// write capability on the note. Ownership is not consulted here; the caller
// checks the creator separately since owners hold no permission row on
// their own notes.
func (s *PermissionService) CanUpdateNote(ctx context.Context, noteID, userID uint) (bool, error) {
	perms, err := s.store.Permissions().FindActiveByNoteAndUser(ctx, noteID, userID)
	if err != nil {
		return false, err
	}
	if len(perms) == 0 {
		return false, nil
	}
	if len(perms) > 1 {
		// One active grant per (note,user) is the invariant. When it is
		// violated, require write capability on every row rather than
		// elevating on the loosest one.
		s.log.Warn("multiple active permissions for one note and user",
			zap.Uint("noteID", noteID),
			zap.Uint("userID", userID),
			zap.Int("count", len(perms)),
		)
	}
	for i := range perms {
		t, err := perms[i].PermissionType()
		if err != nil {
			return false, err
		}
		if !t.ReadWrite {
			return false, nil
		}
	}
	return true, nil
}

func (s *PermissionService) ExistsUndeletedPermission(ctx context.Context, id uint) (bool, error) {
	p, err := s.store.Permissions().FindUndeletedByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// CreateShare invites another user onto a note the owner created. The grant
// starts pending; it confers no access until accepted.
func (s *PermissionService) CreateShare(
	ctx context.Context,
	noteID uint,
	owner *domain.User,
	granteeName string,
	t domain.PermissionType,
) (*domain.UserPermission, error) {
	note, err := s.store.Notes().FindUndeletedByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNoteNotFound
	}
	if note.CreatedByID != owner.ID {
		return nil, domain.ErrAuthorization
	}

	grantee, err := s.store.Users().FindUndeletedByName(ctx, granteeName)
	if err != nil {
		return nil, err
	}
	if grantee == nil {
		return nil, domain.ErrUserNotFound
	}
	if grantee.ID == owner.ID {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "username", Detail: "cannot share a note with its creator"},
		}}
	}
	existing, err := s.store.Permissions().FindActiveByNoteAndUser(ctx, noteID, grantee.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "username", Detail: "note is already shared with this user"},
		}}
	}

	perm := &domain.UserPermission{
		NoteID:          noteID,
		UserID:          grantee.ID,
		Type:            t.Encode(),
		InvitedUserName: grantee.Name,
	}
	if err := s.store.Permissions().Create(ctx, perm); err != nil {
		return nil, &domain.TransactionError{Op: "share note", Err: err}
	}
	return perm, nil
}

// Accept activates a pending grant for its grantee.
func (s *PermissionService) Accept(ctx context.Context, permissionID, userID uint) error {
	perm, err := s.granteePermission(ctx, permissionID, userID)
	if err != nil {
		return err
	}
	if err := s.store.Permissions().SetAccepted(ctx, perm.ID, true); err != nil {
		return &domain.TransactionError{Op: "accept permission", Err: err}
	}
	return nil
}

// Deny retires a pending grant without ever activating it: acceptedFlag
// stays false and the row is soft-deleted so it cannot be accepted later.
func (s *PermissionService) Deny(ctx context.Context, permissionID, userID uint) error {
	perm, err := s.granteePermission(ctx, permissionID, userID)
	if err != nil {
		return err
	}
	if err := s.store.Permissions().SoftDeleteByIDs(ctx, []uint{perm.ID}); err != nil {
		return &domain.TransactionError{Op: "deny permission", Err: err}
	}
	return nil
}

// Revoke soft-deletes a grant on behalf of the note's creator.
func (s *PermissionService) Revoke(ctx context.Context, permissionID, ownerID uint) error {
	perm, err := s.store.Permissions().FindUndeletedByID(ctx, permissionID)
	if err != nil {
		return err
	}
	if perm == nil {
		return domain.ErrPermissionNotFound
	}
	note, err := s.store.Notes().FindUndeletedByID(ctx, perm.NoteID)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNoteNotFound
	}
	if note.CreatedByID != ownerID {
		return domain.ErrAuthorization
	}
	if err := s.store.Permissions().SoftDeleteByIDs(ctx, []uint{perm.ID}); err != nil {
		return &domain.TransactionError{Op: "revoke permission", Err: err}
	}
	return nil
}

func (s *PermissionService) granteePermission(ctx context.Context, permissionID, userID uint) (*domain.UserPermission, error) {
	perm, err := s.store.Permissions().FindUndeletedByID(ctx, permissionID)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrPermissionNotFound
	}
	if perm.UserID != userID {
		return nil, domain.ErrAuthorization
	}
	return perm, nil
}
