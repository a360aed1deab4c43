package service

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"noteshare/internal/domain"
)

type NoteService struct {
	store domain.Store
	log   *zap.Logger
}

func NewNoteService(store domain.Store, log *zap.Logger) *NoteService {
	return &NoteService{store: store, log: log}
}

// NoteUpdate carries a partial edit; nil fields keep the stored value.
type NoteUpdate struct {
	Title    *string `json:"title"`
	Contents *string `json:"contents"`
}

// GetNoteList returns previews of every note visible to the user: undeleted
// notes they created plus undeleted notes shared with them through an
// accepted grant. A note never appears twice because creators hold no grant
// on their own notes.
func (s *NoteService) GetNoteList(ctx context.Context, userID uint) ([]PreviewNote, error) {
	owned, err := s.store.Notes().FindUndeletedByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	grants, err := s.store.Permissions().FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared := grants[:0:0]
	for i := range grants {
		if !grants[i].Note.DeletedFlag {
			shared = append(shared, grants[i])
		}
	}
	return newPreviewNotes(owned, shared)
}

func (s *NoteService) GetUndeletedNote(ctx context.Context, noteID uint) (*domain.Note, error) {
	note, err := s.store.Notes().FindUndeletedByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

// GetNoteDetail projects a note for the caller and gates access: only the
// creator or an active accepted grantee may read it.
func (s *NoteService) GetNoteDetail(ctx context.Context, note *domain.Note, userID uint) (NoteDetail, error) {
	perms, err := s.store.Permissions().FindActiveByNote(ctx, note.ID)
	if err != nil {
		return NoteDetail{}, err
	}
	detail, err := newNoteDetail(note, perms, userID)
	if err != nil {
		return NoteDetail{}, err
	}
	if !detail.UserIsCreator && !isGrantee(perms, userID) {
		return NoteDetail{}, domain.ErrAuthorization
	}
	return detail, nil
}

// Create persists an empty note owned by the user and returns the committed
// projection.
func (s *NoteService) Create(ctx context.Context, user *domain.User) (NoteDetail, error) {
	note := &domain.Note{
		Title:       "",
		Contents:    "",
		CreatedByID: user.ID,
		UpdatedByID: user.ID,
	}
	var detail NoteDetail
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if err := tx.Notes().Create(ctx, note); err != nil {
			return err
		}
		fresh, err := tx.Notes().FindUndeletedByID(ctx, note.ID)
		if err != nil {
			return err
		}
		detail, err = newNoteDetail(fresh, nil, user.ID)
		return err
	})
	if err != nil {
		return NoteDetail{}, wrapTxErr("save note", err)
	}
	return detail, nil
}

// Update applies a partial edit for an already-authorized editor. Oversized
// input is rejected, never truncated. The returned projection is re-read
// from the store so it reflects the committed row.
func (s *NoteService) Update(ctx context.Context, noteID uint, in NoteUpdate, editor *domain.User) (NoteDetail, error) {
	if err := validateNoteUpdate(in); err != nil {
		return NoteDetail{}, err
	}
	var detail NoteDetail
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		cur, err := tx.Notes().FindUndeletedByID(ctx, noteID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNoteNotFound
		}
		title, contents := cur.Title, cur.Contents
		if in.Title != nil {
			title = *in.Title
		}
		if in.Contents != nil {
			contents = *in.Contents
		}
		if err := tx.Notes().UpdateContents(ctx, noteID, title, contents, editor.ID); err != nil {
			return err
		}
		fresh, err := tx.Notes().FindUndeletedByID(ctx, noteID)
		if err != nil {
			return err
		}
		perms, err := tx.Permissions().FindActiveByNote(ctx, noteID)
		if err != nil {
			return err
		}
		detail, err = newNoteDetail(fresh, perms, editor.ID)
		return err
	})
	if err != nil {
		return NoteDetail{}, wrapTxErr("update note", err)
	}
	return detail, nil
}

// Delete soft-deletes the note and cascades over its permission rows in one
// transaction. A note without shares skips the cascade; a failed cascade
// rolls the note deletion back.
func (s *NoteService) Delete(ctx context.Context, note *domain.Note, actor *domain.User) error {
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if err := tx.Notes().SoftDeleteByIDs(ctx, []uint{note.ID}, actor.ID); err != nil {
			return err
		}
		exists, err := tx.Permissions().ExistsUndeletedByNote(ctx, note.ID)
		if err != nil {
			return err
		}
		if exists {
			return tx.Permissions().SoftDeleteByNote(ctx, note.ID)
		}
		return nil
	})
	return wrapTxErr("delete note", err)
}

func validateNoteUpdate(in NoteUpdate) error {
	var violations []domain.FieldViolation
	if in.Title != nil && utf8.RuneCountInString(*in.Title) > domain.NoteTitleMaxLen {
		violations = append(violations, domain.FieldViolation{
			Field:  "title",
			Detail: "must not exceed 255 characters",
		})
	}
	if in.Contents != nil && utf8.RuneCountInString(*in.Contents) > domain.NoteContentsMaxLen {
		violations = append(violations, domain.FieldViolation{
			Field:  "contents",
			Detail: "must not exceed 65535 characters",
		})
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func isGrantee(perms []domain.UserPermission, userID uint) bool {
	for i := range perms {
		if perms[i].UserID == userID {
			return true
		}
	}
	return false
}
