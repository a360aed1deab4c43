package service

import (
	"time"

	"noteshare/internal/domain"
)

// Preview shows the first 175 characters in the side menu.
const previewContentsMaxLen = 175

type PreviewNote struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	PreviewContents string    `json:"previewContents"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
	UpdatedAt       time.Time `json:"updatedAt"`
	UpdatedBy       string    `json:"updatedBy"`
	DeletedFlag     bool      `json:"deletedFlag"`
	DeletableFlag   bool      `json:"deletableFlag"`
}

type UserAuthorization struct {
	PermissionID uint                  `json:"permissionId"`
	UserID       uint                  `json:"userId"`
	Type         domain.PermissionType `json:"type"`
}

type NoteDetail struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	Contents      string              `json:"contents"`
	UserIsCreator bool                `json:"userIsCreator"`
	SharedUsers   []UserAuthorization `json:"sharedUsers"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	UpdatedBy     string              `json:"updatedBy"`
}

func previewContents(contents string) string {
	r := []rune(contents)
	if len(r) <= previewContentsMaxLen {
		return contents
	}
	return string(r[:previewContentsMaxLen])
}

func newPreviewNote(n *domain.Note, deletable bool) PreviewNote {
	return PreviewNote{
		ID:              n.ID,
		Title:           n.Title,
		PreviewContents: previewContents(n.Contents),
		CreatedAt:       n.CreatedAt,
		CreatedBy:       n.CreatedUser.Name,
		UpdatedAt:       n.UpdatedAt,
		UpdatedBy:       n.UpdatedUser.Name,
		DeletedFlag:     n.DeletedFlag,
		DeletableFlag:   deletable,
	}
}

// newPreviewNotes composes the visible-note list: notes the user owns are
// always deletable, notes reaching the user through a grant are deletable
// only with write capability. Grants on soft-deleted parent notes must be
// filtered out by the caller.
func newPreviewNotes(owned []domain.Note, shared []domain.UserPermission) ([]PreviewNote, error) {
	previews := make([]PreviewNote, 0, len(owned)+len(shared))
	for i := range owned {
		n := &owned[i]
		previews = append(previews, newPreviewNote(n, !n.DeletedFlag))
	}
	for i := range shared {
		p := &shared[i]
		t, err := p.PermissionType()
		if err != nil {
			return nil, err
		}
		previews = append(previews, newPreviewNote(&p.Note, t.ReadWrite && !p.Note.DeletedFlag))
	}
	return previews, nil
}

// newNoteDetail projects a note for one caller. The share list is exposed to
// the creator only; a grantee never sees who else the note is shared with.
func newNoteDetail(n *domain.Note, perms []domain.UserPermission, userID uint) (NoteDetail, error) {
	isCreator := n.CreatedByID == userID

	sharedUsers := []UserAuthorization{}
	if isCreator {
		for i := range perms {
			t, err := perms[i].PermissionType()
			if err != nil {
				return NoteDetail{}, err
			}
			sharedUsers = append(sharedUsers, UserAuthorization{
				PermissionID: perms[i].ID,
				UserID:       perms[i].UserID,
				Type:         t,
			})
		}
	}

	return NoteDetail{
		ID:            n.ID,
		Title:         n.Title,
		Contents:      n.Contents,
		UserIsCreator: isCreator,
		SharedUsers:   sharedUsers,
		CreatedAt:     n.CreatedAt,
		CreatedBy:     n.CreatedUser.Name,
		UpdatedAt:     n.UpdatedAt,
		UpdatedBy:     n.UpdatedUser.Name,
	}, nil
}
