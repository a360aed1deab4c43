package domain

import (
	"context"
	"encoding/json"
)

// PermissionType is the capability descriptor attached to a share grant.
// At most one of the two flags is meaningful for write checks: ReadWrite
// grants write access, ReadOnly alone grants read access only.
type PermissionType struct {
	ReadOnly  bool `json:"readOnly"`
	ReadWrite bool `json:"readWrite"`
}

func (t PermissionType) Encode() string {
	b, _ := json.Marshal(t)
	return string(b)
}

type UserPermission struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	NoteID          uint   `gorm:"not null;index" json:"noteId"`
	Note            Note   `gorm:"foreignKey:NoteID" json:"-"`
	UserID          uint   `gorm:"not null;index" json:"userId"`
	User            User   `gorm:"foreignKey:UserID" json:"-"`
	Type            string `gorm:"size:191;not null" json:"-"`
	InvitedUserName string `gorm:"size:64;not null" json:"invitedUserName"`
	DeletedFlag     bool   `gorm:"not null;default:false" json:"-"`
	AcceptedFlag    bool   `gorm:"not null;default:false" json:"acceptedFlag"`
}

func (UserPermission) TableName() string { return "user_permissions" }

// PermissionType decodes the serialized capability descriptor. A row that
// cannot be decoded is corrupt; the caller gets a DataIntegrityError and
// must not fall back to any default capability.
func (p *UserPermission) PermissionType() (PermissionType, error) {
	var t PermissionType
	if err := json.Unmarshal([]byte(p.Type), &t); err != nil {
		return PermissionType{}, &DataIntegrityError{
			Reason: "undecodable permission type",
			Err:    err,
		}
	}
	return t, nil
}

type UserPermissionRepository interface {
	Create(ctx context.Context, p *UserPermission) error
	// FindUndeletedByID returns (nil, nil) when no undeleted row matches.
	FindUndeletedByID(ctx context.Context, id uint) (*UserPermission, error)
	// FindActiveByUser returns accepted, undeleted grants for a grantee with
	// Note and its creator/editor preloaded.
	FindActiveByUser(ctx context.Context, userID uint) ([]UserPermission, error)
	// FindUndeletedByUser also includes still-pending grants.
	FindUndeletedByUser(ctx context.Context, userID uint) ([]UserPermission, error)
	FindActiveByNote(ctx context.Context, noteID uint) ([]UserPermission, error)
	FindActiveByNoteAndUser(ctx context.Context, noteID, userID uint) ([]UserPermission, error)
	ExistsUndeletedByNote(ctx context.Context, noteID uint) (bool, error)
	SetAccepted(ctx context.Context, id uint, accepted bool) error
	SoftDeleteByNote(ctx context.Context, noteID uint) error
	SoftDeleteByIDs(ctx context.Context, ids []uint) error
}
