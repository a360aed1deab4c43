package domain

import (
	"context"
	"time"
)

const (
	NoteTitleMaxLen    = 255
	NoteContentsMaxLen = 65535
)

type Note struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Contents    string    `gorm:"type:text" json:"contents"`
	DeletedFlag bool      `gorm:"not null;default:false" json:"-"`
	CreatedByID uint      `gorm:"not null" json:"-"`
	CreatedUser User      `gorm:"foreignKey:CreatedByID" json:"-"`
	UpdatedByID uint      `gorm:"not null" json:"-"`
	UpdatedUser User      `gorm:"foreignKey:UpdatedByID" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Note) TableName() string { return "notes" }

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	// FindUndeletedByID returns (nil, nil) when no undeleted note matches.
	FindUndeletedByID(ctx context.Context, id uint) (*Note, error)
	FindUndeletedByCreator(ctx context.Context, userID uint) ([]Note, error)
	UpdateContents(ctx context.Context, id uint, title, contents string, editorID uint) error
	// SoftDeleteByIDs flips deleted_flag on every listed note and stamps the
	// acting user as last writer, as one set-based update.
	SoftDeleteByIDs(ctx context.Context, ids []uint, actorID uint) error
}
