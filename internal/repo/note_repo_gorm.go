package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"noteshare/internal/domain"
)

type NoteRepo struct{ db *gorm.DB }

func NewNoteRepo(db *gorm.DB) *NoteRepo { return &NoteRepo{db: db} }

func (r *NoteRepo) Create(ctx context.Context, n *domain.Note) error {
	return r.db.WithContext(ctx).Omit("CreatedUser", "UpdatedUser").Create(n).Error
}

func (r *NoteRepo) FindUndeletedByID(ctx context.Context, id uint) (*domain.Note, error) {
	var n domain.Note
	err := r.db.WithContext(ctx).
		Preload("CreatedUser").Preload("UpdatedUser").
		First(&n, "id = ? AND deleted_flag = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

func (r *NoteRepo) FindUndeletedByCreator(ctx context.Context, userID uint) ([]domain.Note, error) {
	var notes []domain.Note
	err := r.db.WithContext(ctx).
		Preload("CreatedUser").Preload("UpdatedUser").
		Where("created_by_id = ? AND deleted_flag = ?", userID, false).
		Order("id").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepo) UpdateContents(ctx context.Context, id uint, title, contents string, editorID uint) error {
	return r.db.WithContext(ctx).Model(&domain.Note{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":         title,
			"contents":      contents,
			"updated_by_id": editorID,
		}).Error
}

func (r *NoteRepo) SoftDeleteByIDs(ctx context.Context, ids []uint, actorID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Note{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"deleted_flag":  true,
			"updated_by_id": actorID,
		}).Error
}
