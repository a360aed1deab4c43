package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"noteshare/internal/domain"
)

type PermissionRepo struct{ db *gorm.DB }

func NewPermissionRepo(db *gorm.DB) *PermissionRepo { return &PermissionRepo{db: db} }

func (r *PermissionRepo) Create(ctx context.Context, p *domain.UserPermission) error {
	return r.db.WithContext(ctx).Omit("Note", "User").Create(p).Error
}

func (r *PermissionRepo) FindUndeletedByID(ctx context.Context, id uint) (*domain.UserPermission, error) {
	var p domain.UserPermission
	err := r.db.WithContext(ctx).
		First(&p, "id = ? AND deleted_flag = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PermissionRepo) FindActiveByUser(ctx context.Context, userID uint) ([]domain.UserPermission, error) {
	var perms []domain.UserPermission
	err := r.db.WithContext(ctx).
		Preload("Note").Preload("Note.CreatedUser").Preload("Note.UpdatedUser").
		Where("user_id = ? AND deleted_flag = ? AND accepted_flag = ?", userID, false, true).
		Order("id").
		Find(&perms).Error
	return perms, err
}

func (r *PermissionRepo) FindUndeletedByUser(ctx context.Context, userID uint) ([]domain.UserPermission, error) {
	var perms []domain.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND deleted_flag = ?", userID, false).
		Order("id").
		Find(&perms).Error
	return perms, err
}

func (r *PermissionRepo) FindActiveByNote(ctx context.Context, noteID uint) ([]domain.UserPermission, error) {
	var perms []domain.UserPermission
	err := r.db.WithContext(ctx).
		Where("note_id = ? AND deleted_flag = ? AND accepted_flag = ?", noteID, false, true).
		Order("id").
		Find(&perms).Error
	return perms, err
}

func (r *PermissionRepo) FindActiveByNoteAndUser(ctx context.Context, noteID, userID uint) ([]domain.UserPermission, error) {
	var perms []domain.UserPermission
	err := r.db.WithContext(ctx).
		Where("note_id = ? AND user_id = ? AND deleted_flag = ? AND accepted_flag = ?", noteID, userID, false, true).
		Order("id").
		Find(&perms).Error
	return perms, err
}

func (r *PermissionRepo) ExistsUndeletedByNote(ctx context.Context, noteID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.UserPermission{}).
		Where("note_id = ? AND deleted_flag = ?", noteID, false).
		Count(&n).Error
	return n > 0, err
}

func (r *PermissionRepo) SetAccepted(ctx context.Context, id uint, accepted bool) error {
	return r.db.WithContext(ctx).Model(&domain.UserPermission{}).
		Where("id = ?", id).
		Update("accepted_flag", accepted).Error
}

func (r *PermissionRepo) SoftDeleteByNote(ctx context.Context, noteID uint) error {
	return r.db.WithContext(ctx).Model(&domain.UserPermission{}).
		Where("note_id = ?", noteID).
		Update("deleted_flag", true).Error
}

func (r *PermissionRepo) SoftDeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.UserPermission{}).
		Where("id IN ?", ids).
		Update("deleted_flag", true).Error
}
