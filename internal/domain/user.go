package domain

import (
	"context"
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// unique among undeleted rows only; a soft-deleted account releases its name
	Name         string    `gorm:"index;size:64;not null" json:"name"`
	Email        string    `gorm:"size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Image        []byte    `gorm:"type:blob" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	DeletedFlag  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindUndeletedByID(ctx context.Context, id uint) (*User, error)
	FindUndeletedByEmail(ctx context.Context, email string) (*User, error)
	FindUndeletedByName(ctx context.Context, name string) (*User, error)
	ExistsUndeletedByName(ctx context.Context, name string) (bool, error)
	ExistsUndeletedByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int, q string, withDeleted bool) ([]User, int64, error)
	SoftDelete(ctx context.Context, id uint) error
}
