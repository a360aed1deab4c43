package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"noteshare/internal/core/cache"
	"noteshare/internal/domain"
	"noteshare/pkg/utils"
)

const userDetailTTL = 5 * time.Minute

type UserService struct {
	store domain.Store
	cache *cache.Cache // optional
	log   *zap.Logger
}

func NewUserService(store domain.Store, c *cache.Cache, log *zap.Logger) *UserService {
	return &UserService{store: store, cache: c, log: log}
}

type RegisterRequest struct {
	Name     string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDetail struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates an account after explicit field validation; violations
// come back as one structured ValidationError rather than the first failure.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	violations, err := s.validateRegistration(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: utils.HashPassword(req.Password),
		Role:         "user",
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, &domain.TransactionError{Op: "register user", Err: err}
	}
	return u, nil
}

// Authenticate resolves an undeleted account by email and checks the
// password. Soft-deleted accounts authenticate as if they never existed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.store.Users().FindUndeletedByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrBadCredentials
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (UserDetail, error) {
	load := func(ctx context.Context) (*UserDetail, error) {
		u, err := s.store.Users().FindUndeletedByID(ctx, userID)
		if err != nil || u == nil {
			return nil, err
		}
		return &UserDetail{ID: u.ID, Name: u.Name, Email: u.Email}, nil
	}
	if s.cache == nil {
		d, err := load(ctx)
		if err != nil {
			return UserDetail{}, err
		}
		if d == nil {
			return UserDetail{}, domain.ErrUserNotFound
		}
		return *d, nil
	}
	d, err := cache.GetOrLoadJSON(s.cache, ctx, userDetailKey(userID), userDetailTTL, load)
	if err != nil {
		return UserDetail{}, err
	}
	if d == nil {
		return UserDetail{}, domain.ErrUserNotFound
	}
	return *d, nil
}

// Delete soft-deletes the account and cascades over everything hanging off
// it: notes the user created and grants naming the user as grantee, all in
// one transaction.
func (s *UserService) Delete(ctx context.Context, user *domain.User) error {
	notes, err := s.store.Notes().FindUndeletedByCreator(ctx, user.ID)
	if err != nil {
		return err
	}
	grants, err := s.store.Permissions().FindUndeletedByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		if err := tx.Users().SoftDelete(ctx, user.ID); err != nil {
			return err
		}
		if len(notes) > 0 {
			noteIDs := make([]uint, len(notes))
			for i := range notes {
				noteIDs[i] = notes[i].ID
			}
			if err := tx.Notes().SoftDeleteByIDs(ctx, noteIDs, user.ID); err != nil {
				return err
			}
		}
		if len(grants) > 0 {
			permIDs := make([]uint, len(grants))
			for i := range grants {
				permIDs[i] = grants[i].ID
			}
			if err := tx.Permissions().SoftDeleteByIDs(ctx, permIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &domain.TransactionError{Op: "delete user", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userDetailKey(user.ID)); err != nil {
			s.log.Warn("user detail cache invalidation failed",
				zap.Uint("userID", user.ID), zap.Error(err))
		}
	}
	return nil
}

// DeleteByID runs the user-delete cascade for the admin surface.
func (s *UserService) DeleteByID(ctx context.Context, userID uint) error {
	u, err := s.store.Users().FindUndeletedByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return s.Delete(ctx, u)
}

func (s *UserService) List(ctx context.Context, offset, limit int, q string, withDeleted bool) ([]domain.User, int64, error) {
	return s.store.Users().List(ctx, offset, limit, q, withDeleted)
}

func (s *UserService) validateRegistration(ctx context.Context, req RegisterRequest) ([]domain.FieldViolation, error) {
	var violations []domain.FieldViolation

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		violations = append(violations, domain.FieldViolation{
			Field: "username", Detail: "must not be empty",
		})
	} else {
		taken, err := s.store.Users().ExistsUndeletedByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken {
			violations = append(violations, domain.FieldViolation{
				Field: "username", Detail: "is already taken",
			})
		}
	}
	if email == "" || !strings.Contains(email, "@") {
		violations = append(violations, domain.FieldViolation{
			Field: "email", Detail: "must be a valid email address",
		})
	} else {
		taken, err := s.store.Users().ExistsUndeletedByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			violations = append(violations, domain.FieldViolation{
				Field: "email", Detail: "is already registered",
			})
		}
	}
	if req.Password == "" {
		violations = append(violations, domain.FieldViolation{
			Field: "password", Detail: "must not be empty",
		})
	}
	return violations, nil
}

func userDetailKey(userID uint) string { return fmt.Sprintf("user:detail:%d", userID) }
