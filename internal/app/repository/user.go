package repository

import (
	"context"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
)

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	var u ds.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, lookupErr("get user", err)
	}
	return &u, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*ds.User, error) {
	var u ds.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, lookupErr("get user", err)
	}
	return &u, nil
}

// FindUser matches both username and email, as used when a specialist adds a
// patient.
func (r *Repository) FindUser(ctx context.Context, username, email string) (*ds.User, error) {
	var u ds.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND email = ?", username, email).
		First(&u).Error
	if err != nil {
		return nil, lookupErr("find user", err)
	}
	return &u, nil
}

// UserTaken reports whether the username or the email is already registered.
func (r *Repository) UserTaken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error) {
	var n int64
	if err = r.db.WithContext(ctx).Model(&ds.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, false, apperr.Data("check username", err)
	}
	usernameTaken = n > 0
	if err = r.db.WithContext(ctx).Model(&ds.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, false, apperr.Data("check email", err)
	}
	emailTaken = n > 0
	return usernameTaken, emailTaken, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *ds.User) error {
	return apperr.Data("create user", r.db.WithContext(ctx).Create(u).Error)
}
