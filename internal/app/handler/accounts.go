package handler

import (
	"context"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"golang.org/x/crypto/bcrypt"
)

const msgBadCredentials = "Invalid username and/or password"

type registration struct {
	Username     string `json:"username" form:"username"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	Confirmation string `json:"confirmation" form:"confirmation"`
	Name         string `json:"name" form:"name"`
	LastName     string `json:"last_name" form:"last_name"`
}

func (r *registration) trim() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
}

func (r registration) checkPasswords() error {
	if len(r.Password) < 6 {
		return apperr.Invalid("Password must be at least 6 characters")
	}
	if r.Password != r.Confirmation {
		return apperr.Invalid("Passwords don't match")
	}
	return nil
}

// registerUser validates and stores a new user account.
func (h *Handler) registerUser(ctx context.Context, in registration) (*ds.User, error) {
	in.trim()
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Confirmation == "" {
		return nil, apperr.Invalid("Must fill out all fields")
	}
	if err := in.checkPasswords(); err != nil {
		return nil, err
	}

	usernameTaken, emailTaken, err := h.Repository.UserTaken(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, apperr.Invalid("Username already in use")
	}
	if emailTaken {
		return nil, apperr.Invalid("Email address already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &ds.User{Username: in.Username, Email: in.Email, Password: string(hash)}
	if err := h.Repository.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (h *Handler) registerSpecialist(ctx context.Context, in registration) (*ds.Specialist, error) {
	in.trim()
	if in.Username == "" || in.Name == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.Confirmation == "" {
		return nil, apperr.Invalid("Must fill out all fields")
	}
	if err := in.checkPasswords(); err != nil {
		return nil, err
	}

	taken, err := h.Repository.SpecialistTaken(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Invalid("Username or email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s := &ds.Specialist{
		Username: in.Username,
		Name:     in.Name,
		LastName: in.LastName,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := h.Repository.CreateSpecialist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// authenticateUser checks credentials. Unknown usernames and wrong
// passwords produce the same ValidationError.
func (h *Handler) authenticateUser(ctx context.Context, username, password string) (*ds.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperr.Invalid("Must input valid username and password")
	}
	u, err := h.Repository.GetUserByUsername(ctx, strings.TrimSpace(username))
	if apperr.IsNotFound(err) {
		return nil, apperr.Invalid(msgBadCredentials)
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, apperr.Invalid(msgBadCredentials)
	}
	return u, nil
}

func (h *Handler) authenticateSpecialist(ctx context.Context, username, password string) (*ds.Specialist, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperr.Invalid("Must input valid username and password")
	}
	s, err := h.Repository.GetSpecialistByUsername(ctx, strings.TrimSpace(username))
	if apperr.IsNotFound(err) {
		return nil, apperr.Invalid(msgBadCredentials)
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) != nil {
		return nil, apperr.Invalid(msgBadCredentials)
	}
	return s, nil
}
