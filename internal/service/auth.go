package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/hash"
	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/repo"
	"github.com/prodesignco/apparel-shop/internal/tokens"
)

const accessTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type AuthResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	IsAdmin     bool         `json:"is_admin"`
}

func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrForbidden)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrForbidden)
	}

	return s.issue(user)
}

// CurrentUser loads the caller's own profile.
func (s *AuthService) CurrentUser(ctx context.Context, caller *tokens.Identity) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, caller.UserID)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	role := tokens.RoleUser
	if user.IsAdmin {
		role = tokens.RoleAdmin
	}

	token, err := tokens.SignAccessToken(user.ID, role, s.JWTSecret, time.Now().UTC().Add(accessTokenTTL))
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: token, IsAdmin: user.IsAdmin}, nil
}
