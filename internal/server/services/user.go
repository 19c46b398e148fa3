// Package services contains server-side business logic. This file implements
// UserService: signup, login, bearer token issuing and verification, and
// principal lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/cryptox"
	"github.com/dmitrijs2005/dwitter/internal/server/auth"
	"github.com/dmitrijs2005/dwitter/internal/server/config"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/repomanager"
)

// SignupDetails is a validated signup request.
type SignupDetails struct {
	Name     string
	UserName string
	Email    string
	Password string
	URL      string
}

// AuthResult is returned by signup, login and the "me" lookup.
type AuthResult struct {
	Token    string
	UserName string
}

// UserService issues and verifies credentials.
type UserService struct {
	repomanager   repomanager.RepositoryManager
	hasher        cryptox.PasswordHasher
	jwtSecret     []byte
	tokenValidity time.Duration
	// dummyHash is compared against on unknown usernames so both login
	// failures cost one hash comparison.
	dummyHash []byte
}

// NewUserService constructs a UserService. The signing secret is copied from
// cfg; an empty secret is rejected.
func NewUserService(m repomanager.RepositoryManager, hasher cryptox.PasswordHasher, cfg *config.Config) (*UserService, error) {
	if cfg.SecretKey == "" {
		return nil, common.ErrNoSigningKey
	}

	filler, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummy, err := hasher.Hash([]byte(filler))
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		repomanager:   m,
		hasher:        hasher,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		dummyHash:     dummy,
	}, nil
}

// Signup stores a new user and returns a token for it. A taken username
// yields common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, d SignupDetails) (*AuthResult, error) {
	password := []byte(d.Password)
	defer common.WipeByteArray(password)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         d.Name,
		UserName:     d.UserName,
		Email:        d.Email,
		PasswordHash: hash,
		URL:          d.URL,
	}

	u, err := s.repomanager.Users().Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.authResult(u.ID, u.UserName)
}

// Login checks the password and returns a token. Unknown usernames and wrong
// passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*AuthResult, error) {
	candidate := []byte(password)
	defer common.WipeByteArray(candidate)

	user, err := s.repomanager.Users().GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Compare(s.dummyHash, candidate)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, candidate) {
		return nil, common.ErrorUnauthorized
	}

	return s.authResult(user.ID, user.UserName)
}

// IssueToken signs a bearer token for userID.
func (s *UserService) IssueToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
}

// VerifyToken returns the user id carried by token. Any failure is reported
// as common.ErrInvalidToken or common.ErrTokenExpired.
func (s *UserService) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// GetPrincipalByID resolves the user a verified token refers to.
func (s *UserService) GetPrincipalByID(ctx context.Context, id string) (*models.Principal, error) {
	u, err := s.repomanager.Users().GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := u.Principal()
	return &p, nil
}

func (s *UserService) authResult(userID, userName string) (*AuthResult, error) {
	token, err := s.IssueToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, UserName: userName}, nil
}
