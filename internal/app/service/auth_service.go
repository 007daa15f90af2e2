package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type AuthService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	tokens         ports.TokenIssuer
	now            ports.Clock
}

func NewAuthService(userRepository ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		now:            utcNow,
	}
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return domain.AuthResult{}, domain.ErrInvalidInput
	}

	_, err := s.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.AuthResult{}, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = domain.DefaultUserName(email)
	}

	now := s.now()
	user, err := s.userRepository.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.AuthResult{}, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return domain.AuthResult{}, domain.ErrInvalidInput
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResult{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResult{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return domain.AuthResult{}, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user domain.User) (domain.AuthResult, error) {
	token, err := s.tokens.Issue(domain.Identity{UserID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.AuthResult{Token: token, User: user}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
