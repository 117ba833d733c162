package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kube-rca/taskboard/internal/db"
	"github.com/kube-rca/taskboard/internal/model"
	"github.com/kube-rca/taskboard/internal/token"
)

// userRepo - 사용자 저장소 인터페이스
type userRepo interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error
}

type tokenIssuer interface {
	IssuePair(subject string) (token.Pair, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

type AuthService struct {
	repo   userRepo
	tokens tokenIssuer
	hasher passwordHasher
}

func NewAuthService(repo userRepo, tokens tokenIssuer, hasher passwordHasher) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrMissingRegistration
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	resp := user.Public()
	return &resp, nil
}

// Login verifies credentials, issues an access/refresh pair and stores the
// refresh token on the user record, replacing any earlier one. Nothing is
// returned unless the refresh token was persisted.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrMissingLogin
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	pair, err := s.tokens.IssuePair(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := s.repo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &model.LoginResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, users[i].Public())
	}
	return resp, nil
}

// Me resolves the authenticated subject to its public profile.
func (s *AuthService) Me(ctx context.Context, subject string) (*model.UserResponse, error) {
	id, err := parseSubject(subject)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := user.Public()
	return &resp, nil
}

// parseSubject turns a verified token subject back into a user id. A subject
// that is not a UUID was not issued by this service.
func parseSubject(subject string) (uuid.UUID, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}
