package service

import (
	"context"
	"time"

	"github.com/cardroom/platform/internal/auth"
	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration and login.
type AuthService struct {
	pool   *pgxpool.Pool
	users  repository.UserRepository
	outbox repository.OutboxRepository
	jwtMgr *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(pool *pgxpool.Pool, users repository.UserRepository, outbox repository.OutboxRepository, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{pool: pool, users: users, outbox: outbox, jwtMgr: jwtMgr}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Cash   int64     `json:"cash"`
}

// Register creates a new user account. New accounts start with zero cash;
// the charge endpoint funds them.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	existing, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.Create(ctx, tx, user); err != nil {
		return nil, domain.ErrInternal("create user", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewUserRegisteredEvent(user)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{Token: token, UserID: user.ID, Email: user.Email}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a JWT.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{Token: token, UserID: user.ID, Email: user.Email, Cash: user.Cash}, nil
}
