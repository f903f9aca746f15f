package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/internal/users"
	"github.com/Sreenuraj/postqode-nexus/pkg/config"
	"github.com/Sreenuraj/postqode-nexus/pkg/db"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/security"
)

// Registrar creates new user accounts.
type Registrar interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterService creates new user accounts backed by the users repository.
type RegisterService struct {
	dbClient    *db.Client
	userRepo    *users.Repository
	passwordCfg config.PasswordConfig
}

// NewRegisterService constructs a registration service.
func NewRegisterService(dbClient *db.Client, userRepo *users.Repository, passwordCfg config.PasswordConfig) *RegisterService {
	return &RegisterService{
		dbClient:    dbClient,
		userRepo:    userRepo,
		passwordCfg: passwordCfg,
	}
}

// Register creates a standard user account. Username and email must both be
// unique; the checks and the insert share one transaction.
func (s *RegisterService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username, email, and password are required")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)

		if _, err := repo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup username")
		}
		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup email")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			Role:         enums.UserRoleUser,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{User: created}, nil
}
