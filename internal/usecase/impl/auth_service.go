// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"
	"tally/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	users        repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		users:        users,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Signup orchestrates the account registration process: existence check,
// password hashing, persistence. The flow is a single read plus one insert;
// the store's unique email index resolves any concurrent duplicate signup.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.logger.Info("Starting signup", "email", input.Email)

	// 1. Fast-path existence check. Not the sole guard: the unique index
	// on email catches races between this check and the insert.
	_, err := srv.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("signup failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		srv.logger.Error("Failed to look up existing user", "error", err, "email", input.Email)

		return nil, errors.Wrap(err, "failed to look up existing user")
	}

	// 2. Hash the password. The plaintext is never stored or logged.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during signup", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	// 3. Persist the new record.
	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := srv.users.Create(ctx, newUser); err != nil {
		srv.logger.Error("Failed to create user", "error", err, "email", input.Email)

		return nil, errors.WithStack(err)
	}

	srv.logger.Debug("User signed up successfully", "userID", newUser.ID)

	return &usecase.SignupOutput{User: newUser}, nil
}

// Login orchestrates the credential check and token issuance.
// An unknown email and a wrong password return the identical error so the
// response never reveals whether the email is registered.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting login", "email", input.Email)

	// 1. Find the account.
	user, err := srv.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		srv.logger.Error("Failed to look up user during login", "error", err, "email", input.Email)

		return nil, errors.Wrap(err, "failed to look up user")
	}

	// 2. Check the password. Same error as the missing-account branch.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Login failed", "email", input.Email)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	// 3. Issue the bearer token.
	token, err := srv.tokenService.Issue(user)
	if err != nil {
		srv.logger.Error("Failed to issue token", "error", err, "userID", user.ID)

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.logger.Debug("User logged in successfully", "userID", user.ID)

	return &usecase.LoginOutput{Token: token, User: user}, nil
}
