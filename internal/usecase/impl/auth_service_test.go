package impl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- test doubles ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

// --- fixtures ---

type authServiceFixtures struct {
	service      usecase.AuthUsecase
	users        *mockUserRepository
	hasher       *mockPasswordHasher
	tokenService *mockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	users := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokenService := &mockTokenService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(users, hasher, tokenService, logger)

	t.Cleanup(func() {
		users.AssertExpectations(t)
		hasher.AssertExpectations(t)
		tokenService.AssertExpectations(t)
	})

	return authServiceFixtures{
		service:      service,
		users:        users,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func asAppError(t *testing.T, err error) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)

	return appErr
}

// --- signup ---

func TestAuthService_Signup_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.SignupInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
	}

	fixtures.users.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)

	output, err := fixtures.service.Signup(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, input.Name, output.User.Name)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.SignupInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
	}

	existing := &entity.User{ID: uuid.New(), Email: input.Email, Name: "Someone"}
	fixtures.users.On("FindByEmail", ctx, input.Email).Return(existing, nil)

	output, err := fixtures.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	assert.Equal(t, http.StatusConflict, asAppError(t, err).HTTPCode())
}

func TestAuthService_Signup_ConstraintViolationMapsToConflict(t *testing.T) {
	// A concurrent signup can slip past the existence check; the store's
	// unique index reports it through Create and it must surface as the
	// same conflict.
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.SignupInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
	}

	fixtures.users.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	output, err := fixtures.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, http.StatusConflict, asAppError(t, err).HTTPCode())
}

func TestAuthService_Signup_HashFailure(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.SignupInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
	}

	fixtures.users.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.hasher.On("Hash", input.Password).Return("", errors.New("boom"))

	output, err := fixtures.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	// The user-facing message never carries the underlying cause.
	assert.NotContains(t, appErr.Message(), "boom")
}

func TestAuthService_Signup_LookupInfrastructureFailure(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.SignupInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
	}

	fixtures.users.On("FindByEmail", ctx, input.Email).Return(nil, errors.New("connection reset"))

	output, err := fixtures.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.False(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

// --- login ---

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "Ann",
		PasswordHash: "hashed_password",
	}

	input := &usecase.LoginInput{Email: user.Email, Password: "secret1"}

	fixtures.users.On("FindByEmail", ctx, input.Email).Return(user, nil)
	fixtures.hasher.On("Check", input.Password, user.PasswordHash).Return(true)
	fixtures.tokenService.On("Issue", user).Return("signed.token.value", nil)

	output, err := fixtures.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.token.value", output.Token)
	assert.Equal(t, user.Email, output.User.Email)
	assert.Equal(t, user.Name, output.User.Name)
}

func TestAuthService_Login_EnumerationResistance(t *testing.T) {
	// Unknown email and wrong password must produce the identical status
	// code and user-facing message.
	ctx := context.Background()

	unknownFixtures := createTestAuthService(t)
	unknownFixtures.users.On("FindByEmail", ctx, "nobody@x.com").
		Return(nil, repository.ErrUserNotFound)

	_, unknownErr := unknownFixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@x.com",
		Password: "whatever",
	})
	require.Error(t, unknownErr)

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "Ann",
		PasswordHash: "hashed_password",
	}
	wrongFixtures := createTestAuthService(t)
	wrongFixtures.users.On("FindByEmail", ctx, user.Email).Return(user, nil)
	wrongFixtures.hasher.On("Check", "wrong", user.PasswordHash).Return(false)

	_, wrongErr := wrongFixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    user.Email,
		Password: "wrong",
	})
	require.Error(t, wrongErr)

	unknownApp := asAppError(t, unknownErr)
	wrongApp := asAppError(t, wrongErr)
	assert.Equal(t, http.StatusUnauthorized, unknownApp.HTTPCode())
	assert.Equal(t, unknownApp.HTTPCode(), wrongApp.HTTPCode())
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
}

func TestAuthService_Login_TokenIssuanceFailure(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "Ann",
		PasswordHash: "hashed_password",
	}

	input := &usecase.LoginInput{Email: user.Email, Password: "secret1"}

	fixtures.users.On("FindByEmail", ctx, input.Email).Return(user, nil)
	fixtures.hasher.On("Check", input.Password, user.PasswordHash).Return(true)
	fixtures.tokenService.On("Issue", user).
		Return("", domainerrors.ErrMissingSigningSecret.WrapMessage("token issuance refused"))

	output, err := fixtures.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	// A signing failure is an internal fault, never a credentials error.
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, http.StatusInternalServerError, asAppError(t, err).HTTPCode())
}
