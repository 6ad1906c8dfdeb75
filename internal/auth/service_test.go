package auth

import (
	"context"
	"testing"
	"time"

	"plusone_backend/internal/common"
	"plusone_backend/internal/config"
	"plusone_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindRecent(ctx context.Context, excludeID uuid.UUID, limit int) ([]user.User, error) {
	args := m.Called(ctx, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]user.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-key",
		JWTExpiry:          time.Hour,
		AllowedEmailDomain: "@vanderbilt.edu",
	}
}

func newTestService() (*Service, *MockUserRepository, *TokenService) {
	repo := new(MockUserRepository)
	cfg := testConfig()
	tokens := NewTokenService(cfg)
	search := user.NewSearchService(repo, nil, zap.NewNop())
	return NewService(repo, tokens, search, cfg, zap.NewNop()), repo, tokens
}

func TestSignup_RejectsForeignDomain(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:     "alice@gmail.com",
		Password:  "hunter2hunter2",
		FirstName: "Alice",
		LastName:  "Anderson",
	})

	assert.ErrorIs(t, err, common.ErrBadRequest)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_ConflictWhenEmailTaken(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "alice@vanderbilt.edu").Return(true, nil)

	_, err := svc.Signup(ctx, SignupRequest{
		Email:     "Alice@Vanderbilt.edu",
		Password:  "hunter2hunter2",
		FirstName: "Alice",
		LastName:  "Anderson",
	})

	assert.ErrorIs(t, err, common.ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_CreatesFreshAccount(t *testing.T) {
	svc, repo, tokens := newTestService()
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "alice@vanderbilt.edu").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*user.User).ID = uuid.New()
		}).
		Return(nil)

	resp, err := svc.Signup(ctx, SignupRequest{
		Email:     " Alice@Vanderbilt.EDU ",
		Password:  "hunter2hunter2",
		FirstName: "Alice",
		LastName:  "Anderson",
	})
	require.NoError(t, err)

	// The email is stored in canonical form.
	assert.Equal(t, "alice@vanderbilt.edu", resp.User.Email)

	// A fresh account starts at onboarding step 1 with a materialized
	// empty profile.
	createdUser := repo.Calls[1].Arguments.Get(1).(*user.User)
	assert.False(t, createdUser.Onboarding.Completed)
	assert.Equal(t, user.OnboardingStepMin, createdUser.Onboarding.Step)
	assert.Nil(t, createdUser.Onboarding.CompletedAt)
	assert.NotNil(t, createdUser.Profile.Interests)
	assert.NotEqual(t, "hunter2hunter2", createdUser.PasswordHash)

	// The issued token round-trips back to the new account.
	gotID, gotEmail, err := tokens.ValidateAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, createdUser.ID, gotID)
	assert.Equal(t, "alice@vanderbilt.edu", gotEmail)
}

func TestLogin_Succeeds(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, err := common.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	u := &user.User{Email: "alice@vanderbilt.edu", PasswordHash: hash, FirstName: "Alice"}
	u.ID = uuid.New()

	repo.On("FindByEmail", ctx, "alice@vanderbilt.edu").Return(u, nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@vanderbilt.edu", Password: "hunter2hunter2"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, u.ID, resp.User.ID)
}

func TestLogin_UniformErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, err := common.HashPassword("correct-password")
	require.NoError(t, err)
	u := &user.User{Email: "alice@vanderbilt.edu", PasswordHash: hash}
	u.ID = uuid.New()

	repo.On("FindByEmail", ctx, "ghost@vanderbilt.edu").Return(nil, common.ErrNotFound)
	repo.On("FindByEmail", ctx, "alice@vanderbilt.edu").Return(u, nil)

	_, unknownErr := svc.Login(ctx, LoginRequest{Email: "ghost@vanderbilt.edu", Password: "whatever"})
	_, wrongPassErr := svc.Login(ctx, LoginRequest{Email: "alice@vanderbilt.edu", Password: "wrong"})

	// Neither response reveals whether the account exists.
	assert.ErrorIs(t, unknownErr, common.ErrUnauthorized)
	assert.ErrorIs(t, wrongPassErr, common.ErrUnauthorized)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestValidateAccessToken_RejectsTamperedToken(t *testing.T) {
	cfg := testConfig()
	tokens := NewTokenService(cfg)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-different-secret"
	otherTokens := NewTokenService(otherCfg)

	u := &user.User{Email: "alice@vanderbilt.edu"}
	u.ID = uuid.New()
	forged, err := otherTokens.GenerateAccessToken(u)
	require.NoError(t, err)

	_, _, err = tokens.ValidateAccessToken(forged)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestValidateAccessToken_RejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	tokens := NewTokenService(cfg)

	u := &user.User{Email: "alice@vanderbilt.edu"}
	u.ID = uuid.New()
	expired, err := tokens.GenerateAccessToken(u)
	require.NoError(t, err)

	_, _, err = tokens.ValidateAccessToken(expired)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
