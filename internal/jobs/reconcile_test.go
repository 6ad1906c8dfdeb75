package jobs

import (
	"context"
	"testing"

	"plusone_backend/internal/common"
	"plusone_backend/internal/connection"
	"plusone_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
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

// MockConnectionRepository is a mock type for connection.ConnectionRepository
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) Create(ctx context.Context, conn *connection.Connection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockConnectionRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*connection.Connection, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connection.Connection), args.Error(1)
}

func (m *MockConnectionRepository) CountForAccount(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRequestRepository is a mock type for connection.RequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *connection.ConnectionRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*connection.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connection.ConnectionRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByFromAndTo(ctx context.Context, fromID, toID uuid.UUID) (*connection.ConnectionRequest, error) {
	args := m.Called(ctx, fromID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connection.ConnectionRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByToAndStatus(ctx context.Context, toID uuid.UUID, status connection.RequestStatus) ([]connection.ConnectionRequest, error) {
	args := m.Called(ctx, toID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]connection.ConnectionRequest), args.Error(1)
}

func (m *MockRequestRepository) CountByToAndStatus(ctx context.Context, toID uuid.UUID, status connection.RequestStatus) (int64, error) {
	args := m.Called(ctx, toID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, request *connection.ConnectionRequest, status connection.RequestStatus) error {
	args := m.Called(ctx, request, status)
	return args.Error(0)
}

func accountWithCounters(numConnections, numRequests int) user.User {
	u := user.User{Profile: user.EmptyProfile(), Onboarding: user.DefaultOnboarding()}
	u.ID = uuid.New()
	u.Profile.NumConnections = numConnections
	u.Profile.NumRequests = numRequests
	return u
}

func TestReconcile_RepairsDriftedCounters(t *testing.T) {
	users := new(MockUserRepository)
	conns := new(MockConnectionRepository)
	reqs := new(MockRequestRepository)
	job := NewCounterReconcileJob(users, conns, reqs, "@daily", zap.NewNop())
	ctx := context.Background()

	drifted := accountWithCounters(10, 0)
	accurate := accountWithCounters(3, 1)

	users.On("List", ctx, 0, reconcileBatchSize).Return([]user.User{drifted, accurate}, nil)
	users.On("List", ctx, reconcileBatchSize, reconcileBatchSize).Return([]user.User{}, nil)

	conns.On("CountForAccount", ctx, drifted.ID).Return(int64(4), nil)
	reqs.On("CountByToAndStatus", ctx, drifted.ID, connection.RequestPending).Return(int64(2), nil)
	conns.On("CountForAccount", ctx, accurate.ID).Return(int64(3), nil)
	reqs.On("CountByToAndStatus", ctx, accurate.ID, connection.RequestPending).Return(int64(1), nil)

	users.On("Update", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.ID == drifted.ID && u.Profile.NumConnections == 4 && u.Profile.NumRequests == 2
	})).Return(nil)

	job.Run(ctx)

	// Only the drifted account is written back.
	users.AssertNumberOfCalls(t, "Update", 1)
}

func TestReconcile_SkipsAccountWhenCountFails(t *testing.T) {
	users := new(MockUserRepository)
	conns := new(MockConnectionRepository)
	reqs := new(MockRequestRepository)
	job := NewCounterReconcileJob(users, conns, reqs, "@daily", zap.NewNop())
	ctx := context.Background()

	broken := accountWithCounters(10, 10)
	healthy := accountWithCounters(0, 0)

	users.On("List", ctx, 0, reconcileBatchSize).Return([]user.User{broken, healthy}, nil)
	users.On("List", ctx, reconcileBatchSize, reconcileBatchSize).Return([]user.User{}, nil)

	conns.On("CountForAccount", ctx, broken.ID).Return(int64(0), common.ErrInternalServer)
	conns.On("CountForAccount", ctx, healthy.ID).Return(int64(1), nil)
	reqs.On("CountByToAndStatus", ctx, healthy.ID, connection.RequestPending).Return(int64(0), nil)

	users.On("Update", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.ID == healthy.ID
	})).Return(nil)

	job.Run(ctx)

	// The failing account is skipped; the sweep continues past it.
	users.AssertNumberOfCalls(t, "Update", 1)
}
