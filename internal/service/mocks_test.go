package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/team-service/internal/domain"
	"github.com/spec-kit/team-service/internal/repository"
)

type userRepoMock struct{ mock.Mock }

var _ repository.UserRepository = (*userRepoMock)(nil)

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type teamRepoMock struct{ mock.Mock }

var _ repository.TeamRepository = (*teamRepoMock)(nil)

func (m *teamRepoMock) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *teamRepoMock) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *teamRepoMock) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) ListByUser(ctx context.Context, userID string) ([]domain.TeamWithOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamWithOwner), args.Error(1)
}

func (m *teamRepoMock) AddMember(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *teamRepoMock) RemoveMember(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *teamRepoMock) GetInfo(ctx context.Context, id string) (*domain.TeamInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamInfo), args.Error(1)
}

type taskRepoMock struct{ mock.Mock }

var _ repository.TaskRepository = (*taskRepoMock)(nil)

func (m *taskRepoMock) ListByTeam(ctx context.Context, teamID string) ([]domain.TaskDetail, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskDetail), args.Error(1)
}

type notificationRepoMock struct{ mock.Mock }

var _ repository.NotificationRepository = (*notificationRepoMock)(nil)

func (m *notificationRepoMock) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type queueMock struct{ mock.Mock }

var _ NotificationQueue = (*queueMock)(nil)

func (m *queueMock) Enqueue(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}
