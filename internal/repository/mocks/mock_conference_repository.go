package mocks

import (
	"context"

	"conferenceapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockConferenceRepository struct {
	mock.Mock
}

func (m *MockConferenceRepository) FindAll(ctx context.Context) ([]model.Conference, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Conference), args.Error(1)
}

func (m *MockConferenceRepository) FindByID(ctx context.Context, id int64) (*model.Conference, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(func(context.Context, int64) *model.Conference); ok {
		return f(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conference), args.Error(1)
}

func (m *MockConferenceRepository) FindReviewByID(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockConferenceRepository) Save(ctx context.Context, c *model.Conference) (*model.Conference, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conference), args.Error(1)
}

func (m *MockConferenceRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
