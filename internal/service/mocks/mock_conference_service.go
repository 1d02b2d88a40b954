package mocks

import (
	"context"

	"conferenceapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockConferenceService struct {
	mock.Mock
}

func (m *MockConferenceService) List(ctx context.Context) ([]model.ConferenceView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ConferenceView), args.Error(1)
}

func (m *MockConferenceService) Get(ctx context.Context, id int64) (*model.ConferenceView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConferenceView), args.Error(1)
}

func (m *MockConferenceService) ListReviews(ctx context.Context, id int64) ([]model.ReviewView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReviewView), args.Error(1)
}

func (m *MockConferenceService) Create(ctx context.Context, in model.ConferenceInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConferenceService) Replace(ctx context.Context, id int64, in model.ConferenceInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockConferenceService) Patch(ctx context.Context, id int64, in model.ConferenceInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockConferenceService) AppendReviews(ctx context.Context, id int64, reviews []model.ReviewInput) error {
	args := m.Called(ctx, id, reviews)
	return args.Error(0)
}

func (m *MockConferenceService) DeleteReview(ctx context.Context, conferenceID, reviewID int64) error {
	args := m.Called(ctx, conferenceID, reviewID)
	return args.Error(0)
}

func (m *MockConferenceService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
