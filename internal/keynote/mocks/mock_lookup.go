package mocks

import (
	"context"

	"conferenceapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) GetByID(ctx context.Context, id int64) (*model.Keynote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Keynote), args.Error(1)
}
