package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolioCMS/internal/models"
	"portfolioCMS/internal/service"
)

type MockProjectionService struct {
	mock.Mock
}

func (m *MockProjectionService) ProjectUser(ctx context.Context, userID string) (*models.UserRepresentation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRepresentation), args.Error(1)
}

func (m *MockProjectionService) UpdateUserField(ctx context.Context, field, userID, value string) error {
	args := m.Called(ctx, field, userID, value)
	return args.Error(0)
}

func (m *MockProjectionService) UpdateUserFields(ctx context.Context, userID string, values map[string]string) map[string]error {
	args := m.Called(ctx, userID, values)
	return args.Get(0).(map[string]error)
}

func (m *MockProjectionService) ProjectContentItem(ctx context.Context, contentType, itemID string) (*models.ContentRepresentation, error) {
	args := m.Called(ctx, contentType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentRepresentation), args.Error(1)
}

func (m *MockProjectionService) ProjectContentItemBySlug(ctx context.Context, contentType, slug string) (*models.ContentRepresentation, error) {
	args := m.Called(ctx, contentType, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentRepresentation), args.Error(1)
}

func (m *MockProjectionService) ProjectContentItems(ctx context.Context, contentType string, limit, offset int) ([]*models.ContentRepresentation, error) {
	args := m.Called(ctx, contentType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentRepresentation), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Create(ctx context.Context, actor service.Actor, contentType string, in service.ContentInput) (*models.ContentItem, error) {
	args := m.Called(ctx, actor, contentType, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) Update(ctx context.Context, actor service.Actor, contentType, itemID string, in service.ContentInput) (*models.ContentItem, error) {
	args := m.Called(ctx, actor, contentType, itemID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) Publish(ctx context.Context, actor service.Actor, contentType, itemID string) error {
	args := m.Called(ctx, actor, contentType, itemID)
	return args.Error(0)
}

func (m *MockContentService) Delete(ctx context.Context, actor service.Actor, contentType, itemID string) error {
	args := m.Called(ctx, actor, contentType, itemID)
	return args.Error(0)
}

func (m *MockContentService) SetFeaturedImage(ctx context.Context, actor service.Actor, contentType, itemID string, upload service.ImageUpload) (*models.Media, error) {
	args := m.Called(ctx, actor, contentType, itemID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck() error {
	return s.err
}
