package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"portfolioCMS/internal/models"
	"portfolioCMS/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*models.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.User), args.Error(1)
}

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, item *models.ContentItem, terms repository.TermChanges) error {
	args := m.Called(ctx, item, terms)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(ctx context.Context, contentType, itemID string) (*models.ContentItem, error) {
	args := m.Called(ctx, contentType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) GetBySlug(ctx context.Context, contentType, slug string) (*models.ContentItem, error) {
	args := m.Called(ctx, contentType, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) ListPublished(ctx context.Context, contentType string, limit, offset int) ([]*models.ContentItem, error) {
	args := m.Called(ctx, contentType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) Update(ctx context.Context, item *models.ContentItem, terms repository.TermChanges) error {
	args := m.Called(ctx, item, terms)
	return args.Error(0)
}

func (m *MockContentRepository) Publish(ctx context.Context, contentType, itemID string) error {
	args := m.Called(ctx, contentType, itemID)
	return args.Error(0)
}

func (m *MockContentRepository) SetFeaturedMedia(ctx context.Context, itemID string, mediaID *string) error {
	args := m.Called(ctx, itemID, mediaID)
	return args.Error(0)
}

func (m *MockContentRepository) Delete(ctx context.Context, contentType, itemID string) error {
	args := m.Called(ctx, contentType, itemID)
	return args.Error(0)
}

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, mediaID string) (*models.Media, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, mediaID string) error {
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) ListForItem(ctx context.Context, itemID string) ([]models.TermAssignment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TermAssignment), args.Error(1)
}

func (m *MockTermRepository) ListForItems(ctx context.Context, itemIDs []string) (map[string][]models.TermAssignment, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.TermAssignment), args.Error(1)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Get(ctx context.Context, field, owner string) (string, bool, error) {
	args := m.Called(ctx, field, owner)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockProfileStore) GetAll(ctx context.Context, owner string) (map[string]string, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockProfileStore) Set(ctx context.Context, field, owner, value string) error {
	args := m.Called(ctx, field, owner, value)
	return args.Error(0)
}

func (m *MockProfileStore) Delete(ctx context.Context, field, owner string) error {
	args := m.Called(ctx, field, owner)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, ownerID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *MockStorage) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	args := m.Called(ctx, objectKey)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mocks struct {
	users    *MockUserRepository
	content  *MockContentRepository
	media    *MockMediaRepository
	terms    *MockTermRepository
	profiles *MockProfileStore
	storage  *MockStorage
}

func newMocks() *mocks {
	return &mocks{
		users:    new(MockUserRepository),
		content:  new(MockContentRepository),
		media:    new(MockMediaRepository),
		terms:    new(MockTermRepository),
		profiles: new(MockProfileStore),
		storage:  new(MockStorage),
	}
}
