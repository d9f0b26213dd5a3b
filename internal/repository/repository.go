package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"portfolioCMS/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrContentNotFound = errors.New("content item not found")
	ErrMediaNotFound   = errors.New("media not found")
	ErrSlugTaken       = errors.New("slug already in use")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*models.User, error)
}

// TermChanges maps a taxonomy to the term ids an item should carry. Taxonomies
// missing from the map keep their current assignments.
type TermChanges map[string][]int64

// ContentRepository writes an item together with its term changes in one transaction.
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem, terms TermChanges) error
	GetByID(ctx context.Context, contentType, itemID string) (*models.ContentItem, error)
	GetBySlug(ctx context.Context, contentType, slug string) (*models.ContentItem, error)
	ListPublished(ctx context.Context, contentType string, limit, offset int) ([]*models.ContentItem, error)
	Update(ctx context.Context, item *models.ContentItem, terms TermChanges) error
	Publish(ctx context.Context, contentType, itemID string) error
	SetFeaturedMedia(ctx context.Context, itemID string, mediaID *string) error
	Delete(ctx context.Context, contentType, itemID string) error
}

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, mediaID string) (*models.Media, error)
	Delete(ctx context.Context, mediaID string) error
}

type TermRepository interface {
	ListForItem(ctx context.Context, itemID string) ([]models.TermAssignment, error)
	ListForItems(ctx context.Context, itemIDs []string) (map[string][]models.TermAssignment, error)
}

type Repository struct {
	Users   UserRepository
	Content ContentRepository
	Media   MediaRepository
	Terms   TermRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(db),
		Content: NewContentRepository(db),
		Media:   NewMediaRepository(db),
		Terms:   NewTermRepository(db),
	}
}
