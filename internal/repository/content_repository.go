package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"portfolioCMS/internal/models"
)

const contentColumns = `item_id, type, slug, author_id, title, body, excerpt, featured_media_id, custom_fields, status, created_at, updated_at`

type ContentRepositoryImpl struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) *ContentRepositoryImpl {
	return &ContentRepositoryImpl{db: db}
}

const (
	uniqueViolation = "23505"
	slugConstraint  = "content_items_type_slug_key"
)

func isDuplicateSlug(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == slugConstraint
}

// write runs the item statement and the term changes in one transaction.
func (r *ContentRepositoryImpl) write(ctx context.Context, query string, item *models.ContentItem, terms TermChanges) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, query, item)
	if err != nil {
		if isDuplicateSlug(err) {
			return fmt.Errorf("%s/%s: %w", item.Type, item.Slug, ErrSlugTaken)
		}
		return err
	}
	if err := expectAffected(result, ErrContentNotFound); err != nil {
		return err
	}

	if err := replaceTerms(ctx, tx, item.ItemID, terms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content item: %w", err)
	}
	return nil
}

func (r *ContentRepositoryImpl) Create(ctx context.Context, item *models.ContentItem, terms TermChanges) error {
	query := `INSERT INTO content_items (item_id, type, slug, author_id, title, body, excerpt, featured_media_id, custom_fields, status, created_at, updated_at) VALUES (:item_id, :type, :slug, :author_id, :title, :body, :excerpt, :featured_media_id, :custom_fields, :status, :created_at, :updated_at)`

	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = models.StatusDraft
	}
	if len(item.CustomFields) == 0 {
		item.CustomFields = []byte("{}")
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := r.write(ctx, query, item, terms); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return err
		}
		return fmt.Errorf("failed to create content item: %w", err)
	}

	return nil
}

func (r *ContentRepositoryImpl) GetByID(ctx context.Context, contentType, itemID string) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE type = $1 AND item_id = $2`

	var item models.ContentItem
	err := r.db.GetContext(ctx, &item, query, contentType, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", contentType, itemID, ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	return &item, nil
}

func (r *ContentRepositoryImpl) GetBySlug(ctx context.Context, contentType, slug string) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE type = $1 AND slug = $2`

	var item models.ContentItem
	err := r.db.GetContext(ctx, &item, query, contentType, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %q: %w", contentType, slug, ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	return &item, nil
}

func (r *ContentRepositoryImpl) ListPublished(ctx context.Context, contentType string, limit, offset int) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE type = $1 AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	items := []*models.ContentItem{}
	if err := r.db.SelectContext(ctx, &items, query, contentType, models.StatusPublish, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}

	return items, nil
}

func (r *ContentRepositoryImpl) Update(ctx context.Context, item *models.ContentItem, terms TermChanges) error {
	query := `UPDATE content_items SET slug = :slug, title = :title, body = :body, excerpt = :excerpt, custom_fields = :custom_fields, updated_at = :updated_at WHERE item_id = :item_id AND type = :type`

	if len(item.CustomFields) == 0 {
		item.CustomFields = []byte("{}")
	}
	item.UpdatedAt = time.Now()

	if err := r.write(ctx, query, item, terms); err != nil {
		if errors.Is(err, ErrSlugTaken) || errors.Is(err, ErrContentNotFound) {
			return err
		}
		return fmt.Errorf("failed to update content item: %w", err)
	}

	return nil
}

func (r *ContentRepositoryImpl) Publish(ctx context.Context, contentType, itemID string) error {
	query := `UPDATE content_items SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE type = $2 AND item_id = $3`

	result, err := r.db.ExecContext(ctx, query, models.StatusPublish, contentType, itemID)
	if err != nil {
		return fmt.Errorf("failed to publish content item: %w", err)
	}

	return expectAffected(result, ErrContentNotFound)
}

func (r *ContentRepositoryImpl) SetFeaturedMedia(ctx context.Context, itemID string, mediaID *string) error {
	query := `UPDATE content_items SET featured_media_id = $1, updated_at = CURRENT_TIMESTAMP WHERE item_id = $2`

	result, err := r.db.ExecContext(ctx, query, mediaID, itemID)
	if err != nil {
		return fmt.Errorf("failed to set featured media: %w", err)
	}

	return expectAffected(result, ErrContentNotFound)
}

func (r *ContentRepositoryImpl) Delete(ctx context.Context, contentType, itemID string) error {
	query := `DELETE FROM content_items WHERE type = $1 AND item_id = $2`

	result, err := r.db.ExecContext(ctx, query, contentType, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}

	return expectAffected(result, ErrContentNotFound)
}

func expectAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
