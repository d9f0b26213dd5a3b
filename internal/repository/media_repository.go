package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfolioCMS/internal/models"
)

type MediaRepositoryImpl struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepositoryImpl {
	return &MediaRepositoryImpl{db: db}
}

type renditionRow struct {
	Name      string `db:"name"`
	ObjectKey string `db:"object_key"`
}

// Create stores the media record and its renditions in one transaction.
func (r *MediaRepositoryImpl) Create(ctx context.Context, media *models.Media) error {
	if media.MediaID == "" {
		media.MediaID = uuid.New().String()
	}
	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO media (media_id, owner_id, object_key, mime_type, created_at) VALUES (:media_id, :owner_id, :object_key, :mime_type, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, media); err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}

	for name, key := range media.Renditions {
		if _, err := tx.ExecContext(ctx, `INSERT INTO media_renditions (media_id, name, object_key) VALUES ($1, $2, $3)`, media.MediaID, name, key); err != nil {
			return fmt.Errorf("failed to create rendition %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit media: %w", err)
	}
	return nil
}

func (r *MediaRepositoryImpl) GetByID(ctx context.Context, mediaID string) (*models.Media, error) {
	query := `SELECT media_id, owner_id, object_key, mime_type, created_at FROM media WHERE media_id = $1`

	var media models.Media
	if err := r.db.GetContext(ctx, &media, query, mediaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("media %s: %w", mediaID, ErrMediaNotFound)
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	var rows []renditionRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT name, object_key FROM media_renditions WHERE media_id = $1`, mediaID); err != nil {
		return nil, fmt.Errorf("failed to get renditions: %w", err)
	}

	media.Renditions = make(map[string]string, len(rows))
	for _, row := range rows {
		media.Renditions[row.Name] = row.ObjectKey
	}

	return &media, nil
}

func (r *MediaRepositoryImpl) Delete(ctx context.Context, mediaID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE media_id = $1`, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	return expectAffected(result, ErrMediaNotFound)
}
