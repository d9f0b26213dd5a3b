package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type fieldRow struct {
	FieldName string `db:"field_name"`
	Value     string `db:"value"`
}

func (s *PostgresStore) Get(ctx context.Context, field, owner string) (string, bool, error) {
	query := `SELECT value FROM profile_fields WHERE owner_key = $1 AND field_name = $2`

	var value string
	err := s.db.GetContext(ctx, &value, query, owner, field)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read profile field %s: %w", field, err)
	}

	return value, true, nil
}

func (s *PostgresStore) GetAll(ctx context.Context, owner string) (map[string]string, error) {
	query := `SELECT field_name, value FROM profile_fields WHERE owner_key = $1`

	var rows []fieldRow
	if err := s.db.SelectContext(ctx, &rows, query, owner); err != nil {
		return nil, fmt.Errorf("failed to read profile of %s: %w", owner, err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.FieldName] = row.Value
	}
	return values, nil
}

func (s *PostgresStore) Set(ctx context.Context, field, owner, value string) error {
	query := `INSERT INTO profile_fields (owner_key, field_name, value) VALUES ($1, $2, $3) ON CONFLICT (owner_key, field_name) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, owner, field, value); err != nil {
		return fmt.Errorf("failed to write profile field %s: %w", field, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, field, owner string) error {
	query := `DELETE FROM profile_fields WHERE owner_key = $1 AND field_name = $2`

	if _, err := s.db.ExecContext(ctx, query, owner, field); err != nil {
		return fmt.Errorf("failed to delete profile field %s: %w", field, err)
	}
	return nil
}
