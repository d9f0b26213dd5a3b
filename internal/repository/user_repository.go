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

const userColumns = `user_id, login, display_name, description, slug, role, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleAuthor
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (user_id, login, display_name, description, slug, role, created_at) VALUES (:user_id, :login, :display_name, :description, :slug, :role, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", user.Login, ErrUserExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUsersByIDs loads several users at once. Unknown ids are absent from the result.
func (r *userRepository) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ANY($1)`

	var users []*models.User
	if err := r.db.SelectContext(ctx, &users, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	for _, u := range users {
		result[u.UserID] = u
	}
	return result, nil
}
