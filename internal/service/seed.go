package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/models"
	"portfolioCMS/internal/repository"
)

// SeedOwner creates the site owner as an administrator. An existing account with
// the same login or slug is left untouched and reported as not created.
func SeedOwner(ctx context.Context, users repository.UserRepository, login, displayName string, log *logrus.Logger) (*models.User, bool, error) {
	if login == "" {
		return nil, false, fmt.Errorf("%w: owner login is empty", ErrInvalidInput)
	}

	slug := Slugify(displayName)
	if slug == "" {
		slug = Slugify(login)
	}

	owner := &models.User{
		Login:       login,
		DisplayName: displayName,
		Slug:        slug,
		Role:        models.RoleAdministrator,
	}
	if err := users.CreateUser(ctx, owner); err != nil {
		if errors.Is(err, ErrUserExists) {
			log.WithField("login", login).Info("site owner already exists")
			return nil, false, nil
		}
		return nil, false, err
	}

	log.WithFields(logrus.Fields{"login": login, "user_id": owner.UserID}).Info("site owner created")
	return owner, true, nil
}
