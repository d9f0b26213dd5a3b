package service

import (
	"errors"

	"portfolioCMS/internal/media"
	"portfolioCMS/internal/profile"
	"portfolioCMS/internal/repository"
	"portfolioCMS/internal/schema"
)

var (
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrContentNotFound    = repository.ErrContentNotFound
	ErrSlugTaken          = repository.ErrSlugTaken
	ErrUserExists         = repository.ErrUserExists
	ErrUnknownContentType = schema.ErrUnknownContentType
	ErrUnknownTaxonomy    = schema.ErrUnknownTaxonomy
	ErrUnknownField       = profile.ErrUnknownField
	ErrUnsupportedImage   = media.ErrUnsupportedImage

	ErrInvalidFieldValue = errors.New("invalid profile field value")
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
)
