package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/config"
	"portfolioCMS/internal/profile"
	"portfolioCMS/internal/repository"
	"portfolioCMS/internal/schema"
	"portfolioCMS/internal/storage"
)

type Service struct {
	Projection ProjectionService
	Content    ContentService
}

type Deps struct {
	Repo     *repository.Repository
	Profiles profile.Store
	Storage  storage.Storage
	Registry *schema.Registry
	Config   *config.Config
	Log      *logrus.Logger
}

func NewService(d Deps) *Service {
	validate := validator.New()
	return &Service{
		Projection: NewProjectionService(d.Repo, d.Profiles, d.Storage, d.Registry, d.Config, validate, d.Log),
		Content:    NewContentService(d.Repo, d.Storage, d.Registry, validate, d.Config.MaxImagePixels, d.Log),
	}
}
