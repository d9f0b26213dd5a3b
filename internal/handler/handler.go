package handlers

import (
	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/config"
	"portfolioCMS/internal/schema"
	"portfolioCMS/internal/service"
)

type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	Projection service.ProjectionService
	Content    service.ContentService
	Registry   *schema.Registry
	DB         HealthChecker
	Cfg        *config.Config
	Log        *logrus.Logger
}

func NewHandlers(svc *service.Service, registry *schema.Registry, db HealthChecker, cfg *config.Config, log *logrus.Logger) *Handlers {
	return &Handlers{
		Projection: svc.Projection,
		Content:    svc.Content,
		Registry:   registry,
		DB:         db,
		Cfg:        cfg,
		Log:        log,
	}
}
