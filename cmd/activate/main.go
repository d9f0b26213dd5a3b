// Command activate runs the one-time setup: schema declaration, field group
// export, route flush, bucket creation and, when SITE_OWNER_LOGIN is set, the
// site owner account.
package main

import (
	"context"
	"encoding/json"
	"os"

	"portfolioCMS/cmd/app"
	"portfolioCMS/internal/config"
	"portfolioCMS/internal/logger"
	"portfolioCMS/internal/service"
)

type result struct {
	service.Report
	OwnerCreated bool   `json:"owner_created"`
	OwnerID      string `json:"owner_id,omitempty"`
}

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.AppName, cfg.Env, cfg.LogLevel)
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer a.Close()

	ctx := context.Background()
	report, err := a.Activator.Activate(ctx)
	if err != nil {
		log.WithError(err).Fatal("activation failed")
	}
	out := result{Report: report}

	if cfg.SiteOwnerLogin != "" {
		owner, created, err := service.SeedOwner(ctx, a.Repo.Users, cfg.SiteOwnerLogin, cfg.SiteOwnerName, log)
		if err != nil {
			log.WithError(err).Fatal("seeding site owner failed")
		}
		out.OwnerCreated = created
		if owner != nil {
			out.OwnerID = owner.UserID
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.WithError(err).Error("writing report")
	}
}
