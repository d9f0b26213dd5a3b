package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/profile"
	"portfolioCMS/internal/schema"
)

const placeholderName = ".gitkeep"

// RouteFlusher rebuilds request routing from the registry.
type RouteFlusher interface {
	Flush()
}

type BucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

// Report records what an activation run did. Warnings hold the failures of the
// non-fatal steps.
type Report struct {
	ExportDir          string   `json:"export_dir"`
	DirReady           bool     `json:"dir_ready"`
	PlaceholderCreated bool     `json:"placeholder_created"`
	FieldGroupWritten  bool     `json:"field_group_written"`
	FieldGroups        int      `json:"field_groups"`
	SchemaDeclared     bool     `json:"schema_declared"`
	RoutesFlushed      bool     `json:"routes_flushed"`
	BucketReady        bool     `json:"bucket_ready"`
	Warnings           []string `json:"warnings,omitempty"`
}

type Activator struct {
	registry  *schema.Registry
	routes    RouteFlusher
	bucket    BucketEnsurer
	exportDir string
	log       *logrus.Logger
}

// NewActivator wires an activator. routes and bucket may be nil.
func NewActivator(registry *schema.Registry, routes RouteFlusher, bucket BucketEnsurer, exportDir string, log *logrus.Logger) *Activator {
	return &Activator{
		registry:  registry,
		routes:    routes,
		bucket:    bucket,
		exportDir: exportDir,
		log:       log,
	}
}

func (a *Activator) warn(report *Report, step string, err error) {
	report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %v", step, err))
	a.log.WithError(err).WithField("step", step).Warn("activation step failed")
}

// ensurePlaceholder creates the placeholder file unless it already exists.
func ensurePlaceholder(dir string) (bool, error) {
	f, err := os.OpenFile(filepath.Join(dir, placeholderName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, f.Close()
}

// Activate prepares the export directory, declares the schema, flushes routes and
// makes sure the media bucket exists. It is safe to run repeatedly and from several
// processes at once. Only a schema declaration failure is returned as an error.
func (a *Activator) Activate(ctx context.Context) (Report, error) {
	report := Report{ExportDir: profile.SavePath(a.exportDir)}

	if err := os.MkdirAll(report.ExportDir, 0o755); err != nil {
		a.warn(&report, "export_dir", err)
	} else {
		report.DirReady = true

		created, err := ensurePlaceholder(report.ExportDir)
		if err != nil {
			a.warn(&report, "placeholder", err)
		}
		report.PlaceholderCreated = created

		written, err := profile.SaveFieldGroup(report.ExportDir, profile.DefaultFieldGroup())
		if err != nil {
			a.warn(&report, "field_group", err)
		}
		report.FieldGroupWritten = written

		groups, err := profile.LoadFieldGroups(report.ExportDir, a.log)
		if err != nil {
			a.warn(&report, "field_group_load", err)
		}
		report.FieldGroups = len(groups)
	}

	if err := schema.DeclareDefaults(a.registry); err != nil {
		return report, fmt.Errorf("declare schema: %w", err)
	}
	report.SchemaDeclared = true

	if a.routes != nil {
		a.routes.Flush()
		report.RoutesFlushed = true
	}

	if a.bucket != nil {
		if err := a.bucket.EnsureBucket(ctx); err != nil {
			a.warn(&report, "bucket", err)
		} else {
			report.BucketReady = true
		}
	}

	a.log.WithFields(logrus.Fields{
		"export_dir":   report.ExportDir,
		"field_groups": report.FieldGroups,
		"warnings":     len(report.Warnings),
	}).Info("activation finished")
	return report, nil
}
