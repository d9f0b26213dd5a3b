package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/media"
	"portfolioCMS/internal/models"
	"portfolioCMS/internal/repository"
	"portfolioCMS/internal/schema"
	"portfolioCMS/internal/storage"
)

// Actor is the authenticated caller of a write operation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdministrator
}

// CanEdit reports whether the actor may change something owned by ownerID.
func (a Actor) CanEdit(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}

type ContentInput struct {
	Slug         string          `json:"slug" validate:"omitempty,max=200"`
	Title        string          `json:"title" validate:"required,max=500"`
	Body         string          `json:"content"`
	Excerpt      string          `json:"excerpt" validate:"max=2000"`
	CustomFields json.RawMessage `json:"custom_fields"`
	Categories   *[]int64        `json:"categories"`
	Tags         *[]int64        `json:"tags"`
}

type ImageUpload struct {
	FileName string
	File     io.Reader
}

type ContentService interface {
	Create(ctx context.Context, actor Actor, contentType string, in ContentInput) (*models.ContentItem, error)
	Update(ctx context.Context, actor Actor, contentType, itemID string, in ContentInput) (*models.ContentItem, error)
	Publish(ctx context.Context, actor Actor, contentType, itemID string) error
	Delete(ctx context.Context, actor Actor, contentType, itemID string) error
	SetFeaturedImage(ctx context.Context, actor Actor, contentType, itemID string, upload ImageUpload) (*models.Media, error)
}

type contentService struct {
	content   repository.ContentRepository
	media     repository.MediaRepository
	storage   storage.Storage
	registry  *schema.Registry
	validate  *validator.Validate
	body      *bluemonday.Policy
	plain     *bluemonday.Policy
	maxPixels int
	log       *logrus.Logger
}

// NewContentService builds the write side of the content API. maxPixels bounds the
// dimensions of accepted images.
func NewContentService(repo *repository.Repository, storage storage.Storage, registry *schema.Registry, validate *validator.Validate, maxPixels int, log *logrus.Logger) ContentService {
	if maxPixels <= 0 {
		maxPixels = media.DefaultMaxPixels
	}
	return &contentService{
		content:   repo.Content,
		media:     repo.Media,
		storage:   storage,
		registry:  registry,
		validate:  validate,
		body:      bluemonday.UGCPolicy(),
		plain:     bluemonday.StrictPolicy(),
		maxPixels: maxPixels,
		log:       log,
	}
}

func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *contentService) contentType(name string) (schema.ContentType, error) {
	ct, ok := s.registry.ContentType(name)
	if !ok {
		return schema.ContentType{}, fmt.Errorf("%s: %w", name, ErrUnknownContentType)
	}
	return ct, nil
}

// prepare validates the input and applies it to item, honoring the features the
// content type supports.
func (s *contentService) prepare(ct schema.ContentType, item *models.ContentItem, in ContentInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}
	if slug == "" {
		return fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}

	item.Slug = slug
	item.Title = s.plain.Sanitize(in.Title)
	if ct.HasFeature(schema.FeatureEditor) {
		item.Body = s.body.Sanitize(in.Body)
	}
	if ct.HasFeature(schema.FeatureExcerpt) {
		item.Excerpt = s.plain.Sanitize(in.Excerpt)
	}

	if len(in.CustomFields) > 0 && ct.HasFeature(schema.FeatureCustomFields) {
		var fields map[string]any
		if err := json.Unmarshal(in.CustomFields, &fields); err != nil {
			return fmt.Errorf("%w: custom_fields must be an object", ErrInvalidInput)
		}
		item.CustomFields = in.CustomFields
	}
	return nil
}

// termChanges collects the requested term assignments, checking each taxonomy is
// attached to the content type.
func (s *contentService) termChanges(ct schema.ContentType, in ContentInput) (repository.TermChanges, error) {
	requested := map[string]*[]int64{
		schema.TaxonomyCategory: in.Categories,
		schema.TaxonomyTag:      in.Tags,
	}

	changes := repository.TermChanges{}
	for name, ids := range requested {
		if ids == nil {
			continue
		}
		tx, ok := s.registry.Taxonomy(name)
		if !ok || !tx.AppliesTo(ct.Name) {
			return nil, fmt.Errorf("%s on %s: %w", name, ct.Name, ErrUnknownTaxonomy)
		}
		changes[name] = *ids
	}
	return changes, nil
}

func (s *contentService) Create(ctx context.Context, actor Actor, contentType string, in ContentInput) (*models.ContentItem, error) {
	ct, err := s.contentType(contentType)
	if err != nil {
		return nil, err
	}
	if actor.UserID == "" {
		return nil, ErrForbidden
	}

	item := &models.ContentItem{
		Type:     ct.Name,
		AuthorID: actor.UserID,
		Status:   models.StatusDraft,
	}
	if err := s.prepare(ct, item, in); err != nil {
		return nil, err
	}
	terms, err := s.termChanges(ct, in)
	if err != nil {
		return nil, err
	}

	if err := s.content.Create(ctx, item, terms); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"type": ct.Name, "item_id": item.ItemID, "author_id": actor.UserID}).Info("content item created")
	return item, nil
}

// editable loads the item and checks the actor may change it.
func (s *contentService) editable(ctx context.Context, actor Actor, contentType, itemID string) (schema.ContentType, *models.ContentItem, error) {
	ct, err := s.contentType(contentType)
	if err != nil {
		return schema.ContentType{}, nil, err
	}

	item, err := s.content.GetByID(ctx, ct.Name, itemID)
	if err != nil {
		return schema.ContentType{}, nil, err
	}

	if !actor.CanEdit(item.AuthorID) {
		return schema.ContentType{}, nil, ErrForbidden
	}
	return ct, item, nil
}

func (s *contentService) Update(ctx context.Context, actor Actor, contentType, itemID string, in ContentInput) (*models.ContentItem, error) {
	ct, item, err := s.editable(ctx, actor, contentType, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.prepare(ct, item, in); err != nil {
		return nil, err
	}
	terms, err := s.termChanges(ct, in)
	if err != nil {
		return nil, err
	}

	if err := s.content.Update(ctx, item, terms); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *contentService) Publish(ctx context.Context, actor Actor, contentType, itemID string) error {
	ct, item, err := s.editable(ctx, actor, contentType, itemID)
	if err != nil {
		return err
	}
	if item.IsPublished() {
		return nil
	}

	return s.content.Publish(ctx, ct.Name, item.ItemID)
}

func (s *contentService) Delete(ctx context.Context, actor Actor, contentType, itemID string) error {
	ct, item, err := s.editable(ctx, actor, contentType, itemID)
	if err != nil {
		return err
	}

	return s.content.Delete(ctx, ct.Name, item.ItemID)
}

// SetFeaturedImage stores the upload with its generated renditions and attaches it
// to the item. Uploaded objects are removed again when recording fails.
func (s *contentService) SetFeaturedImage(ctx context.Context, actor Actor, contentType, itemID string, upload ImageUpload) (*models.Media, error) {
	ct, item, err := s.editable(ctx, actor, contentType, itemID)
	if err != nil {
		return nil, err
	}
	if !ct.HasFeature(schema.FeatureThumbnail) {
		return nil, fmt.Errorf("%w: %s does not support featured images", ErrInvalidInput, ct.Name)
	}

	data, err := io.ReadAll(upload.File)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	mimeType, err := media.DetectType(data)
	if err != nil {
		return nil, err
	}

	renditions, err := media.Generate(data, media.DefaultSizes, s.maxPixels)
	if err != nil {
		return nil, err
	}

	var uploaded []string
	cleanup := func() {
		for _, key := range uploaded {
			if err := s.storage.DeleteImage(ctx, key); err != nil {
				s.log.WithError(err).WithField("object_key", key).Warn("failed to remove orphaned object")
			}
		}
	}

	key, _, err := s.storage.UploadImage(ctx, item.AuthorID, upload.FileName, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	uploaded = append(uploaded, key)

	m := &models.Media{
		OwnerID:    item.AuthorID,
		ObjectKey:  key,
		MimeType:   mimeType,
		Renditions: make(map[string]string, len(renditions)),
	}

	base := strings.TrimSuffix(filepath.Base(upload.FileName), filepath.Ext(upload.FileName))
	for _, r := range renditions {
		rkey, _, err := s.storage.UploadImage(ctx, item.AuthorID, fmt.Sprintf("%s-%dx%d.jpg", base, r.Width, r.Height), bytes.NewReader(r.Data), int64(len(r.Data)))
		if err != nil {
			cleanup()
			return nil, err
		}
		uploaded = append(uploaded, rkey)
		m.Renditions[r.Name] = rkey
	}

	if err := s.media.Create(ctx, m); err != nil {
		cleanup()
		return nil, err
	}

	if err := s.content.SetFeaturedMedia(ctx, item.ItemID, &m.MediaID); err != nil {
		if derr := s.media.Delete(ctx, m.MediaID); derr != nil && !errors.Is(derr, repository.ErrMediaNotFound) {
			s.log.WithError(derr).WithField("media_id", m.MediaID).Warn("failed to remove media record")
		}
		cleanup()
		return nil, err
	}

	return m, nil
}
