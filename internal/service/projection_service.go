package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"portfolioCMS/internal/config"
	"portfolioCMS/internal/models"
	"portfolioCMS/internal/profile"
	"portfolioCMS/internal/repository"
	"portfolioCMS/internal/schema"
	"portfolioCMS/internal/storage"
)

const projectionWorkers = 8

// ProjectionService builds API representations of users and content items with the
// author profile attributes attached. Every call reads the profile store.
type ProjectionService interface {
	ProjectUser(ctx context.Context, userID string) (*models.UserRepresentation, error)
	UpdateUserField(ctx context.Context, field, userID, value string) error
	// UpdateUserFields applies each update and returns the errors keyed by field.
	// An empty map means every field was written.
	UpdateUserFields(ctx context.Context, userID string, values map[string]string) map[string]error
	ProjectContentItem(ctx context.Context, contentType, itemID string) (*models.ContentRepresentation, error)
	ProjectContentItemBySlug(ctx context.Context, contentType, slug string) (*models.ContentRepresentation, error)
	ProjectContentItems(ctx context.Context, contentType string, limit, offset int) ([]*models.ContentRepresentation, error)
}

type projectionService struct {
	users    repository.UserRepository
	content  repository.ContentRepository
	media    repository.MediaRepository
	terms    repository.TermRepository
	profiles profile.Store
	storage  storage.Storage
	registry *schema.Registry
	cfg      *config.Config
	validate *validator.Validate
	log      *logrus.Logger
}

func NewProjectionService(
	repo *repository.Repository,
	profiles profile.Store,
	storage storage.Storage,
	registry *schema.Registry,
	cfg *config.Config,
	validate *validator.Validate,
	log *logrus.Logger,
) ProjectionService {
	return &projectionService{
		users:    repo.Users,
		content:  repo.Content,
		media:    repo.Media,
		terms:    repo.Terms,
		profiles: profiles,
		storage:  storage,
		registry: registry,
		cfg:      cfg,
		validate: validate,
		log:      log,
	}
}

func buildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(segments...)) + "/"
	return u.String()
}

// loadProfile returns the author profile, degrading to empty attributes when the
// store cannot be read.
func (p *projectionService) loadProfile(ctx context.Context, userID string) models.AuthorProfile {
	values, err := p.profiles.GetAll(ctx, profile.OwnerKey(userID))
	if err != nil {
		p.log.WithError(err).WithField("user_id", userID).Warn("profile store unavailable, using empty profile")
		return models.AuthorProfile{}
	}
	return profile.ToProfile(values)
}

func (p *projectionService) ProjectUser(ctx context.Context, userID string) (*models.UserRepresentation, error) {
	user, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.DisplayName
	if name == "" {
		name = user.Login
	}

	return &models.UserRepresentation{
		ID:            user.UserID,
		Name:          name,
		Slug:          user.Slug,
		Description:   user.Description,
		Link:          buildURL(p.cfg.SiteURL, "author", user.Slug),
		AuthorProfile: p.loadProfile(ctx, user.UserID),
	}, nil
}

func (p *projectionService) validateField(spec profile.FieldSpec, value string) error {
	tag := "omitempty,max=2000"
	if spec.Kind == profile.KindURL {
		tag = "omitempty,url,max=2000"
	}
	if err := p.validate.Var(value, tag); err != nil {
		return fmt.Errorf("%s: %w", spec.Name, ErrInvalidFieldValue)
	}
	return nil
}

func (p *projectionService) UpdateUserField(ctx context.Context, field, userID, value string) error {
	spec, ok := profile.Lookup(field)
	if !ok {
		return fmt.Errorf("%s: %w", field, ErrUnknownField)
	}
	if err := p.validateField(spec, value); err != nil {
		return err
	}

	if _, err := p.users.GetUserByID(ctx, userID); err != nil {
		return err
	}

	owner := profile.OwnerKey(userID)
	if value == "" {
		if err := p.profiles.Delete(ctx, field, owner); err != nil {
			return fmt.Errorf("clear %s: %w", field, err)
		}
		return nil
	}

	if err := p.profiles.Set(ctx, field, owner, value); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	return nil
}

func (p *projectionService) UpdateUserFields(ctx context.Context, userID string, values map[string]string) map[string]error {
	failed := make(map[string]error)
	for field, value := range values {
		if err := p.UpdateUserField(ctx, field, userID, value); err != nil {
			failed[field] = err
		}
	}
	return failed
}

func (p *projectionService) contentType(name string) (schema.ContentType, error) {
	ct, ok := p.registry.ContentType(name)
	if !ok {
		return schema.ContentType{}, fmt.Errorf("%s: %w", name, ErrUnknownContentType)
	}
	return ct, nil
}

// featuredImageURL resolves the configured rendition of the featured image, falling
// back to the original upload. Missing media yields nil.
func (p *projectionService) featuredImageURL(ctx context.Context, mediaID *string) *string {
	if mediaID == nil || *mediaID == "" {
		return nil
	}

	m, err := p.media.GetByID(ctx, *mediaID)
	if err != nil {
		if !errors.Is(err, repository.ErrMediaNotFound) {
			p.log.WithError(err).WithField("media_id", *mediaID).Warn("failed to load featured media")
		}
		return nil
	}

	key := m.Renditions[p.cfg.FeaturedImageRendition]
	if key == "" {
		key = m.ObjectKey
	}

	u, err := p.storage.ObjectURL(ctx, key)
	if err != nil {
		p.log.WithError(err).WithField("media_id", m.MediaID).Warn("failed to build featured image url")
		return nil
	}
	return &u
}

func (p *projectionService) authorName(author *models.User) string {
	if author == nil || author.DisplayName == "" {
		return p.cfg.SiteOwnerName
	}
	return author.DisplayName
}

func (p *projectionService) represent(
	ct schema.ContentType,
	item *models.ContentItem,
	author *models.User,
	authorProfile models.AuthorProfile,
	imageURL *string,
	terms []models.TermAssignment,
) *models.ContentRepresentation {
	rep := &models.ContentRepresentation{
		ID:               item.ItemID,
		Type:             item.Type,
		Slug:             item.Slug,
		Link:             buildURL(p.cfg.SiteURL, ct.RewriteSlug, item.Slug),
		Status:           item.Status,
		Title:            item.Title,
		Content:          item.Body,
		Excerpt:          item.Excerpt,
		Author:           item.AuthorID,
		FeaturedMedia:    item.FeaturedMediaID,
		Categories:       []int64{},
		Tags:             []int64{},
		Date:             item.CreatedAt,
		Modified:         item.UpdatedAt,
		AuthorName:       p.authorName(author),
		FeaturedImageURL: imageURL,
		AuthorProfile:    authorProfile,
	}
	if ct.HasFeature(schema.FeatureCustomFields) {
		rep.CustomFields = item.CustomFields
	}

	for _, t := range terms {
		switch t.Taxonomy {
		case schema.TaxonomyCategory:
			rep.Categories = append(rep.Categories, t.TermID)
		case schema.TaxonomyTag:
			rep.Tags = append(rep.Tags, t.TermID)
		}
	}
	return rep
}

func (p *projectionService) lookupAuthor(ctx context.Context, authorID string) *models.User {
	author, err := p.users.GetUserByID(ctx, authorID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			p.log.WithError(err).WithField("author_id", authorID).Warn("failed to load author")
		}
		return nil
	}
	return author
}

func (p *projectionService) projectOne(ctx context.Context, ct schema.ContentType, item *models.ContentItem) *models.ContentRepresentation {
	terms, err := p.terms.ListForItem(ctx, item.ItemID)
	if err != nil {
		p.log.WithError(err).WithField("item_id", item.ItemID).Warn("failed to load terms")
	}

	return p.represent(ct, item,
		p.lookupAuthor(ctx, item.AuthorID),
		p.loadProfile(ctx, item.AuthorID),
		p.featuredImageURL(ctx, item.FeaturedMediaID),
		terms,
	)
}

func (p *projectionService) ProjectContentItem(ctx context.Context, contentType, itemID string) (*models.ContentRepresentation, error) {
	ct, err := p.contentType(contentType)
	if err != nil {
		return nil, err
	}

	item, err := p.content.GetByID(ctx, ct.Name, itemID)
	if err != nil {
		return nil, err
	}

	return p.projectOne(ctx, ct, item), nil
}

func (p *projectionService) ProjectContentItemBySlug(ctx context.Context, contentType, slug string) (*models.ContentRepresentation, error) {
	ct, err := p.contentType(contentType)
	if err != nil {
		return nil, err
	}

	item, err := p.content.GetBySlug(ctx, ct.Name, slug)
	if err != nil {
		return nil, err
	}
	if !item.IsPublished() {
		return nil, fmt.Errorf("%s %q: %w", ct.Name, slug, ErrContentNotFound)
	}

	return p.projectOne(ctx, ct, item), nil
}

// ProjectContentItems projects one page of published items. Authors and their
// profiles are read once per distinct author in the page.
func (p *projectionService) ProjectContentItems(ctx context.Context, contentType string, limit, offset int) ([]*models.ContentRepresentation, error) {
	ct, err := p.contentType(contentType)
	if err != nil {
		return nil, err
	}

	items, err := p.content.ListPublished(ctx, ct.Name, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*models.ContentRepresentation{}, nil
	}

	itemIDs := make([]string, 0, len(items))
	authorIDs := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		itemIDs = append(itemIDs, item.ItemID)
		if !seen[item.AuthorID] {
			seen[item.AuthorID] = true
			authorIDs = append(authorIDs, item.AuthorID)
		}
	}

	authors, err := p.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		p.log.WithError(err).Warn("failed to load authors")
		authors = map[string]*models.User{}
	}

	terms, err := p.terms.ListForItems(ctx, itemIDs)
	if err != nil {
		p.log.WithError(err).Warn("failed to load terms")
		terms = map[string][]models.TermAssignment{}
	}

	var mu sync.Mutex
	profiles := make(map[string]models.AuthorProfile, len(authorIDs))
	images := make([]*string, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(projectionWorkers)
	for _, authorID := range authorIDs {
		g.Go(func() error {
			prof := p.loadProfile(gctx, authorID)
			mu.Lock()
			profiles[authorID] = prof
			mu.Unlock()
			return nil
		})
	}
	for i, item := range items {
		g.Go(func() error {
			images[i] = p.featuredImageURL(gctx, item.FeaturedMediaID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]*models.ContentRepresentation, 0, len(items))
	for i, item := range items {
		out = append(out, p.represent(ct, item, authors[item.AuthorID], profiles[item.AuthorID], images[i], terms[item.ItemID]))
	}
	return out, nil
}
