package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolioCMS/internal/logger"
	"portfolioCMS/internal/models"
	"portfolioCMS/internal/repository"
	"portfolioCMS/internal/schema"
)

func newContent(t *testing.T, m *mocks) ContentService {
	repo := &repository.Repository{Users: m.users, Content: m.content, Media: m.media, Terms: m.terms}
	return NewContentService(repo, m.storage, testRegistry(t), validator.New(), 0, logger.Discard())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("  Hello, World! "))
	assert.Equal(t, "go-1-24", Slugify("Go 1.24"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestActorCanEdit(t *testing.T) {
	assert.True(t, Actor{UserID: "u1", Role: models.RoleAuthor}.CanEdit("u1"))
	assert.False(t, Actor{UserID: "u2", Role: models.RoleAuthor}.CanEdit("u1"))
	assert.True(t, Actor{UserID: "u2", Role: models.RoleAdministrator}.CanEdit("u1"))
	assert.False(t, Actor{}.CanEdit(""))
}

func TestContentService_Create(t *testing.T) {
	ctx := context.Background()
	author := Actor{UserID: "u1", Role: models.RoleAuthor}

	t.Run("creates a sanitized draft with terms", func(t *testing.T) {
		m := newMocks()
		m.content.On("Create", mock.Anything, mock.MatchedBy(func(item *models.ContentItem) bool {
			return item.Type == schema.TypeArticle && item.Slug == "my-first-post" && item.Status == models.StatusDraft && item.AuthorID == "u1"
		}), repository.TermChanges{"category": {2}}).Run(func(args mock.Arguments) {
			args.Get(1).(*models.ContentItem).ItemID = "a1"
		}).Return(nil)

		cats := []int64{2}
		item, err := newContent(t, m).Create(ctx, author, schema.TypeArticle, ContentInput{
			Title:        "My First Post",
			Body:         `<p>Hi</p><script>alert(1)</script>`,
			CustomFields: json.RawMessage(`{"reading_time":3}`),
			Categories:   &cats,
		})
		require.NoError(t, err)
		assert.Equal(t, "<p>Hi</p>", item.Body)
		assert.JSONEq(t, `{"reading_time":3}`, string(item.CustomFields))
		m.content.AssertExpectations(t)
	})

	t.Run("failed term write surfaces the error", func(t *testing.T) {
		m := newMocks()
		m.content.On("Create", mock.Anything, mock.Anything, repository.TermChanges{"tag": {7}}).
			Return(errors.New("failed to create content item: failed to assign tag term 7: db down"))

		tags := []int64{7}
		item, err := newContent(t, m).Create(ctx, author, schema.TypeArticle, ContentInput{Title: "Retry me", Tags: &tags})
		require.Error(t, err)
		assert.Nil(t, item)
		m.content.AssertNumberOfCalls(t, "Create", 1)
		m.content.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("taxonomy is checked before writing", func(t *testing.T) {
		m := newMocks()
		registry := testRegistry(t)
		page := schema.Project()
		page.Name = "page"
		page.RESTBase = "page"
		page.RewriteSlug = "pages"
		require.NoError(t, registry.DeclareContentType(page))

		repo := &repository.Repository{Users: m.users, Content: m.content, Media: m.media, Terms: m.terms}
		svc := NewContentService(repo, m.storage, registry, validator.New(), 0, logger.Discard())

		cats := []int64{1}
		_, err := svc.Create(ctx, author, "page", ContentInput{Title: "About", Categories: &cats})
		assert.True(t, errors.Is(err, ErrUnknownTaxonomy))
		m.content.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("title is required", func(t *testing.T) {
		_, err := newContent(t, newMocks()).Create(ctx, author, schema.TypeArticle, ContentInput{})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("custom fields must be an object", func(t *testing.T) {
		_, err := newContent(t, newMocks()).Create(ctx, author, schema.TypeProject, ContentInput{Title: "X", CustomFields: json.RawMessage(`[1,2]`)})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := newContent(t, newMocks()).Create(ctx, Actor{}, schema.TypeArticle, ContentInput{Title: "X"})
		assert.True(t, errors.Is(err, ErrForbidden))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := newContent(t, newMocks()).Create(ctx, author, "page", ContentInput{Title: "X"})
		assert.True(t, errors.Is(err, ErrUnknownContentType))
	})
}

func TestContentService_Permissions(t *testing.T) {
	ctx := context.Background()
	item := &models.ContentItem{ItemID: "a1", Type: schema.TypeArticle, AuthorID: "u1", Status: models.StatusDraft}

	t.Run("other author cannot publish", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeArticle, "a1").Return(item, nil)

		err := newContent(t, m).Publish(ctx, Actor{UserID: "u2", Role: models.RoleAuthor}, schema.TypeArticle, "a1")
		assert.True(t, errors.Is(err, ErrForbidden))
		m.content.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("administrator publishes", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeArticle, "a1").Return(item, nil)
		m.content.On("Publish", mock.Anything, schema.TypeArticle, "a1").Return(nil)

		err := newContent(t, m).Publish(ctx, Actor{UserID: "root", Role: models.RoleAdministrator}, schema.TypeArticle, "a1")
		assert.NoError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeArticle, "a1").Return(item, nil)
		m.content.On("Delete", mock.Anything, schema.TypeArticle, "a1").Return(nil)

		assert.NoError(t, newContent(t, m).Delete(ctx, Actor{UserID: "u1"}, schema.TypeArticle, "a1"))
	})

	t.Run("update keeps author", func(t *testing.T) {
		m := newMocks()
		existing := *item
		m.content.On("GetByID", mock.Anything, schema.TypeArticle, "a1").Return(&existing, nil)
		m.content.On("Update", mock.Anything, mock.Anything, repository.TermChanges{}).Return(nil)

		updated, err := newContent(t, m).Update(ctx, Actor{UserID: "u1"}, schema.TypeArticle, "a1", ContentInput{Title: "Renamed", Slug: "renamed"})
		require.NoError(t, err)
		assert.Equal(t, "u1", updated.AuthorID)
		assert.Equal(t, "renamed", updated.Slug)
	})
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestContentService_SetFeaturedImage(t *testing.T) {
	ctx := context.Background()
	owner := Actor{UserID: "u1"}
	item := &models.ContentItem{ItemID: "p1", Type: schema.TypeProject, AuthorID: "u1"}

	t.Run("small image has no large rendition", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeProject, "p1").Return(item, nil)
		m.storage.On("UploadImage", mock.Anything, "u1", "cover.png", mock.Anything, mock.Anything).Return("media/u1/cover.png", "image/png", nil)
		m.storage.On("UploadImage", mock.Anything, "u1", "cover-150x100.jpg", mock.Anything, mock.Anything).Return("media/u1/thumb.jpg", "image/jpeg", nil)
		m.media.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Media).MediaID = "m1"
		}).Return(nil)
		m.content.On("SetFeaturedMedia", mock.Anything, "p1", mock.Anything).Return(nil)

		media, err := newContent(t, m).SetFeaturedImage(ctx, owner, schema.TypeProject, "p1", ImageUpload{FileName: "cover.png", File: bytes.NewReader(pngBytes(t, 240, 160))})
		require.NoError(t, err)
		assert.Equal(t, "image/png", media.MimeType)
		assert.Equal(t, map[string]string{"thumbnail": "media/u1/thumb.jpg"}, media.Renditions)
		m.storage.AssertNumberOfCalls(t, "UploadImage", 2)
	})

	t.Run("rejects oversized images before upload", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeProject, "p1").Return(item, nil)

		repo := &repository.Repository{Users: m.users, Content: m.content, Media: m.media, Terms: m.terms}
		svc := NewContentService(repo, m.storage, testRegistry(t), validator.New(), 10_000, logger.Discard())

		_, err := svc.SetFeaturedImage(ctx, owner, schema.TypeProject, "p1", ImageUpload{FileName: "huge.png", File: bytes.NewReader(pngBytes(t, 200, 100))})
		assert.True(t, errors.Is(err, ErrUnsupportedImage))
		m.storage.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects non-images", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeProject, "p1").Return(item, nil)

		_, err := newContent(t, m).SetFeaturedImage(ctx, owner, schema.TypeProject, "p1", ImageUpload{FileName: "notes.txt", File: bytes.NewReader([]byte("hello"))})
		assert.True(t, errors.Is(err, ErrUnsupportedImage))
		m.storage.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("removes uploads when recording fails", func(t *testing.T) {
		m := newMocks()
		m.content.On("GetByID", mock.Anything, schema.TypeProject, "p1").Return(item, nil)
		m.storage.On("UploadImage", mock.Anything, "u1", "tiny.png", mock.Anything, mock.Anything).Return("media/u1/tiny.png", "image/png", nil)
		m.media.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		m.storage.On("DeleteImage", mock.Anything, "media/u1/tiny.png").Return(nil)

		_, err := newContent(t, m).SetFeaturedImage(ctx, owner, schema.TypeProject, "p1", ImageUpload{FileName: "tiny.png", File: bytes.NewReader(pngBytes(t, 20, 20))})
		assert.Error(t, err)
		m.storage.AssertCalled(t, "DeleteImage", mock.Anything, "media/u1/tiny.png")
	})
}
