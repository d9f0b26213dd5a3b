package models

import (
	"encoding/json"
	"time"
)

const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

const (
	RoleAdministrator = "administrator"
	RoleAuthor        = "author"
)

type User struct {
	UserID      string    `json:"userId" db:"user_id"`
	Login       string    `json:"login" db:"login"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Description string    `json:"description" db:"description"`
	Slug        string    `json:"slug" db:"slug"`
	Role        string    `json:"role" db:"role"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ContentItem is a stored article or project. Type holds the content type name.
type ContentItem struct {
	ItemID          string          `json:"itemId" db:"item_id"`
	Type            string          `json:"type" db:"type"`
	Slug            string          `json:"slug" db:"slug"`
	AuthorID        string          `json:"authorId" db:"author_id"`
	Title           string          `json:"title" db:"title"`
	Body            string          `json:"body" db:"body"`
	Excerpt         string          `json:"excerpt" db:"excerpt"`
	FeaturedMediaID *string         `json:"featuredMediaId" db:"featured_media_id"`
	CustomFields    json.RawMessage `json:"customFields" db:"custom_fields"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

func (c *ContentItem) IsPublished() bool {
	return c.Status == StatusPublish
}

// Media is an uploaded image. Renditions maps a size name (thumbnail, medium, large)
// to the object key of the resized copy.
type Media struct {
	MediaID    string            `json:"mediaId" db:"media_id"`
	OwnerID    string            `json:"ownerId" db:"owner_id"`
	ObjectKey  string            `json:"objectKey" db:"object_key"`
	MimeType   string            `json:"mimeType" db:"mime_type"`
	Renditions map[string]string `json:"renditions" db:"-"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
}

type TermAssignment struct {
	ItemID   string `db:"item_id"`
	Taxonomy string `db:"taxonomy"`
	TermID   int64  `db:"term_id"`
}

// AuthorProfile is the snapshot of the twelve profile attributes of one user.
// Every attribute is an empty string when unset.
type AuthorProfile struct {
	AuthorProfileImage string `json:"author_profile_image"`
	LinkedinURL        string `json:"linkedin_url"`
	TwitterURL         string `json:"twitter_url"`
	InstagramURL       string `json:"instagram_url"`
	FacebookURL        string `json:"facebook_url"`
	YoutubeURL         string `json:"youtube_url"`
	WebPortfolioURL    string `json:"web_portfolio_url"`
	OtherURL1          string `json:"other_url_1"`
	OtherURL2          string `json:"other_url_2"`
	OtherURL3          string `json:"other_url_3"`
	AuthorCTAHook      string `json:"author_cta_hook"`
	AuthorCTAActionURL string `json:"author_cta_action_url"`
}

// UserRepresentation is the API view of a user. The profile attributes are flattened
// onto it, one key per attribute.
type UserRepresentation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Link        string `json:"link"`
	AuthorProfile
}

// ContentRepresentation is the API view of an article or project with projected fields.
type ContentRepresentation struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Slug          string          `json:"slug"`
	Link          string          `json:"link"`
	Status        string          `json:"status"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Excerpt       string          `json:"excerpt"`
	Author        string          `json:"author"`
	FeaturedMedia *string         `json:"featured_media"`
	CustomFields  json.RawMessage `json:"custom_fields,omitempty"`
	Categories    []int64         `json:"categories"`
	Tags          []int64         `json:"tags"`
	Date          time.Time       `json:"date"`
	Modified      time.Time       `json:"modified"`

	AuthorName       string        `json:"author_name"`
	FeaturedImageURL *string       `json:"featured_image_url"`
	AuthorProfile    AuthorProfile `json:"author_profile"`
}
