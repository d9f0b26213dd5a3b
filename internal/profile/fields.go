package profile

import (
	"errors"

	"portfolioCMS/internal/models"
)

var ErrUnknownField = errors.New("unknown profile field")

type Kind string

const (
	KindURL  Kind = "url"
	KindText Kind = "text"
)

// FieldSpec describes one profile attribute. Every attribute defaults to "".
type FieldSpec struct {
	Name  string
	Label string
	Kind  Kind
	ref   func(*models.AuthorProfile) *string
}

var fields = []FieldSpec{
	{Name: "author_profile_image", Label: "Author Profile Image", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.AuthorProfileImage }},
	{Name: "linkedin_url", Label: "LinkedIn URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.LinkedinURL }},
	{Name: "twitter_url", Label: "Twitter URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.TwitterURL }},
	{Name: "instagram_url", Label: "Instagram URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.InstagramURL }},
	{Name: "facebook_url", Label: "Facebook URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.FacebookURL }},
	{Name: "youtube_url", Label: "YouTube URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.YoutubeURL }},
	{Name: "web_portfolio_url", Label: "Web Portfolio URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.WebPortfolioURL }},
	{Name: "other_url_1", Label: "Other URL 1", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.OtherURL1 }},
	{Name: "other_url_2", Label: "Other URL 2", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.OtherURL2 }},
	{Name: "other_url_3", Label: "Other URL 3", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.OtherURL3 }},
	{Name: "author_cta_hook", Label: "Author CTA Hook", Kind: KindText, ref: func(p *models.AuthorProfile) *string { return &p.AuthorCTAHook }},
	{Name: "author_cta_action_url", Label: "Author CTA Action URL", Kind: KindURL, ref: func(p *models.AuthorProfile) *string { return &p.AuthorCTAActionURL }},
}

// Fields returns the profile attributes in their fixed order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

func Lookup(name string) (FieldSpec, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// OwnerKey builds the owner identifier profile values are stored under.
func OwnerKey(userID string) string {
	return "user_" + userID
}

// ToProfile fills an AuthorProfile from raw stored values. Names outside the
// field table are ignored and missing names stay "".
func ToProfile(values map[string]string) models.AuthorProfile {
	var p models.AuthorProfile
	for _, f := range fields {
		*f.ref(&p) = values[f.Name]
	}
	return p
}

func (f FieldSpec) Value(p *models.AuthorProfile) string {
	return *f.ref(p)
}
