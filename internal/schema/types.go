package schema

import "slices"

// Labels are the human-readable names a content type or taxonomy shows in admin tooling.
type Labels struct {
	Name         string `json:"name" yaml:"name"`
	SingularName string `json:"singular_name" yaml:"singular_name"`
	MenuName     string `json:"menu_name" yaml:"menu_name"`
	AllItems     string `json:"all_items" yaml:"all_items"`
}

// Feature is an editing capability a content type supports.
type Feature string

const (
	FeatureTitle        Feature = "title"
	FeatureEditor       Feature = "editor"
	FeatureThumbnail    Feature = "thumbnail"
	FeatureExcerpt      Feature = "excerpt"
	FeatureCustomFields Feature = "custom-fields"
)

type ContentType struct {
	Name              string    `json:"name"`
	Labels            Labels    `json:"labels"`
	Supports          []Feature `json:"supports"`
	Public            bool      `json:"public"`
	ShowInREST        bool      `json:"show_in_rest"`
	RESTBase          string    `json:"rest_base"`
	PubliclyQueryable bool      `json:"publicly_queryable"`
	ShowUI            bool      `json:"show_ui"`
	ShowInMenu        bool      `json:"show_in_menu"`
	ShowInNavMenus    bool      `json:"show_in_nav_menus"`
	HasArchive        bool      `json:"has_archive"`
	RewriteSlug       string    `json:"rewrite_slug"`
	ShowInGraphQL     bool      `json:"show_in_graphql"`
	GraphQLSingleName string    `json:"graphql_single_name"`
	GraphQLPluralName string    `json:"graphql_plural_name"`
}

// HasFeature reports whether the content type supports f.
func (ct ContentType) HasFeature(f Feature) bool {
	return slices.Contains(ct.Supports, f)
}

type Taxonomy struct {
	Name              string   `json:"name"`
	Labels            Labels   `json:"labels"`
	Hierarchical      bool     `json:"hierarchical"`
	ObjectTypes       []string `json:"object_types"`
	Public            bool     `json:"public"`
	ShowInREST        bool     `json:"show_in_rest"`
	RESTBase          string   `json:"rest_base"`
	RewriteSlug       string   `json:"rewrite_slug"`
	ShowInGraphQL     bool     `json:"show_in_graphql"`
	GraphQLSingleName string   `json:"graphql_single_name"`
	GraphQLPluralName string   `json:"graphql_plural_name"`
}

// AppliesTo reports whether the taxonomy is attached to the given content type.
func (tx Taxonomy) AppliesTo(contentType string) bool {
	return slices.Contains(tx.ObjectTypes, contentType)
}
