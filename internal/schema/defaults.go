package schema

import "fmt"

const (
	TypeArticle = "article"
	TypeProject = "project"

	TaxonomyCategory = "category"
	TaxonomyTag      = "tag"
)

var contentFeatures = []Feature{FeatureTitle, FeatureEditor, FeatureThumbnail, FeatureExcerpt, FeatureCustomFields}

func Article() ContentType {
	return ContentType{
		Name: TypeArticle,
		Labels: Labels{
			Name:         "Articles",
			SingularName: "Article",
			MenuName:     "Articles",
			AllItems:     "All Articles",
		},
		Supports:          contentFeatures,
		Public:            true,
		ShowInREST:        true,
		RESTBase:          "article",
		PubliclyQueryable: true,
		ShowUI:            true,
		ShowInMenu:        true,
		RewriteSlug:       "articles",
		ShowInGraphQL:     true,
		GraphQLSingleName: "article",
		GraphQLPluralName: "articles",
	}
}

func Project() ContentType {
	return ContentType{
		Name: TypeProject,
		Labels: Labels{
			Name:         "Projects",
			SingularName: "Project",
			MenuName:     "Projects",
			AllItems:     "All Projects",
		},
		Supports:          contentFeatures,
		Public:            true,
		ShowInREST:        true,
		RESTBase:          "project",
		PubliclyQueryable: true,
		ShowUI:            true,
		ShowInMenu:        true,
		RewriteSlug:       "projects",
		ShowInGraphQL:     true,
		GraphQLSingleName: "project",
		GraphQLPluralName: "projects",
	}
}

func Category() Taxonomy {
	return Taxonomy{
		Name: TaxonomyCategory,
		Labels: Labels{
			Name:         "Categories",
			SingularName: "Category",
			MenuName:     "Categories",
			AllItems:     "All Categories",
		},
		Hierarchical:      true,
		ObjectTypes:       []string{TypeArticle, TypeProject},
		Public:            true,
		ShowInREST:        true,
		RESTBase:          "categories",
		RewriteSlug:       "category",
		ShowInGraphQL:     true,
		GraphQLSingleName: "category",
		GraphQLPluralName: "categories",
	}
}

func Tag() Taxonomy {
	return Taxonomy{
		Name: TaxonomyTag,
		Labels: Labels{
			Name:         "Tags",
			SingularName: "Tag",
			MenuName:     "Tags",
			AllItems:     "All Tags",
		},
		Hierarchical:      false,
		ObjectTypes:       []string{TypeArticle, TypeProject},
		Public:            true,
		ShowInREST:        true,
		RESTBase:          "tags",
		RewriteSlug:       "tag",
		ShowInGraphQL:     true,
		GraphQLSingleName: "tag",
		GraphQLPluralName: "tags",
	}
}

// DeclareDefaults declares Article, Project, Category and Tag. Safe to call repeatedly.
func DeclareDefaults(r *Registry) error {
	for _, ct := range []ContentType{Article(), Project()} {
		if err := r.DeclareContentType(ct); err != nil {
			return fmt.Errorf("declare content types: %w", err)
		}
	}
	for _, tx := range []Taxonomy{Category(), Tag()} {
		if err := r.DeclareTaxonomy(tx); err != nil {
			return fmt.Errorf("declare taxonomies: %w", err)
		}
	}

	manifest, err := LoadManifest()
	if err != nil {
		return err
	}
	r.SetManifest(manifest)
	return nil
}
