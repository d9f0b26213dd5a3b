package schema

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

var (
	ErrInvalidDeclaration     = errors.New("invalid declaration")
	ErrConflictingDeclaration = errors.New("conflicting declaration")
	ErrUnknownContentType     = errors.New("unknown content type")
	ErrUnknownTaxonomy        = errors.New("unknown taxonomy")
)

// Registry holds the declared content types and taxonomies. Declarations are
// idempotent: re-declaring an identical definition is a no-op.
type Registry struct {
	mu            sync.RWMutex
	contentTypes  map[string]ContentType
	taxonomies    map[string]Taxonomy
	typeOrder     []string
	taxonomyOrder []string
	manifest      Manifest
}

func NewRegistry() *Registry {
	return &Registry{
		contentTypes: make(map[string]ContentType),
		taxonomies:   make(map[string]Taxonomy),
	}
}

func (r *Registry) DeclareContentType(ct ContentType) error {
	if ct.Name == "" {
		return fmt.Errorf("content type without name: %w", ErrInvalidDeclaration)
	}
	if ct.RESTBase == "" {
		ct.RESTBase = ct.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.contentTypes[ct.Name]; ok {
		if reflect.DeepEqual(existing, ct) {
			return nil
		}
		return fmt.Errorf("content type %q: %w", ct.Name, ErrConflictingDeclaration)
	}
	for _, other := range r.contentTypes {
		if other.RESTBase == ct.RESTBase || (ct.RewriteSlug != "" && other.RewriteSlug == ct.RewriteSlug) {
			return fmt.Errorf("content type %q reuses route of %q: %w", ct.Name, other.Name, ErrConflictingDeclaration)
		}
	}

	ct.Supports = slices.Clone(ct.Supports)
	r.contentTypes[ct.Name] = ct
	r.typeOrder = append(r.typeOrder, ct.Name)
	return nil
}

func (r *Registry) DeclareTaxonomy(tx Taxonomy) error {
	if tx.Name == "" {
		return fmt.Errorf("taxonomy without name: %w", ErrInvalidDeclaration)
	}
	if tx.RESTBase == "" {
		tx.RESTBase = tx.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, objectType := range tx.ObjectTypes {
		if _, ok := r.contentTypes[objectType]; !ok {
			return fmt.Errorf("taxonomy %q attached to %q: %w", tx.Name, objectType, ErrUnknownContentType)
		}
	}

	if existing, ok := r.taxonomies[tx.Name]; ok {
		if reflect.DeepEqual(existing, tx) {
			return nil
		}
		return fmt.Errorf("taxonomy %q: %w", tx.Name, ErrConflictingDeclaration)
	}

	tx.ObjectTypes = slices.Clone(tx.ObjectTypes)
	r.taxonomies[tx.Name] = tx
	r.taxonomyOrder = append(r.taxonomyOrder, tx.Name)
	return nil
}

// SetManifest records the module metadata shown in the schema snapshot.
func (r *Registry) SetManifest(m Manifest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifest = m
}

func (r *Registry) ContentType(name string) (ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.contentTypes[name]
	return ct, ok
}

func (r *Registry) ContentTypeByRESTBase(base string) (ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.typeOrder {
		if ct := r.contentTypes[name]; ct.RESTBase == base {
			return ct, true
		}
	}
	return ContentType{}, false
}

func (r *Registry) ContentTypeBySlug(slug string) (ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.typeOrder {
		if ct := r.contentTypes[name]; ct.RewriteSlug == slug {
			return ct, true
		}
	}
	return ContentType{}, false
}

func (r *Registry) Taxonomy(name string) (Taxonomy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.taxonomies[name]
	return tx, ok
}

// ContentTypes returns the declared content types in declaration order.
func (r *Registry) ContentTypes() []ContentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ContentType, 0, len(r.typeOrder))
	for _, name := range r.typeOrder {
		out = append(out, r.contentTypes[name])
	}
	return out
}

// Taxonomies returns the declared taxonomies in declaration order.
func (r *Registry) Taxonomies() []Taxonomy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Taxonomy, 0, len(r.taxonomyOrder))
	for _, name := range r.taxonomyOrder {
		out = append(out, r.taxonomies[name])
	}
	return out
}

// TaxonomiesFor returns the taxonomies attached to a content type.
func (r *Registry) TaxonomiesFor(contentType string) []Taxonomy {
	var out []Taxonomy
	for _, tx := range r.Taxonomies() {
		if tx.AppliesTo(contentType) {
			out = append(out, tx)
		}
	}
	return out
}

type GraphQLType struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	SingleName string `json:"single_name"`
	PluralName string `json:"plural_name"`
}

// Snapshot is the introspection view of the schema.
type Snapshot struct {
	Module       Manifest      `json:"module"`
	ContentTypes []ContentType `json:"content_types"`
	Taxonomies   []Taxonomy    `json:"taxonomies"`
	GraphQL      []GraphQLType `json:"graphql"`
}

func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		ContentTypes: r.ContentTypes(),
		Taxonomies:   r.Taxonomies(),
	}
	r.mu.RLock()
	snap.Module = r.manifest
	r.mu.RUnlock()

	for _, ct := range snap.ContentTypes {
		if ct.ShowInGraphQL {
			snap.GraphQL = append(snap.GraphQL, GraphQLType{Kind: "content_type", Name: ct.Name, SingleName: ct.GraphQLSingleName, PluralName: ct.GraphQLPluralName})
		}
	}
	for _, tx := range snap.Taxonomies {
		if tx.ShowInGraphQL {
			snap.GraphQL = append(snap.GraphQL, GraphQLType{Kind: "taxonomy", Name: tx.Name, SingleName: tx.GraphQLSingleName, PluralName: tx.GraphQLPluralName})
		}
	}
	return snap
}
