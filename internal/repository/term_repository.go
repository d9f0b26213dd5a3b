package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"portfolioCMS/internal/models"
)

type TermRepositoryImpl struct {
	db *sqlx.DB
}

func NewTermRepository(db *sqlx.DB) *TermRepositoryImpl {
	return &TermRepositoryImpl{db: db}
}

func (r *TermRepositoryImpl) ListForItem(ctx context.Context, itemID string) ([]models.TermAssignment, error) {
	query := `SELECT item_id, taxonomy, term_id FROM content_terms WHERE item_id = $1 ORDER BY taxonomy, term_id`

	terms := []models.TermAssignment{}
	if err := r.db.SelectContext(ctx, &terms, query, itemID); err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	return terms, nil
}

// ListForItems groups the assignments of several items by item id.
func (r *TermRepositoryImpl) ListForItems(ctx context.Context, itemIDs []string) (map[string][]models.TermAssignment, error) {
	result := make(map[string][]models.TermAssignment, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := `SELECT item_id, taxonomy, term_id FROM content_terms WHERE item_id = ANY($1) ORDER BY taxonomy, term_id`

	var terms []models.TermAssignment
	if err := r.db.SelectContext(ctx, &terms, query, pq.Array(itemIDs)); err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}

	for _, t := range terms {
		result[t.ItemID] = append(result[t.ItemID], t)
	}
	return result, nil
}

// replaceTerms swaps the assignments of every taxonomy in terms inside tx.
func replaceTerms(ctx context.Context, tx *sqlx.Tx, itemID string, terms TermChanges) error {
	taxonomies := make([]string, 0, len(terms))
	for taxonomy := range terms {
		taxonomies = append(taxonomies, taxonomy)
	}
	sort.Strings(taxonomies)

	for _, taxonomy := range taxonomies {
		if _, err := tx.ExecContext(ctx, `DELETE FROM content_terms WHERE item_id = $1 AND taxonomy = $2`, itemID, taxonomy); err != nil {
			return fmt.Errorf("failed to clear %s terms: %w", taxonomy, err)
		}

		for _, id := range terms[taxonomy] {
			if _, err := tx.ExecContext(ctx, `INSERT INTO content_terms (item_id, taxonomy, term_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, itemID, taxonomy, id); err != nil {
				return fmt.Errorf("failed to assign %s term %d: %w", taxonomy, id, err)
			}
		}
	}
	return nil
}
