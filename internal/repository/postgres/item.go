package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/pkg/database"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
)

// ItemRepository implements repository.ItemRepository using PostgreSQL.
// Each item row carries its review sequence as a jsonb document column, so
// reviews live and die with their parent item.
type ItemRepository struct {
	pool database.DBTX
}

// NewItemRepository creates a new PostgreSQL-backed item repository.
func NewItemRepository(pool database.DBTX) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// Create inserts a new item into the database.
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	attributeJSON, err := marshalAttribute(item.Attribute)
	if err != nil {
		return fmt.Errorf("marshal attribute: %w", err)
	}

	reviewsJSON, err := marshalReviews(item.Reviews)
	if err != nil {
		return fmt.Errorf("marshal reviews: %w", err)
	}

	query := `
		INSERT INTO items (id, name, category, description, price, seller, image, rating, attribute, reviews, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Description,
		item.Price,
		item.Seller,
		item.Image,
		item.Rating,
		attributeJSON,
		reviewsJSON,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by its ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `
		SELECT id, name, category, description, price, seller, image, rating, attribute, reviews, created_at
		FROM items
		WHERE id = $1`

	var (
		item          domain.Item
		attributeJSON []byte
		reviewsJSON   []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Description,
		&item.Price,
		&item.Seller,
		&item.Image,
		&item.Rating,
		&attributeJSON,
		&reviewsJSON,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}

	if err := unmarshalItemDocs(&item, attributeJSON, reviewsJSON); err != nil {
		return nil, err
	}

	return &item, nil
}

// List returns all items. Ordering follows insertion time; callers must not
// rely on it.
func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT id, name, category, description, price, seller, image, rating, attribute, reviews, created_at
		FROM items
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var (
			item          domain.Item
			attributeJSON []byte
			reviewsJSON   []byte
		)

		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Description,
			&item.Price,
			&item.Seller,
			&item.Image,
			&item.Rating,
			&attributeJSON,
			&reviewsJSON,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}

		if err := unmarshalItemDocs(&item, attributeJSON, reviewsJSON); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}

	if items == nil {
		items = []domain.Item{}
	}

	return items, nil
}

// Delete removes an item from the database by its ID.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("item", id)
	}

	return nil
}

// UpdateReviews persists the review sequence and recomputed rating in a
// single conditional update. The WHERE clause compares the stored jsonb
// document against the sequence the caller read, so a concurrent submission
// between read and write makes this a no-op and surfaces ErrConflict instead
// of silently losing the other writer's update.
func (r *ItemRepository) UpdateReviews(ctx context.Context, id string, reviews []domain.Review, rating float64, prev []domain.Review) error {
	reviewsJSON, err := marshalReviews(reviews)
	if err != nil {
		return fmt.Errorf("marshal reviews: %w", err)
	}

	prevJSON, err := marshalReviews(prev)
	if err != nil {
		return fmt.Errorf("marshal previous reviews: %w", err)
	}

	query := `
		UPDATE items
		SET reviews = $2, rating = $3
		WHERE id = $1 AND reviews = $4`

	ct, err := r.pool.Exec(ctx, query, id, reviewsJSON, rating, prevJSON)
	if err != nil {
		return fmt.Errorf("update item reviews: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("item %s reviews changed since read: %w", id, apperrors.ErrConflict)
	}

	return nil
}

// marshalAttribute encodes the category-tagged attribute, keeping NULL for
// items whose category carries none.
func marshalAttribute(a *domain.Attribute) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// marshalReviews encodes a review sequence, normalizing nil to an empty
// jsonb array so document equality comparisons stay stable.
func marshalReviews(reviews []domain.Review) ([]byte, error) {
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return json.Marshal(reviews)
}

// unmarshalItemDocs decodes the jsonb document columns onto the item.
func unmarshalItemDocs(item *domain.Item, attributeJSON, reviewsJSON []byte) error {
	if len(attributeJSON) > 0 {
		var a domain.Attribute
		if err := json.Unmarshal(attributeJSON, &a); err != nil {
			return fmt.Errorf("unmarshal attribute: %w", err)
		}
		item.Attribute = &a
	}

	item.Reviews = []domain.Review{}
	if len(reviewsJSON) > 0 {
		if err := json.Unmarshal(reviewsJSON, &item.Reviews); err != nil {
			return fmt.Errorf("unmarshal reviews: %w", err)
		}
	}

	return nil
}
