package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategoryRepository defines tenant-scoped category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context, tenantID string) ([]Category, error)
	GetByID(ctx context.Context, tenantID, id string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, tenantID, id string) error
}

// SQLiteCategoryRepository implements CategoryRepository using SQLite.
type SQLiteCategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a SQLite-backed category repository.
func NewCategoryRepository(db *sql.DB) *SQLiteCategoryRepository {
	return &SQLiteCategoryRepository{db: db}
}

// Create inserts a new category. The ID is generated if empty; TenantID
// must already be set to the caller's tenant.
func (r *SQLiteCategoryRepository) Create(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = "cat-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	c.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, tenant_id, name, description, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.Name, nullable(c.Description), now,
	)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	return nil
}

// List returns all categories belonging to the tenant.
func (r *SQLiteCategoryRepository) List(ctx context.Context, tenantID string) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, tenant_id, name, description, created_at FROM categories WHERE tenant_id = ?",
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// GetByID returns the category matching id within the tenant.
func (r *SQLiteCategoryRepository) GetByID(ctx context.Context, tenantID, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, tenant_id, name, description, created_at FROM categories WHERE id = ? AND tenant_id = ?",
		id, tenantID,
	)
	return scanCategory(row)
}

// Update replaces the category's name and description, matched by
// {id, tenant_id}. Zero rows affected reports ErrNotFound.
func (r *SQLiteCategoryRepository) Update(ctx context.Context, c *Category) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, description = ? WHERE id = ? AND tenant_id = ?",
		c.Name, nullable(c.Description), c.ID, c.TenantID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the category matching {id, tenant_id}.
func (r *SQLiteCategoryRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND tenant_id = ?", id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is an interface over sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (*Category, error) {
	var c Category
	var description sql.NullString
	var createdAt string

	err := s.Scan(&c.ID, &c.TenantID, &c.Name, &description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}

	if description.Valid {
		c.Description = &description.String
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	return &c, nil
}

// nullable converts an optional string to its SQL representation.
func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
