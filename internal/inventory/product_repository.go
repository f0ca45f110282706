package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProductRepository defines tenant-scoped product persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context, tenantID string) ([]Product, error)
	GetByID(ctx context.Context, tenantID, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, tenantID, id string) error
}

// SQLiteProductRepository implements ProductRepository using SQLite.
type SQLiteProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a SQLite-backed product repository.
func NewProductRepository(db *sql.DB) *SQLiteProductRepository {
	return &SQLiteProductRepository{db: db}
}

// productSelect joins categories for display. The join is LEFT so a
// missing or dangling category degrades to a null category_name.
const productSelect = `SELECT p.id, p.tenant_id, p.name, p.description, p.price, p.barcode,
	p.category_id, p.stock, p.created_at, c.name AS category_name
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

// Create inserts a new product. The ID is generated if empty; TenantID
// must already be set to the caller's tenant.
func (r *SQLiteProductRepository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = "prd-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, tenant_id, name, description, price, barcode, category_id, stock, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, nullable(p.Description), p.Price,
		nullable(p.Barcode), nullable(p.CategoryID), p.Stock, now,
	)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// List returns all products belonging to the tenant with their category
// names, newest first.
func (r *SQLiteProductRepository) List(ctx context.Context, tenantID string) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		productSelect+" WHERE p.tenant_id = ? ORDER BY p.created_at DESC",
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// GetByID returns the product matching id within the tenant.
func (r *SQLiteProductRepository) GetByID(ctx context.Context, tenantID, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		productSelect+" WHERE p.id = ? AND p.tenant_id = ?",
		id, tenantID,
	)
	return scanProduct(row)
}

// Update replaces the product's name, description, price, stock, and
// category_id, matched by {id, tenant_id}. Zero rows affected reports
// ErrNotFound.
func (r *SQLiteProductRepository) Update(ctx context.Context, p *Product) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, stock = ?, category_id = ?
		 WHERE id = ? AND tenant_id = ?`,
		p.Name, nullable(p.Description), p.Price, p.Stock, nullable(p.CategoryID),
		p.ID, p.TenantID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product matching {id, tenant_id}.
func (r *SQLiteProductRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = ? AND tenant_id = ?", id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(s scanner) (*Product, error) {
	var p Product
	var description, barcode, categoryID, categoryName sql.NullString
	var createdAt string

	err := s.Scan(&p.ID, &p.TenantID, &p.Name, &description, &p.Price,
		&barcode, &categoryID, &p.Stock, &createdAt, &categoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	if description.Valid {
		p.Description = &description.String
	}
	if barcode.Valid {
		p.Barcode = &barcode.String
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.String
	}
	if categoryName.Valid {
		p.CategoryName = &categoryName.String
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	return &p, nil
}
