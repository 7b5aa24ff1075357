package repositories

import (
	"context"
	"time"

	"fashion-shop/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, stock,
	COALESCE(image_url, ''), COALESCE(category, ''), COALESCE(sub_category, ''),
	sizes, bestseller, created_at, updated_at`

func (r *ProductRepository) scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.ImageURL, &product.Category,
		&product.SubCategory, &product.Sizes, &product.Bestseller,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// FindProduct returns pgx.ErrNoRows when the product does not exist.
func (r *ProductRepository) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return r.scanProduct(row)
}

func (r *ProductRepository) FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	return r.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, stock, image_url, category, sub_category, sizes, bestseller, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 RETURNING id, created_at, updated_at`,
		product.Name, product.Description, product.Price, product.Stock,
		product.ImageURL, product.Category, product.SubCategory,
		product.Sizes, product.Bestseller, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	_, err := r.db.Exec(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, stock = $4, image_url = $5,
		     category = $6, sub_category = $7, sizes = $8, bestseller = $9, updated_at = $10
		 WHERE id = $11`,
		product.Name, product.Description, product.Price, product.Stock,
		product.ImageURL, product.Category, product.SubCategory,
		product.Sizes, product.Bestseller, time.Now(), product.ID)
	return err
}

// Delete removes the product; cart_items referencing it go with it via the
// foreign key cascade.
func (r *ProductRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
