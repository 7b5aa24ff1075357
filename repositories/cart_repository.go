package repositories

import (
	"context"
	"time"

	"fashion-shop/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// LoadCart returns the cart for the user with items joined against the live
// catalog. Items come back in id order, which is insertion order. Returns
// pgx.ErrNoRows when the user has no cart yet.
func (r *CartRepository) LoadCart(ctx context.Context, userID int) (*models.Cart, error) {
	cart := &models.Cart{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`,
		userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			ci.id, ci.product_id, ci.quantity, ci.unit_price, ci.created_at, ci.updated_at,
			p.id, p.name, p.description, p.price, p.stock,
			COALESCE(p.image_url, ''), COALESCE(p.category, ''), COALESCE(p.sub_category, ''),
			p.sizes, p.bestseller
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var product models.Product
		err := rows.Scan(
			&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&item.CreatedAt, &item.UpdatedAt,
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.ImageURL, &product.Category,
			&product.SubCategory, &product.Sizes, &product.Bestseller,
		)
		if err != nil {
			return nil, err
		}
		item.CartID = cart.ID
		item.Product = &product
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cart.Items = items
	return cart, nil
}

// CreateCart inserts an empty cart for the user. The insert is idempotent:
// concurrent callers all end up with the same cart row.
func (r *CartRepository) CreateCart(ctx context.Context, userID int) (*models.Cart, error) {
	now := time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO carts (user_id, created_at, updated_at) VALUES ($1, $2, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, now)
	if err != nil {
		return nil, err
	}
	return r.LoadCart(ctx, userID)
}

// SaveCart writes the full item list in one transaction: updates surviving
// rows, inserts new ones (backfilling their ids), and deletes everything else.
// A failure leaves the stored cart untouched.
func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE carts SET updated_at = $1 WHERE id = $2`, now, cart.ID); err != nil {
		return err
	}

	kept := make([]int, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ID == 0 {
			err = tx.QueryRow(ctx,
				`INSERT INTO cart_items (cart_id, product_id, quantity, unit_price, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $5)
				 RETURNING id`,
				cart.ID, item.ProductID, item.Quantity, item.UnitPrice, now).Scan(&item.ID)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3 AND cart_id = $4`,
				item.Quantity, now, item.ID, cart.ID)
		}
		if err != nil {
			return err
		}
		kept = append(kept, item.ID)
	}

	if len(kept) == 0 {
		_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID)
	} else {
		_, err = tx.Exec(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1 AND NOT (id = ANY($2))`,
			cart.ID, kept)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
