package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fashion-shop/models"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrItemNotFound       = errors.New("item not found in cart")
	ErrInsufficientStock  = errors.New("requested quantity exceeds available stock")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ProductFinder is the read-only catalog view the cart needs. Absence is
// signalled with pgx.ErrNoRows.
type ProductFinder interface {
	FindProduct(ctx context.Context, id int) (*models.Product, error)
}

// CartStore persists whole carts. SaveCart must be atomic: on error the
// stored cart is unchanged.
type CartStore interface {
	LoadCart(ctx context.Context, userID int) (*models.Cart, error)
	CreateCart(ctx context.Context, userID int) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
}

// CartService owns the cart invariants: at most one item per product,
// quantity always >= 1, unit price frozen at add time. Every mutation is a
// load-modify-save cycle serialized per user, so two concurrent requests for
// the same cart cannot lose updates.
type CartService struct {
	catalog           ProductFinder
	store             CartStore
	enforceStockLimit bool

	locks sync.Map // user id -> *sync.Mutex
}

func NewCartService(catalog ProductFinder, store CartStore, enforceStockLimit bool) *CartService {
	return &CartService{
		catalog:           catalog,
		store:             store,
		enforceStockLimit: enforceStockLimit,
	}
}

func (s *CartService) lockUser(userID int) func() {
	if v, ok := s.locks.Load(userID); ok {
		m := v.(*sync.Mutex)
		m.Lock()
		return m.Unlock
	}
	actual, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	m := actual.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func finalize(cart *models.Cart) *models.Cart {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	total := 0.0
	for i := range cart.Items {
		total += float64(cart.Items[i].Quantity) * cart.Items[i].UnitPrice
	}
	cart.Total = total
	return cart
}

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access. A cart is never deleted afterwards, only emptied.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID int) (*models.Cart, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	cart, err := s.store.LoadCart(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		cart, err = s.store.CreateCart(ctx, userID)
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return finalize(cart), nil
}

// AddItem merges into an existing line for the same product (quantity adds
// up, the original price snapshot stays) or appends a new line priced at the
// product's current catalog price.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.lockUser(userID)
	defer unlock()

	product, err := s.catalog.FindProduct(ctx, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	cart, err := s.store.LoadCart(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		cart, err = s.store.CreateCart(ctx, userID)
	}
	if err != nil {
		return nil, storageErr(err)
	}

	idx := cart.FindProductItem(productID)
	newQuantity := quantity
	if idx >= 0 {
		newQuantity = cart.Items[idx].Quantity + quantity
	}
	if s.enforceStockLimit && newQuantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = newQuantity
		cart.Items[idx].Product = product
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Product:   product,
		})
	}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, storageErr(err)
	}
	return finalize(cart), nil
}

// UpdateItem overwrites the quantity of the item with the given id.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.lockUser(userID)
	defer unlock()

	cart, err := s.store.LoadCart(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if s.enforceStockLimit {
		product, err := s.catalog.FindProduct(ctx, cart.Items[idx].ProductID)
		if err == nil && quantity > product.Stock {
			return nil, ErrInsufficientStock
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, storageErr(err)
		}
	}

	cart.Items[idx].Quantity = quantity

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, storageErr(err)
	}
	return finalize(cart), nil
}

// RemoveItem deletes the item with the given id, keeping the order of the
// remaining items.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int) (*models.Cart, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	cart, err := s.store.LoadCart(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, storageErr(err)
	}
	return finalize(cart), nil
}

// ClearCart empties the cart but keeps the cart row alive.
func (s *CartService) ClearCart(ctx context.Context, userID int) (*models.Cart, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	cart, err := s.store.LoadCart(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	cart.Items = []models.CartItem{}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, storageErr(err)
	}
	return finalize(cart), nil
}
