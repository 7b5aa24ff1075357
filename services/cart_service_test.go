package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fashion-shop/models"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[int]models.Product
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[int]models.Product{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := p
	return &cp, nil
}

func (c *fakeCatalog) setPrice(id int, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.products[id]
	p.Price = price
	c.products[id] = p
}

type memCartStore struct {
	mu         sync.Mutex
	carts      map[int]*models.Cart
	nextCartID int
	nextItemID int
	saveCalls  int
	failSave   bool
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[int]*models.Cart{}}
}

func copyCart(cart *models.Cart) *models.Cart {
	cp := *cart
	cp.Items = make([]models.CartItem, len(cart.Items))
	copy(cp.Items, cart.Items)
	return &cp
}

func (s *memCartStore) LoadCart(ctx context.Context, userID int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyCart(cart), nil
}

func (s *memCartStore) CreateCart(ctx context.Context, userID int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[userID]; ok {
		return copyCart(cart), nil
	}
	s.nextCartID++
	cart := &models.Cart{ID: s.nextCartID, UserID: userID, Items: []models.CartItem{}}
	s.carts[userID] = cart
	return copyCart(cart), nil
}

func (s *memCartStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("connection refused")
	}
	s.saveCalls++
	for i := range cart.Items {
		if cart.Items[i].ID == 0 {
			s.nextItemID++
			cart.Items[i].ID = s.nextItemID
		}
	}
	s.carts[cart.UserID] = copyCart(cart)
	return nil
}

func newTestCartService(catalog ProductFinder, store CartStore) *CartService {
	return NewCartService(catalog, store, false)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	svc := newTestCartService(newFakeCatalog(models.Product{ID: 1, Price: 10, Stock: 5}), store)

	for _, qty := range []int{0, -1, -42} {
		if _, err := svc.AddItem(ctx, 1, 1, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if store.saveCalls != 0 {
		t.Fatalf("storage should be untouched, got %d saves", store.saveCalls)
	}
	if len(store.carts) != 0 {
		t.Fatalf("no cart should have been created")
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	svc := newTestCartService(newFakeCatalog(), store)

	if _, err := svc.AddItem(ctx, 1, 99, 2); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if store.saveCalls != 0 || len(store.carts) != 0 {
		t.Fatalf("no cart mutation should have occurred")
	}
}

func TestAddItemCapturesPriceAndComputesTotal(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Name: "Shirt", Price: 10.00, Stock: 50})
	svc := newTestCartService(catalog, newMemCartStore())

	cart, err := svc.AddItem(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Quantity != 2 || item.UnitPrice != 10.00 {
		t.Fatalf("expected quantity=2 unit_price=10.00, got %d / %v", item.Quantity, item.UnitPrice)
	}
	if cart.Total != 20.00 {
		t.Fatalf("expected total 20.00, got %v", cart.Total)
	}
}

func TestAddItemMergesIntoExistingLine(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 10.00, Stock: 50})
	svc := newTestCartService(catalog, newMemCartStore())

	if _, err := svc.AddItem(ctx, 1, 1, 2); err != nil {
		t.Fatalf("first AddItem failed: %v", err)
	}

	// A price change between adds must not touch the captured snapshot.
	catalog.setPrice(1, 12.00)

	cart, err := svc.AddItem(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected a single merged item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].UnitPrice != 10.00 {
		t.Fatalf("expected snapshot price 10.00, got %v", cart.Items[0].UnitPrice)
	}
	if cart.Total != 40.00 {
		t.Fatalf("expected total 40.00, got %v", cart.Total)
	}
}

func TestUpdateItemOverwritesQuantity(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 10.00, Stock: 50})
	svc := newTestCartService(catalog, newMemCartStore())

	cart, err := svc.AddItem(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, 1, itemID, 5)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.Total != 50.00 {
		t.Fatalf("expected total 50.00, got %v", cart.Total)
	}

	cart, err = svc.UpdateItem(ctx, 1, itemID, 3)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("overwrite expected quantity 3, got %d", cart.Items[0].Quantity)
	}
}

func TestUpdateItemErrors(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 10.00, Stock: 50})
	store := newMemCartStore()
	svc := newTestCartService(catalog, store)

	t.Run("invalid quantity", func(t *testing.T) {
		if _, err := svc.UpdateItem(ctx, 1, 1, 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("no cart", func(t *testing.T) {
		if _, err := svc.UpdateItem(ctx, 1, 1, 2); !errors.Is(err, ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		if _, err := svc.AddItem(ctx, 1, 1, 2); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if _, err := svc.UpdateItem(ctx, 1, 999, 2); !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestRemoveItemTwice(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(
		models.Product{ID: 1, Price: 10.00, Stock: 50},
		models.Product{ID: 2, Price: 5.00, Stock: 50},
		models.Product{ID: 3, Price: 7.50, Stock: 50},
	)
	svc := newTestCartService(catalog, newMemCartStore())

	for _, productID := range []int{1, 2, 3} {
		if _, err := svc.AddItem(ctx, 1, productID, 1); err != nil {
			t.Fatalf("AddItem(%d) failed: %v", productID, err)
		}
	}
	cart, err := svc.GetOrCreateCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	middleID := cart.Items[1].ID

	cart, err = svc.RemoveItem(ctx, 1, middleID)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 items after remove, got %d", len(cart.Items))
	}
	if cart.Items[0].ProductID != 1 || cart.Items[1].ProductID != 3 {
		t.Fatalf("remaining items out of order: %+v", cart.Items)
	}

	if _, err := svc.RemoveItem(ctx, 1, middleID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("second remove: expected ErrItemNotFound, got %v", err)
	}
}

func TestClearCartThenGetOrCreate(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 10.00, Stock: 50})
	svc := newTestCartService(catalog, newMemCartStore())

	t.Run("clear without cart", func(t *testing.T) {
		if _, err := svc.ClearCart(ctx, 2); !errors.Is(err, ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	if _, err := svc.AddItem(ctx, 1, 1, 3); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cart, err := svc.ClearCart(ctx, 1)
	if err != nil {
		t.Fatalf("ClearCart failed: %v", err)
	}
	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Fatalf("expected empty cart, got %d items total %v", len(cart.Items), cart.Total)
	}

	cart, err = svc.GetOrCreateCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreateCart after clear failed: %v", err)
	}
	if cart.Items == nil || len(cart.Items) != 0 {
		t.Fatalf("expected existing empty cart, got %+v", cart)
	}
}

func TestStockLimitPolicy(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 10.00, Stock: 3})
	store := newMemCartStore()
	svc := NewCartService(catalog, store, true)

	if _, err := svc.AddItem(ctx, 1, 1, 2); err != nil {
		t.Fatalf("AddItem within stock failed: %v", err)
	}

	if _, err := svc.AddItem(ctx, 1, 1, 2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	cart, err := svc.GetOrCreateCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("cart should be unchanged after rejected add, got quantity %d", cart.Items[0].Quantity)
	}

	if _, err := svc.UpdateItem(ctx, 1, cart.Items[0].ID, 5); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock on update, got %v", err)
	}
}

func TestStorageFailureSurfacesAsStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 10.00, Stock: 50})
	store := newMemCartStore()
	svc := newTestCartService(catalog, store)

	if _, err := svc.AddItem(ctx, 1, 1, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	store.failSave = true
	if _, err := svc.AddItem(ctx, 1, 1, 1); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	store.failSave = false

	cart, err := svc.GetOrCreateCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("stored cart should be unchanged after failed save, got quantity %d", cart.Items[0].Quantity)
	}
}

func TestConcurrentAddItemIncrements(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(models.Product{ID: 1, Price: 1.00, Stock: 1000})
	svc := newTestCartService(catalog, newMemCartStore())

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(ctx, 1, 1, 1)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	cart, err := svc.GetOrCreateCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected a single item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != n {
		t.Fatalf("expected quantity %d, got %d", n, cart.Items[0].Quantity)
	}
}

func TestConcurrentGetOrCreateSingleCart(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newFakeCatalog(), newMemCartStore())

	const n = 50
	ids := make(map[int]struct{})
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			cart, err := svc.GetOrCreateCart(ctx, 7)
			if err != nil {
				return err
			}
			mu.Lock()
			ids[cart.ID] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent GetOrCreateCart failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected exactly 1 cart id, got %d: %v", len(ids), ids)
	}
}
