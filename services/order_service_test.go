package services

import (
	"context"
	"errors"
	"testing"

	"fashion-shop/models"
)

type fakeOrderStore struct {
	orders []models.Order
	nextID int
	fail   bool
}

func (s *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if s.fail {
		return errors.New("connection refused")
	}
	s.nextID++
	order.ID = s.nextID
	s.orders = append(s.orders, *order)
	return nil
}

func (s *fakeOrderStore) FindByUser(ctx context.Context, userID int) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type failingMailer struct {
	calls int
}

func (m *failingMailer) SendOrderConfirmation(to string, order *models.Order) error {
	m.calls++
	return errors.New("smtp unreachable")
}

func validOrderRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Products: []models.OrderItemRequest{
			{Name: "Shirt", Price: 10.00, Quantity: 2},
			{Name: "Cap", Price: 5.00, Quantity: 1},
		},
		Total: 25.00,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{}, nil)
	ctx := context.Background()

	t.Run("empty items", func(t *testing.T) {
		req := validOrderRequest()
		req.Products = nil
		if _, err := svc.CreateOrder(ctx, 1, "", req); !errors.Is(err, ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		req := validOrderRequest()
		req.Products[0].Quantity = 0
		if _, err := svc.CreateOrder(ctx, 1, "", req); !errors.Is(err, ErrInvalidOrderItem) {
			t.Fatalf("expected ErrInvalidOrderItem, got %v", err)
		}
	})

	t.Run("non-positive price", func(t *testing.T) {
		req := validOrderRequest()
		req.Products[1].Price = -1
		if _, err := svc.CreateOrder(ctx, 1, "", req); !errors.Is(err, ErrInvalidOrderItem) {
			t.Fatalf("expected ErrInvalidOrderItem, got %v", err)
		}
	})

	t.Run("non-positive total", func(t *testing.T) {
		req := validOrderRequest()
		req.Total = 0
		if _, err := svc.CreateOrder(ctx, 1, "", req); !errors.Is(err, ErrInvalidTotal) {
			t.Fatalf("expected ErrInvalidTotal, got %v", err)
		}
	})
}

func TestCreateOrderStoresSnapshot(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, nil)

	order, err := svc.CreateOrder(context.Background(), 42, "", validOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected assigned order id")
	}
	if order.UserID != 42 || order.Total != 25.00 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if len(order.Items) != 2 || order.Items[0].Name != "Shirt" || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if order.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestCreateOrderSurvivesMailerFailure(t *testing.T) {
	store := &fakeOrderStore{}
	mailer := &failingMailer{}
	svc := NewOrderService(store, mailer)

	order, err := svc.CreateOrder(context.Background(), 1, "buyer@example.com", validOrderRequest())
	if err != nil {
		t.Fatalf("order should succeed despite mailer failure, got %v", err)
	}
	if mailer.calls != 1 {
		t.Fatalf("expected one mail attempt, got %d", mailer.calls)
	}
	if len(store.orders) != 1 || store.orders[0].ID != order.ID {
		t.Fatalf("order not persisted: %+v", store.orders)
	}
}

func TestCreateOrderStorageFailure(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{fail: true}, nil)

	if _, err := svc.CreateOrder(context.Background(), 1, "", validOrderRequest()); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestListOrdersFiltersByUser(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	if _, err := svc.CreateOrder(ctx, 1, "", validOrderRequest()); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.CreateOrder(ctx, 2, "", validOrderRequest()); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	orders, err := svc.ListOrders(ctx, 1)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 1 || orders[0].UserID != 1 {
		t.Fatalf("expected only user 1 orders, got %+v", orders)
	}
}
