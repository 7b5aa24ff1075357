package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fashion-shop/models"
)

var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidOrderItem = errors.New("order items must have a name, a positive price and a positive quantity")
	ErrInvalidTotal     = errors.New("order total must be greater than zero")
)

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID int) ([]models.Order, error)
}

type Mailer interface {
	SendOrderConfirmation(to string, order *models.Order) error
}

// OrderService turns checkout snapshots into immutable order records. It
// trusts the caller-provided prices and total; repricing against the live
// catalog happens upstream, before checkout.
type OrderService struct {
	store  OrderStore
	mailer Mailer
}

func NewOrderService(store OrderStore, mailer Mailer) *OrderService {
	return &OrderService{store: store, mailer: mailer}
}

func (s *OrderService) CreateOrder(ctx context.Context, userID int, email string, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Products) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Products {
		if item.Name == "" || item.Price <= 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
	}
	if req.Total <= 0 {
		return nil, ErrInvalidTotal
	}

	order := &models.Order{
		UserID:    userID,
		Total:     req.Total,
		Items:     make([]models.OrderItem, 0, len(req.Products)),
		CreatedAt: time.Now(),
	}
	for _, item := range req.Products {
		order.Items = append(order.Items, models.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, storageErr(err)
	}

	// Confirmation mail is best-effort; the order stands either way.
	if s.mailer != nil && email != "" {
		if err := s.mailer.SendOrderConfirmation(email, order); err != nil {
			log.Printf("Failed to send order confirmation for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int) ([]models.Order, error) {
	orders, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return orders, nil
}
