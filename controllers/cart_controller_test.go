package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fashion-shop/models"
	"fashion-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type stubCatalog map[int]models.Product

func (c stubCatalog) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	p, ok := c[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := p
	return &cp, nil
}

type stubCartStore struct {
	carts      map[int]*models.Cart
	nextItemID int
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: map[int]*models.Cart{}}
}

func (s *stubCartStore) LoadCart(ctx context.Context, userID int) (*models.Cart, error) {
	cart, ok := s.carts[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	return &cp, nil
}

func (s *stubCartStore) CreateCart(ctx context.Context, userID int) (*models.Cart, error) {
	if _, ok := s.carts[userID]; !ok {
		s.carts[userID] = &models.Cart{ID: userID, UserID: userID, Items: []models.CartItem{}}
	}
	return s.LoadCart(ctx, userID)
}

func (s *stubCartStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	for i := range cart.Items {
		if cart.Items[i].ID == 0 {
			s.nextItemID++
			cart.Items[i].ID = s.nextItemID
		}
	}
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	s.carts[cart.UserID] = &cp
	return nil
}

func newCartTestRouter(catalog services.ProductFinder, store services.CartStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the JWT middleware: every request acts as user 1.
	router.Use(func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	})

	ctrl := NewCartController(services.NewCartService(catalog, store, false))
	router.GET("/cart", ctrl.GetCart)
	router.POST("/cart/add", ctrl.AddItem)
	router.PUT("/cart/update/:itemId", ctrl.UpdateItem)
	router.DELETE("/cart/remove/:itemId", ctrl.RemoveItem)
	router.DELETE("/cart/clear", ctrl.ClearCart)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartEndpoints(t *testing.T) {
	catalog := stubCatalog{1: {ID: 1, Name: "Shirt", Price: 10.00, Stock: 50}}
	router := newCartTestRouter(catalog, newStubCartStore())

	t.Run("get creates empty cart", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/cart", "")
		if w.Code != 200 {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Data models.Cart `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response: %v", err)
		}
		if len(resp.Data.Items) != 0 {
			t.Fatalf("expected empty cart, got %+v", resp.Data)
		}
	})

	t.Run("add zero quantity rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/cart/add", `{"product_id":1,"quantity":0}`)
		if w.Code != 400 {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("add unknown product", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/cart/add", `{"product_id":99,"quantity":1}`)
		if w.Code != 404 {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("add and total", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/cart/add", `{"product_id":1,"quantity":2}`)
		if w.Code != 200 {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Data models.Cart `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response: %v", err)
		}
		if len(resp.Data.Items) != 1 || resp.Data.Items[0].Quantity != 2 {
			t.Fatalf("unexpected cart: %+v", resp.Data)
		}
		if resp.Data.Total != 20.00 {
			t.Fatalf("expected total 20.00, got %v", resp.Data.Total)
		}
	})

	t.Run("update then remove", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/cart/update/1", `{"quantity":5}`)
		if w.Code != 200 {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		w = doJSON(t, router, http.MethodDelete, "/cart/remove/1", "")
		if w.Code != 200 {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		w = doJSON(t, router, http.MethodDelete, "/cart/remove/1", "")
		if w.Code != 404 {
			t.Fatalf("second remove: expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("clear", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/cart/clear", "")
		if w.Code != 200 {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("bad item id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/cart/update/abc", `{"quantity":2}`)
		if w.Code != 400 {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
