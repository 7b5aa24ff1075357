package controllers

import (
	"errors"
	"math"
	"strconv"

	"fashion-shop/models"
	"fashion-shop/repositories"
	"fashion-shop/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders    *services.OrderService
	orderRepo *repositories.OrderRepository
}

func NewOrderController(orders *services.OrderService, orderRepo *repositories.OrderRepository) *OrderController {
	return &OrderController{orders: orders, orderRepo: orderRepo}
}

// CreateOrder godoc
// @Summary Create order
// @Description Place an order from a checkout snapshot
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	email := c.GetString("user_email")

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	order, err := ctrl.orders.CreateOrder(c.Request.Context(), userID, email, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrInvalidOrderItem),
			errors.Is(err, services.ErrInvalidTotal):
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
		default:
			c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
		}
		return
	}

	c.JSON(201, models.Response{Success: true, Message: "Order created", Data: order})
}

// GetOrders godoc
// @Summary List orders
// @Description List the caller's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID := c.GetInt("user_id")

	orders, err := ctrl.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Orders retrieved", Data: orders})
}

// GetAllOrders godoc
// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, total, err := ctrl.orderRepo.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve orders"})
		return
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
