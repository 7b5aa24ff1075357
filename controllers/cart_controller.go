package controllers

import (
	"errors"
	"strconv"

	"fashion-shop/models"
	"fashion-shop/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func (ctrl *CartController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInsufficientStock):
		c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrItemNotFound):
		c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
	default:
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
	}
}

// GetCart godoc
// @Summary Get cart
// @Description Get the caller's cart, creating an empty one on first access
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.carts.GetOrCreateCart(c.Request.Context(), userID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Cart retrieved", Data: cart})
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a product to the cart; quantities merge for an existing line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Add Item Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/add [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	cart, err := ctrl.carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Item added to cart", Data: cart})
}

// UpdateItem godoc
// @Summary Update cart item
// @Description Overwrite the quantity of a cart item
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param itemId path int true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "Update Item Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/update/{itemId} [put]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid item id"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	cart, err := ctrl.carts.UpdateItem(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Cart item updated", Data: cart})
}

// RemoveItem godoc
// @Summary Remove cart item
// @Description Remove one item from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param itemId path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/remove/{itemId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid item id"})
		return
	}

	cart, err := ctrl.carts.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Item removed from cart", Data: cart})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Remove all items from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/clear [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.carts.ClearCart(c.Request.Context(), userID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Cart cleared", Data: cart})
}
