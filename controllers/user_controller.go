package controllers

import (
	"errors"
	"strconv"

	"fashion-shop/models"
	"fashion-shop/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GetAllUsers godoc
// @Summary Get all users
// @Description Get all users with pagination (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := ctrl.users.GetAllUsers(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve users"})
		return
	}

	c.JSON(200, response)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Get a single user (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid user id"})
		return
	}

	user, err := ctrl.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "User retrieved", Data: user})
}

// DeleteUser godoc
// @Summary Delete user
// @Description Delete a user (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid user id"})
		return
	}

	if err := ctrl.users.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "User deleted"})
}
