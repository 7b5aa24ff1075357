package controllers

import (
	"errors"

	"fashion-shop/models"
	"fashion-shop/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	result, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Registration failed"})
		return
	}

	c.JSON(201, models.Response{Success: true, Message: "Registration successful", Data: result})
}

// Login godoc
// @Summary User login
// @Description Login with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(401, models.ErrorResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Login successful", Data: result})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get current user profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := ctrl.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Profile retrieved", Data: user})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update user profile information
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Update Request"
// @Success 200 {object} models.Response
// @Router /auth/profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	user, err := ctrl.auth.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
		default:
			c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
		}
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Profile updated", Data: user})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change user password
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password Request"
// @Success 200 {object} models.Response
// @Router /auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request"})
		return
	}

	if err := ctrl.auth.ChangePassword(c.Request.Context(), userID, req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Password changed"})
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Delete the authenticated user's account
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/profile [delete]
func (ctrl *AuthController) DeleteAccount(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := ctrl.auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Account deleted"})
}
