package models

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,min=3"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email" binding:"omitempty,email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Quantity carries no binding rule on purpose: zero and negative values must
// reach the cart service so it can answer with its own validation error.
type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" form:"name" binding:"required"`
	Description string   `json:"description" form:"description" binding:"required"`
	Price       float64  `json:"price" form:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" form:"stock" binding:"gte=0"`
	Category    string   `json:"category" form:"category"`
	SubCategory string   `json:"sub_category" form:"sub_category"`
	Sizes       []string `json:"sizes" form:"sizes"`
	Bestseller  bool     `json:"bestseller" form:"bestseller"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name" form:"name"`
	Description string   `json:"description" form:"description"`
	Price       float64  `json:"price" form:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" form:"stock" binding:"omitempty,gte=0"`
	Category    string   `json:"category" form:"category"`
	SubCategory string   `json:"sub_category" form:"sub_category"`
	Sizes       []string `json:"sizes" form:"sizes"`
	Bestseller  *bool    `json:"bestseller" form:"bestseller"`
}

type OrderItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Products []OrderItemRequest `json:"products" binding:"required,dive"`
	Total    float64            `json:"total" binding:"required,gt=0"`
}
