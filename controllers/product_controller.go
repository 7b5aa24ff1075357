package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fashion-shop/config"
	"fashion-shop/models"
	"fashion-shop/services"
	"fashion-shop/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type ProductController struct {
	products *services.ProductService
	cache    *redis.Client
	cloud    *services.CloudinaryService
	cfg      *config.Config
}

func NewProductController(products *services.ProductService, cache *redis.Client, cloud *services.CloudinaryService, cfg *config.Config) *ProductController {
	return &ProductController{products: products, cache: cache, cloud: cloud, cfg: cfg}
}

func productCacheKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func (ctrl *ProductController) invalidateProductCache() {
	if ctrl.cache == nil {
		return
	}
	ctx := context.Background()
	iter := ctrl.cache.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		ctrl.cache.Del(ctx, iter.Val())
	}
}

// uploadImage stores an uploaded product image on cloudinary when configured,
// or on local disk otherwise, returning the public URL/path.
func (ctrl *ProductController) uploadImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// no image attached
		return "", nil
	}

	if ctrl.cloud != nil {
		if err := ctrl.cloud.ValidateImageFile(file); err != nil {
			return "", err
		}
		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()
		url, _, err := ctrl.cloud.UploadImage(c.Request.Context(), src, file.Filename, "products")
		return url, err
	}

	return utils.UploadFile(c, file, ctrl.cfg.UploadDir, "products", ctrl.cfg.MaxUploadSize)
}

// GetAllProducts godoc
// @Summary Get all products
// @Description Get paginated list of products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	cacheKey := productCacheKey(page, limit)
	ctx := c.Request.Context()

	if ctrl.cache != nil {
		cached, err := ctrl.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	response, err := ctrl.products.GetAllProducts(ctx, page, limit)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve products"})
		return
	}

	if ctrl.cache != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			ctrl.cache.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(200, response)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get a single product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	product, err := ctrl.products.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Internal server error"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param price formData number true "Price"
// @Param stock formData int true "Stock"
// @Param image formData file false "Product image"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	imageURL, err := ctrl.uploadImage(c)
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	product, err := ctrl.products.CreateProduct(c.Request.Context(), req, imageURL)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to create product"})
		return
	}

	ctrl.invalidateProductCache()

	c.JSON(201, models.Response{Success: true, Message: "Product created", Data: product})
}

// UpdateProduct godoc
// @Summary Update product
// @Description Update an existing product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	imageURL, err := ctrl.uploadImage(c)
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	product, err := ctrl.products.UpdateProduct(c.Request.Context(), id, req, imageURL)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to update product"})
		return
	}

	ctrl.invalidateProductCache()

	c.JSON(200, models.Response{Success: true, Message: "Product updated", Data: product})
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Delete a product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	if err := ctrl.products.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to delete product"})
		return
	}

	ctrl.invalidateProductCache()

	c.JSON(200, models.Response{Success: true, Message: "Product deleted"})
}
