package routes

import (
	"log"

	"fashion-shop/config"
	"fashion-shop/controllers"
	"fashion-shop/middleware"
	"fashion-shop/repositories"
	"fashion-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, cfg *config.Config, db *pgxpool.Pool, cache *redis.Client) {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	var mailer services.Mailer
	if emailSvc, err := services.NewEmailService(cfg); err == nil {
		mailer = emailSvc
	} else {
		log.Println("Order confirmation emails disabled:", err)
	}

	cloud, err := services.NewCloudinaryService()
	if err != nil {
		log.Println("Cloudinary disabled, using local uploads:", err)
	}

	authSvc := services.NewAuthService(userRepo, cfg)
	userSvc := services.NewUserService(userRepo)
	productSvc := services.NewProductService(productRepo)
	cartSvc := services.NewCartService(productRepo, cartRepo, cfg.EnforceStockLimit)
	orderSvc := services.NewOrderService(orderRepo, mailer)

	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	productCtrl := controllers.NewProductController(productSvc, cache, cloud, cfg)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, orderRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.DELETE("/auth/profile", authCtrl.DeleteAccount)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/add", cartCtrl.AddItem)
		auth.PUT("/cart/update/:itemId", cartCtrl.UpdateItem)
		auth.DELETE("/cart/remove/:itemId", cartCtrl.RemoveItem)
		auth.DELETE("/cart/clear", cartCtrl.ClearCart)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetOrders)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/users/:id", userCtrl.GetUserByID)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/orders", orderCtrl.GetAllOrders)
	}

	router.Static("/uploads", "./uploads")
}
