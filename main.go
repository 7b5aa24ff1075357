package main

import (
	"log"
	"os"

	"fashion-shop/config"
	_ "fashion-shop/docs"
	"fashion-shop/middleware"
	"fashion-shop/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDB(db)

	cache := config.ConnectRedis(cfg)
	defer config.CloseRedis(cache)

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, cfg, db, cache)

	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", cfg.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
