package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sshop-backend/internal/config"
	"sshop-backend/internal/database"
	"sshop-backend/internal/handlers"
	"sshop-backend/internal/middleware"
	"sshop-backend/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}

	assets, err := storage.NewMinioStore(
		config.AppEnv.S3Endpoint,
		config.AppEnv.S3AccessKey,
		config.AppEnv.S3SecretKey,
		config.AppEnv.S3Bucket,
		config.AppEnv.S3UseSSL,
	)
	if err != nil {
		log.Fatal(err)
	}

	secret := config.AppEnv.JWTSecret
	ttl := config.AppEnv.AccessTokenTTL

	r := gin.Default()
	r.Use(cors.Default())

	r.POST("/api/auth", handlers.Login(db, secret, ttl))
	r.POST("/api/users", handlers.Register(db, assets, secret, ttl))

	users := r.Group("/api/users")
	users.Use(middleware.Auth(db, secret))
	{
		users.PUT("", handlers.UpdateProfile(db, assets, secret, ttl))
		users.PUT("/passwords", handlers.ChangePassword(db, secret, ttl))
	}

	products := r.Group("/api/products")
	products.Use(middleware.Auth(db, secret))
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/:id", handlers.GetProduct(db))
		products.POST("", handlers.CreateProduct(db, assets))
		products.PUT("/:id", handlers.UpdateProduct(db, assets))
		products.DELETE("/:id", handlers.DeleteProduct(db, assets))
	}

	r.Run(":" + config.AppEnv.Port)
}
