package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sshop-backend/internal/models"
	"sshop-backend/internal/storage"
)

type CreateProductRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	ProductImage string  `json:"productImage"`
}

// UpdateProductRequest keeps name and price mandatory; the remaining fields
// retain the stored value when absent or empty.
type UpdateProductRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  *string `json:"description"`
	Brand        *string `json:"brand"`
	Category     *string `json:"category"`
	ProductImage *string `json:"productImage"`
}

// GetProducts lists the caller's products, newest first. An optional keyword
// matches case-insensitively against name, image URL, description, brand or
// category; products of other sellers never appear regardless of keyword.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		user, ok := currentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Token is not valid!")
			return
		}

		filter := keywordFilter(user.ID, c.Query("keyword"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GetProduct fetches a single product by id. Ownership is deliberately not
// checked here, matching the listing UI which may resolve any known id.
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found! An error occured!")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Product not found! An error occured!")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// CreateProduct uploads the product image and persists a new product owned by
// the caller.
func CreateProduct(db *mongo.Database, assets storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		user, ok := currentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Token is not valid!")
			return
		}

		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusConflict, route, "Please fill the asterisked fields!")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Price <= 0 {
			respondWithError(c, http.StatusConflict, route, "Please fill the asterisked fields!")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		image, err := uploadImagePayload(ctx, assets, req.ProductImage)
		if err != nil {
			log.Printf("[%s] image upload failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}

		product := models.Product{
			Name:           req.Name,
			Price:          req.Price,
			Description:    req.Description,
			Brand:          req.Brand,
			Category:       req.Category,
			ProductImage:   image.URL,
			ProductImageID: image.ID,
			SellerID:       user.ID,
			CreatedAt:      time.Now(),
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct overwrites the provided fields on a product. A replacement
// image is uploaded before the old asset is deleted (best-effort). The seller
// id is re-asserted from the caller on every update.
func UpdateProduct(db *mongo.Database, assets storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"
		defer handlePanic(c, route)

		user, ok := currentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Token is not valid!")
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found! An error occured!")
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Please fill the asterisked fields!")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "Please fill the asterisked fields!")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "Product not found! An error occured!")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}

		oldImageID := ""
		if req.ProductImage != nil && strings.TrimSpace(*req.ProductImage) != "" {
			image, err := uploadImagePayload(ctx, assets, *req.ProductImage)
			if err != nil {
				log.Printf("[%s] image upload failed: %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
				return
			}
			oldImageID = product.ProductImageID
			product.ProductImage = image.URL
			product.ProductImageID = image.ID
		}

		product.Name = req.Name
		product.Price = req.Price
		setIfPresent(&product.Description, req.Description)
		setIfPresent(&product.Brand, req.Brand)
		setIfPresent(&product.Category, req.Category)
		product.SellerID = user.ID

		if _, err := db.Collection("products").ReplaceOne(ctx, bson.M{"_id": productID}, product); err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}

		if oldImageID != "" {
			if err := assets.Delete(ctx, oldImageID); err != nil {
				log.Printf("[%s] old image delete failed: %v", route, err)
			}
		}

		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct removes a product owned by the caller, releasing the stored
// image first when the product has one.
func DeleteProduct(db *mongo.Database, assets storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"
		defer handlePanic(c, route)

		user, ok := currentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "Token is not valid!")
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Product not found! An error occured!")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusBadRequest, route, "Product not found! An error occured!")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "An error occured!")
			return
		}

		if err := releaseOwnedProduct(ctx, assets, product, user.ID); err != nil {
			if errors.Is(err, errNotProductOwner) {
				respondWithError(c, http.StatusBadRequest, route, "An error occured! Authorization denied!")
				return
			}
			log.Printf("[%s] image delete failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "An error occured! Product not deleted!")
			return
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID}); err != nil {
			log.Printf("[%s] delete failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "An error occured! Product not deleted!")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

var errNotProductOwner = errors.New("caller does not own the product")

// releaseOwnedProduct enforces the ownership check and releases the stored
// image ahead of removing the document. A product without an uploaded image
// skips the asset-store call entirely; a foreign seller leaves both the
// product and its asset untouched.
func releaseOwnedProduct(ctx context.Context, assets storage.Store, product models.Product, sellerID primitive.ObjectID) error {
	if product.SellerID != sellerID {
		return errNotProductOwner
	}

	if product.ProductImageID == "" {
		return nil
	}

	return assets.Delete(ctx, product.ProductImageID)
}

func keywordFilter(sellerID primitive.ObjectID, keyword string) bson.M {
	filter := bson.M{"sellerId": sellerID}

	if keyword = strings.TrimSpace(keyword); keyword != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": keyword, "$options": "i"}},
			{"productImage": bson.M{"$regex": keyword, "$options": "i"}},
			{"description": bson.M{"$regex": keyword, "$options": "i"}},
			{"brand": bson.M{"$regex": keyword, "$options": "i"}},
			{"category": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}

	return filter
}
