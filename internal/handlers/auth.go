package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"sshop-backend/internal/models"
	"sshop-backend/internal/token"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a seller by email and password and returns a fresh
// bearer token with the sanitized account projection.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /api/auth")

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter all fields!"})
			return
		}

		email := strings.TrimSpace(req.Email)
		if email == "" || req.Password == "" {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter all fields!"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusConflict, gin.H{"msg": "Seller does not exist! Please create an account now!"})
				return
			}
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for seller")
			c.JSON(http.StatusConflict, gin.H{"msg": "Invalid password!"})
			return
		}

		signed, err := token.Issue(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		log.Println("[AUTH] [INFO] seller login succeeded:", user.Email)
		c.JSON(http.StatusCreated, gin.H{
			"token": signed,
			"user":  sellerPayload(user),
		})
	}
}
