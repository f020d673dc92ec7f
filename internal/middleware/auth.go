package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sshop-backend/internal/models"
	"sshop-backend/internal/token"
)

// ContextUserKey is where Auth stores the resolved seller for handlers.
const ContextUserKey = "user"

// Auth validates the bearer token on protected routes and resolves it to the
// seller it was issued for, storing the full record in the gin context. A
// token whose seller no longer exists is rejected like any other invalid
// token.
func Auth(db *mongo.Database, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied!"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Println("[AUTH] [ERROR] invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid!"})
			return
		}

		userID, err := token.Verify(parts[1], secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			if errors.Is(err, token.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token has expired!"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid!"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] token references missing user")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid!"})
				return
			}
			log.Println("[AUTH] [ERROR] user lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
