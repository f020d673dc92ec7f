package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"sshop-backend/internal/middleware"
	"sshop-backend/internal/models"
)

// bcrypt work factor, kept high enough to resist offline brute force.
const passwordHashCost = 14

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"msg": message})
}

func currentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validPhoneNumber(value string) bool {
	return len(value) == 11 && value[0] == '0'
}

func validAccountNumber(value string) bool {
	return len(value) == 10
}

// sellerPayload is the sanitized seller projection returned next to a token.
// It never carries the password hash.
func sellerPayload(user models.User) gin.H {
	return gin.H{
		"id":                    user.ID.Hex(),
		"firstName":             user.FirstName,
		"lastName":              user.LastName,
		"email":                 user.Email,
		"phoneNumber":           user.PhoneNumber,
		"additionalPhoneNumber": user.AdditionalPhoneNumber,
		"isAdmin":               user.IsAdmin,
		"brandName":             user.BrandName,
		"brandLogo":             user.BrandLogo,
		"brandLogoId":           user.BrandLogoID,
		"accountNumber":         user.AccountNumber,
		"bankName":              user.BankName,
		"nameOfAccountHolder":   user.NameOfAccountHolder,
	}
}
