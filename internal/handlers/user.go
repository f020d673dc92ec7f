package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"sshop-backend/internal/models"
	"sshop-backend/internal/storage"
	"sshop-backend/internal/token"
)

type RegisterRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	PhoneNumber         string `json:"phoneNumber"`
	BrandName           string `json:"brandName"`
	BrandLogo           string `json:"brandLogo"`
	AccountNumber       string `json:"accountNumber"`
	BankName            string `json:"bankName"`
	NameOfAccountHolder string `json:"nameOfAccountHolder"`
	Password            string `json:"password"`
	RetypePassword      string `json:"retypePassword"`
}

// UpdateProfileRequest carries optional replacements for profile fields. A
// nil or empty field keeps the stored value.
type UpdateProfileRequest struct {
	FirstName             *string `json:"firstName"`
	LastName              *string `json:"lastName"`
	PhoneNumber           *string `json:"phoneNumber"`
	AdditionalPhoneNumber *string `json:"additionalPhoneNumber"`
	BrandName             *string `json:"brandName"`
	BrandLogo             *string `json:"brandLogo"`
	AccountNumber         *string `json:"accountNumber"`
	BankName              *string `json:"bankName"`
	NameOfAccountHolder   *string `json:"nameOfAccountHolder"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	RetypePassword  string `json:"retypePassword"`
}

// Register creates a new seller account: validates the submitted fields,
// uploads the brand logo, hashes the password and returns a token with the
// sanitized account projection.
func Register(db *mongo.Database, assets storage.Store, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "POST /api/users")

		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Please enter all asterisked fields!"})
			return
		}

		// brandName and brandLogo are deliberately not part of the required
		// set; a missing logo fails later at the upload step instead.
		req.Email = strings.TrimSpace(req.Email)
		if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
			req.PhoneNumber == "" || req.AccountNumber == "" || req.BankName == "" ||
			req.NameOfAccountHolder == "" || req.Password == "" || req.RetypePassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Please enter all asterisked fields!"})
			return
		}

		if !validPhoneNumber(req.PhoneNumber) {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter a valid phone number!"})
			return
		}

		if !validAccountNumber(req.AccountNumber) {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter a valid account number!"})
			return
		}

		if req.Password != req.RetypePassword {
			c.JSON(http.StatusConflict, gin.H{"msg": "Password does not match!"})
			return
		}

		if len(req.Password) <= 5 {
			c.JSON(http.StatusConflict, gin.H{"msg": "Password should be at least 6 character long!"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": req.Email})
		if err != nil {
			log.Println("[USER] [ERROR] register lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"msg": "User already exist! Please login to your S-Shop seller account!"})
			return
		}

		logo, err := uploadImagePayload(ctx, assets, req.BrandLogo)
		if err != nil {
			log.Println("[USER] [ERROR] register logo upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			log.Println("[USER] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		now := time.Now()
		user := models.User{
			FirstName:           req.FirstName,
			LastName:            req.LastName,
			Email:               req.Email,
			PhoneNumber:         req.PhoneNumber,
			BrandName:           req.BrandName,
			BrandLogo:           logo.URL,
			BrandLogoID:         logo.ID,
			AccountNumber:       req.AccountNumber,
			BankName:            req.BankName,
			NameOfAccountHolder: req.NameOfAccountHolder,
			Password:            hash,
			IsAdmin:             false,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"msg": "User already exist! Please login to your S-Shop seller account!"})
				return
			}
			log.Println("[USER] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)

		signed, err := token.Issue(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[USER] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		log.Println("[USER] [INFO] seller registered:", user.Email)
		c.JSON(http.StatusCreated, gin.H{
			"token": signed,
			"user":  sellerPayload(user),
		})
	}
}

// UpdateProfile overwrites the provided profile fields on the authenticated
// seller, leaving absent or empty fields untouched. A replacement brand logo
// is uploaded before the old asset is deleted; the old-asset delete is
// best-effort and never fails the request.
func UpdateProfile(db *mongo.Database, assets storage.Store, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PUT /api/users")

		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid!"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "An error occured!"})
			return
		}

		applyProfileUpdates(&user, req)

		if !validPhoneNumber(user.PhoneNumber) {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter a valid phone number!"})
			return
		}

		if !validAccountNumber(user.AccountNumber) {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter a valid account number!"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		oldLogoID := ""
		if req.BrandLogo != nil && strings.TrimSpace(*req.BrandLogo) != "" {
			logo, err := uploadImagePayload(ctx, assets, *req.BrandLogo)
			if err != nil {
				log.Println("[USER] [ERROR] profile logo upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
				return
			}
			oldLogoID = user.BrandLogoID
			user.BrandLogo = logo.URL
			user.BrandLogoID = logo.ID
		}

		user.UpdatedAt = time.Now()
		res, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"firstName":             user.FirstName,
				"lastName":              user.LastName,
				"phoneNumber":           user.PhoneNumber,
				"additionalPhoneNumber": user.AdditionalPhoneNumber,
				"brandName":             user.BrandName,
				"brandLogo":             user.BrandLogo,
				"brandLogoId":           user.BrandLogoID,
				"accountNumber":         user.AccountNumber,
				"bankName":              user.BankName,
				"nameOfAccountHolder":   user.NameOfAccountHolder,
				"updatedAt":             user.UpdatedAt,
			},
		})
		if err != nil {
			log.Println("[USER] [ERROR] profile update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Seller does not exist! An error occured!"})
			return
		}

		// The new logo is canonical once the document is saved; a failed
		// cleanup only leaves an orphaned object behind.
		if oldLogoID != "" {
			if err := assets.Delete(ctx, oldLogoID); err != nil {
				log.Println("[USER] [ERROR] old logo delete failed:", err)
			}
		}

		signed, err := token.Issue(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[USER] [ERROR] profile token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		log.Println("[USER] [INFO] seller profile updated:", user.Email)
		c.JSON(http.StatusCreated, gin.H{
			"token": signed,
			"user":  sellerPayload(user),
		})
	}
}

// ChangePassword verifies the current password before hashing and persisting
// the new one, then reissues a token.
func ChangePassword(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "PUT /api/users/passwords")

		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid!"})
			return
		}

		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter all fields!"})
			return
		}

		if req.CurrentPassword == "" || req.NewPassword == "" || req.RetypePassword == "" {
			c.JSON(http.StatusConflict, gin.H{"msg": "Please enter all fields!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			c.JSON(http.StatusConflict, gin.H{"msg": "Invalid current password!"})
			return
		}

		if len(req.NewPassword) <= 5 {
			c.JSON(http.StatusConflict, gin.H{"msg": "New password should be at least 6 character long!"})
			return
		}

		if req.NewPassword != req.RetypePassword {
			c.JSON(http.StatusConflict, gin.H{"msg": "Passwords do not match!"})
			return
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			log.Println("[USER] [ERROR] password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user.UpdatedAt = time.Now()
		res, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"password":  hash,
				"updatedAt": user.UpdatedAt,
			},
		})
		if err != nil {
			log.Println("[USER] [ERROR] password update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Seller does not exist! An error occured!"})
			return
		}

		signed, err := token.Issue(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[USER] [ERROR] password token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "An error occured!"})
			return
		}

		log.Println("[USER] [INFO] seller password changed:", user.Email)
		c.JSON(http.StatusCreated, gin.H{
			"token": signed,
			"user":  sellerPayload(user),
		})
	}
}

func applyProfileUpdates(user *models.User, req UpdateProfileRequest) {
	setIfPresent(&user.FirstName, req.FirstName)
	setIfPresent(&user.LastName, req.LastName)
	setIfPresent(&user.PhoneNumber, req.PhoneNumber)
	setIfPresent(&user.AdditionalPhoneNumber, req.AdditionalPhoneNumber)
	setIfPresent(&user.BrandName, req.BrandName)
	setIfPresent(&user.AccountNumber, req.AccountNumber)
	setIfPresent(&user.BankName, req.BankName)
	setIfPresent(&user.NameOfAccountHolder, req.NameOfAccountHolder)
}

func setIfPresent(dst *string, src *string) {
	if src == nil {
		return
	}
	if value := strings.TrimSpace(*src); value != "" {
		*dst = value
	}
}

func uploadImagePayload(ctx context.Context, assets storage.Store, payload string) (storage.Asset, error) {
	data, contentType, err := storage.DecodeImagePayload(payload)
	if err != nil {
		return storage.Asset{}, err
	}
	return assets.Upload(ctx, data, contentType)
}
