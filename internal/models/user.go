package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a seller account. Every registered user sells under a single brand;
// the password field only ever holds the bcrypt hash.
type User struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName             string             `bson:"firstName" json:"firstName"`
	LastName              string             `bson:"lastName" json:"lastName"`
	Email                 string             `bson:"email" json:"email"`
	PhoneNumber           string             `bson:"phoneNumber" json:"phoneNumber"`
	AdditionalPhoneNumber string             `bson:"additionalPhoneNumber,omitempty" json:"additionalPhoneNumber,omitempty"`
	BrandName             string             `bson:"brandName" json:"brandName"`
	BrandLogo             string             `bson:"brandLogo" json:"brandLogo"`
	BrandLogoID           string             `bson:"brandLogoId" json:"brandLogoId"`
	AccountNumber         string             `bson:"accountNumber" json:"accountNumber"`
	BankName              string             `bson:"bankName" json:"bankName"`
	NameOfAccountHolder   string             `bson:"nameOfAccountHolder" json:"nameOfAccountHolder"`
	Password              string             `bson:"password" json:"-"`
	IsAdmin               bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}
