package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Price          float64            `bson:"price" json:"price"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Brand          string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	ProductImage   string             `bson:"productImage" json:"productImage"`
	ProductImageID string             `bson:"productImageId" json:"productImageId"`
	SellerID       primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
