package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	sellerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "sellerId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("sellerId_createdAt"),
	}

	log.Println("EnsureProductIndexes: creating sellerId_createdAt index")
	_, err := indexes.CreateOne(ctx, sellerIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: sellerId index error:", err)
		return err
	}
	return nil
}
