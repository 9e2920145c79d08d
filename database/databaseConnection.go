package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func DBinstance() *mongo.Client {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	MongoDb := os.Getenv("MONGODB_URL")
	if MongoDb == "" {
		MongoDb = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(MongoDb))
	if err != nil {
		log.Fatal(err)
	}

	return client
}

var Client *mongo.Client = DBinstance()

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "quizify"
	}
	return client.Database(databaseName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the data model relies on:
// quiz titles, user emails, and one results document per user.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		keys       bson.D
	}{
		{"quiz", bson.D{{Key: "title", Value: 1}}},
		{"user", bson.D{{Key: "email", Value: 1}}},
		{"results", bson.D{{Key: "userId", Value: 1}}},
	}

	for _, idx := range indexes {
		_, err := OpenCollection(client, idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: unique,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
