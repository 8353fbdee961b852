package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongomigration "roamify/internal/migrations/mongo"
	"roamify/pkg/config"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoURI := os.Getenv(config.EnvMongoURI)
	if mongoURI == "" {
		mongoURI = config.DefaultMongoURI
	}
	dbName := os.Getenv(config.EnvMongoDatabaseName)
	if dbName == "" {
		dbName = config.DefaultMongoDatabaseName
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	fmt.Printf("Connected to %s\n", mongoURI)

	if err := mongomigration.RunMigration(ctx, client, dbName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Migration completed.")
}
