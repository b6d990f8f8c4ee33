package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tablesideclub/tableside/cmd/utils/internal/seeding"
)

// SeedDemo creates sample active orders so a fresh stack has something on
// the kitchen board. The catalog service must have seeded its menu first.
func SeedDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo seeding process...")

	client, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	ordersDB := client.Database("tableside_orders")
	if err := seedOrdersDemo(ctx, client, ordersDB, logger); err != nil {
		return fmt.Errorf("seed orders demo: %w", err)
	}

	return nil
}

func seedOrdersDemo(ctx context.Context, client *mongo.Client, db *mongo.Database, logger apt.Logger) error {
	// Check if already seeded
	seedsCollection := db.Collection("_seeds")
	count, err := seedsCollection.CountDocuments(ctx, bson.M{"_id": "demo_orders_v1"})
	if err != nil {
		return fmt.Errorf("check seed status: %w", err)
	}

	if count > 0 {
		logger.Info("Order demo seeds already applied, skipping")
		return nil
	}

	if err := seeding.SeedOrders(ctx, client, db); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	_, err = seedsCollection.InsertOne(ctx, bson.M{
		"_id":         "demo_orders_v1",
		"description": "Create demo active orders across a few tables and payment methods",
		"applied_at":  bson.M{"$currentDate": bson.M{"$type": "timestamp"}},
	})
	if err != nil {
		logger.Infof("⚠️  Failed to mark seed as applied: %v", err)
	}

	logger.Info("Order demo seeds applied successfully")
	return nil
}
