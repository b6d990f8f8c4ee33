package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
)

// ClearDemo removes demo orders and the seed marker so seed-demo can be
// applied again.
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Clearing demo data...")

	client, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database("tableside_orders")

	result, err := db.Collection("orders").DeleteMany(ctx, bson.M{"demo": true})
	if err != nil {
		return fmt.Errorf("delete demo orders: %w", err)
	}
	logger.Info("Demo orders removed", "count", result.DeletedCount)

	if _, err := db.Collection("_seeds").DeleteOne(ctx, bson.M{"_id": "demo_orders_v1"}); err != nil {
		logger.Infof("⚠️  Failed to remove seed marker: %v", err)
	}

	return nil
}
