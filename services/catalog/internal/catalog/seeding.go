package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds returns all seeds for the Catalog service
func Seeds(db *mongo.Database) []seed.Seed {
	return []seed.Seed{
		{
			ID:          "2026-08-20_default_menu",
			Description: "Load the default Backyards menu",
			Run: func(ctx context.Context) error {
				return seedDefaultMenu(ctx, db)
			},
		},
	}
}

type seedItem struct {
	name        string
	price       int64
	category    string
	description string
}

// Prices are in paise.
var defaultMenu = []seedItem{
	{"Masala Maggie", 8000, "Maggie", "Classic spicy maggie"},
	{"Cheese Corn Maggie", 9500, "Maggie", "Loaded with cheese and corn"},
	{"Chicken Cheese Maggie", 14000, "Maggie", "Non-veg delight with cheese"},
	{"Veg White Sauce Pasta", 18000, "Pasta", "Creamy white sauce pasta with veggies"},
	{"Chicken White Sauce Pasta", 22000, "Pasta", "Creamy white sauce pasta with chicken"},
	{"Veg Sandwich", 9000, "Sandwiches", "Classic vegetable sandwich"},
	{"Bombay Masala Sandwich", 12000, "Sandwiches", "Spicy Bombay style filling"},
	{"Chicken Sandwich", 14000, "Sandwiches", "Loaded with juicy chicken"},
	{"Virgin Mojito", 9000, "Mocktails", "Classic mint and lemon cooler"},
	{"Blue Lagoon", 9000, "Mocktails", "Blue curacao refreshing drink"},
	{"Coffee", 3000, "Hot Beverages", "Hot brewed coffee"},
	{"Lemon Tea", 4000, "Hot Beverages", "Refreshing hot lemon tea"},
	{"Masala Chai", 4900, "Hot Beverages", "Traditional Indian tea"},
	{"Salty Fries", 9000, "Fries", "Classic salted french fries"},
	{"Peri-Peri Fries", 11000, "Fries", "Spicy peri-peri dusted fries"},
	{"Cheese Fries", 13000, "Fries", "Fries topped with melted cheese"},
	{"Classic Burger", 14900, "Food", "Juicy patty with fresh lettuce"},
	{"Cold Coffee", 12900, "Drinks", "Rich and creamy cold brew"},
	{"Chicken Chilly", 22500, "Starters", "Spicy indo-chinese chicken"},
	{"Paneer Chilly", 19000, "Starters", "Spicy indo-chinese paneer"},
}

// seedDefaultMenu upserts the default menu by item name so re-runs and
// manual deletions do not produce duplicates.
func seedDefaultMenu(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("menu_items")
	now := time.Now()

	for _, item := range defaultMenu {
		doc := bson.M{
			"_id":         uuid.New(),
			"name":        item.name,
			"price":       item.price,
			"category":    item.category,
			"description": item.description,
			"created_at":  now,
			"updated_at":  now,
		}

		filter := bson.M{"name": item.name}
		update := bson.M{"$setOnInsert": doc}
		if _, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed menu item %s: %w", item.name, err)
		}
	}

	return nil
}

// SeedingFunc returns a function for running seeds during service startup
func SeedingFunc(appName string, dbFn func() *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Info("Applying catalog service database seeds...")
		db := dbFn()
		tracker := seed.NewMongoTracker(db)
		seeds := Seeds(db)
		if err := seed.Apply(ctx, tracker, seeds, appName); err != nil {
			return fmt.Errorf("apply seeds: %w", err)
		}
		logger.Info("Catalog service database seeds applied successfully")
		return nil
	}
}
