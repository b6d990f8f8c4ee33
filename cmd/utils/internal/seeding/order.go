package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedOrders creates a few active orders priced against the seeded menu.
// Item ids are looked up by name in the catalog database so the kitchen
// board resolves proper dish names.
func SeedOrders(ctx context.Context, client *mongo.Client, db *mongo.Database) error {
	ordersCollection := db.Collection("orders")

	catalogDB := client.Database("tableside_catalog")
	menuCollection := catalogDB.Collection("menu_items")

	cursor, err := menuCollection.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("cannot fetch menu items: %w", err)
	}
	var menu []struct {
		ID    uuid.UUID `bson:"_id"`
		Name  string    `bson:"name"`
		Price int64     `bson:"price"`
	}
	if err := cursor.All(ctx, &menu); err != nil {
		return fmt.Errorf("cannot decode menu items: %w", err)
	}
	cursor.Close(ctx)

	if len(menu) < 3 {
		return fmt.Errorf("need at least 3 menu items for demo data (found %d), seed the catalog first", len(menu))
	}

	prices := make(map[string]int64, len(menu))
	idsByName := make(map[string]string, len(menu))
	for _, item := range menu {
		prices[item.ID.String()] = item.Price
		idsByName[item.Name] = item.ID.String()
	}

	pick := func(names ...string) map[string]int {
		items := make(map[string]int)
		for i, name := range names {
			id, found := idsByName[name]
			if !found {
				// Fall back to whatever the catalog has
				id = menu[i%len(menu)].ID.String()
			}
			items[id]++
		}
		return items
	}

	total := func(items map[string]int) int64 {
		var sum int64
		for id, qty := range items {
			sum += prices[id] * int64(qty)
		}
		return sum
	}

	now := time.Now()

	// Demo Scenario 1: Table 2 - chai and snacks, paid by QR
	order1Items := pick("Masala Chai", "Masala Chai", "Salty Fries")
	// Demo Scenario 2: Table 5 - a bigger table settling in cash
	order2Items := pick("Classic Burger", "Cold Coffee", "Paneer Chilly", "Masala Chai")
	// Demo Scenario 3: walk-in without a scanned code
	order3Items := pick("Cold Coffee")

	demoOrders := []bson.M{
		{
			"_id":            uuid.New(),
			"table_number":   "2",
			"items":          order1Items,
			"total_amount":   total(order1Items),
			"payment_method": "scan_to_pay",
			"created_at":     now.Add(-12 * time.Minute),
			"demo":           true,
		},
		{
			"_id":            uuid.New(),
			"table_number":   "5",
			"items":          order2Items,
			"total_amount":   total(order2Items),
			"payment_method": "cash_on_table",
			"created_at":     now.Add(-7 * time.Minute),
			"demo":           true,
		},
		{
			"_id":            uuid.New(),
			"table_number":   "Unknown",
			"items":          order3Items,
			"total_amount":   total(order3Items),
			"payment_method": "card",
			"created_at":     now.Add(-2 * time.Minute),
			"demo":           true,
		},
	}

	for _, order := range demoOrders {
		_, err := ordersCollection.UpdateOne(
			ctx,
			bson.M{"_id": order["_id"]},
			bson.M{"$setOnInsert": order},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("cannot create demo order for table %v: %w", order["table_number"], err)
		}
	}

	return nil
}
