package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablesideclub/tableside/services/catalog/internal/catalog"
)

// MenuItemRepo implements catalog.MenuItemRepo using MongoDB
type MenuItemRepo struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
	logger     apt.Logger
	config     *apt.Config
}

// NewMenuItemRepo creates a new MongoDB menu item repository
func NewMenuItemRepo(config *apt.Config, logger apt.Logger) *MenuItemRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &MenuItemRepo{
		logger: logger,
		config: config,
	}
}

// Start initializes the MongoDB connection
func (r *MenuItemRepo) Start(ctx context.Context) error {
	mongoURL, _ := r.config.GetString("db.mongo.url")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	dbName, _ := r.config.GetString("db.mongo.name")
	if dbName == "" {
		dbName = "tableside_catalog"
	}

	clientOptions := options.Client().ApplyURI(mongoURL).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)
	r.collection = r.db.Collection("menu_items")

	categoryIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, categoryIndex); err != nil {
		return fmt.Errorf("cannot create category index: %w", err)
	}

	r.logger.Infof("Connected to MongoDB: %s, database: %s, collection: menu_items", mongoURL, dbName)
	return nil
}

// Stop closes the MongoDB connection
func (r *MenuItemRepo) Stop(ctx context.Context) error {
	if r.client != nil {
		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		r.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

// GetDatabase returns the MongoDB database instance
func (r *MenuItemRepo) GetDatabase() *mongo.Database {
	return r.db
}

// Create inserts a new menu item
func (r *MenuItemRepo) Create(ctx context.Context, item *catalog.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item cannot be nil")
	}

	item.EnsureID()

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("could not create menu item: %w", err)
	}
	return nil
}

// Get retrieves a menu item by ID
func (r *MenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	var item catalog.MenuItem

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("could not get menu item: %w", err)
	}
	return &item, nil
}

// List retrieves all menu items, category then name ascending
func (r *MenuItemRepo) List(ctx context.Context) ([]*catalog.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("could not list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*catalog.MenuItem
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not decode menu items: %w", err)
	}
	return result, nil
}

// Delete removes a menu item by ID
func (r *MenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("could not delete menu item: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}
