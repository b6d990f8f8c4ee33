package catalog

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// DefaultCategory is assigned when an item is created without a category.
const DefaultCategory = "Others"

// MenuItem is a dish, drink or any orderable product. Prices are in minor
// currency units (paise), so 14900 is 149 rupees.
type MenuItem struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Price       int64     `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

// ResourceType returns the resource type for URL generation
func (m *MenuItem) ResourceType() string {
	return "menu"
}

func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = apt.GenerateNewID()
	}
}

func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Category == "" {
		m.Category = DefaultCategory
	}
}
