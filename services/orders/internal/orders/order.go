package orders

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// UnknownTable labels orders whose entry link carried no table parameter.
const UnknownTable = "Unknown"

// Order is a submitted diner order. Orders are write-once: created on
// checkout settlement, removed when kitchen staff mark them ready. There is
// no update-in-place and no history after removal.
type Order struct {
	ID            uuid.UUID      `json:"id" bson:"_id"`
	TableNumber   string         `json:"table_number" bson:"table_number"`
	Items         map[string]int `json:"items" bson:"items"`
	TotalAmount   int64          `json:"total_amount" bson:"total_amount"`
	PaymentMethod string         `json:"payment_method" bson:"payment_method"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "orders"
}

func NewOrder() *Order {
	return &Order{
		ID:    apt.GenerateNewID(),
		Items: make(map[string]int),
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	if o.TableNumber == "" {
		o.TableNumber = UnknownTable
	}
}
