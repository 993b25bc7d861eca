package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockItem is one size/price entry of a tyre's stock array.
type StockItem struct {
	Size     string  `bson:"size" json:"size"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Tyre is a document of the addtyres collection. Read-only for this service.
type Tyre struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Brand       string             `bson:"brand" json:"brand"`
	Model       string             `bson:"model" json:"model"`
	Type        string             `bson:"type" json:"type"`
	VehicleType string             `bson:"vehicleType" json:"vehicle_type"`
	LoadIndex   int                `bson:"loadIndex" json:"load_index"`
	SpeedRating string             `bson:"speedRating" json:"speed_rating"`
	Warranty    string             `bson:"warranty" json:"warranty"`
	Deleted     bool               `bson:"deleted" json:"deleted"`
	Stock       []StockItem        `bson:"stock" json:"stock"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}

// OrderItem is one line item of a client order. Tyre is a weak reference
// into addtyres, matched by identifier and never dereferenced by ownership.
type OrderItem struct {
	Tyre       primitive.ObjectID `bson:"tyre" json:"tyre"`
	Size       string             `bson:"size" json:"size"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	TotalPrice float64            `bson:"totalPrice,omitempty" json:"total_price,omitempty"`
}

// Order is a document of the clientorders collection. Read-only for this service.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderItems []OrderItem        `bson:"orderItems" json:"order_items"`
	TotalPrice float64            `bson:"totalPrice" json:"total_price"`
	Status     string             `bson:"status" json:"status"`
	ClientType string             `bson:"clientType" json:"client_type"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}

// DateWindow bounds an order query by creation time, both ends inclusive.
type DateWindow struct {
	Start time.Time
	End   time.Time
}
