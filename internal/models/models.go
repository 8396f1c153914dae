package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID         int        `gorm:"primaryKey"      json:"id"`
	Slug       string     `gorm:"unique;not null" json:"slug"`
	Name       string     `gorm:"not null"        json:"name"`
	Categories []Category `gorm:"foreignKey:RestaurantID" json:"categories,omitempty"`
}

type Category struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NameRu          string    `gorm:"not null"             json:"nameRu"`
	NameTk          string    `gorm:"not null"             json:"nameTk"`
	DescriptionRu   string    `json:"descriptionRu"`
	DescriptionTk   string    `json:"descriptionTk"`
	ImageCard       string    `json:"imageCard"`
	ImageBackground string    `json:"imageBackground"`
	Position        int       `gorm:"not null;column:position" json:"order"`
	Status          bool      `gorm:"default:true"         json:"status"`
	RestaurantID    int       `gorm:"index;not null"       json:"restaurantId"`
	Meals           []Meal    `gorm:"foreignKey:CategoryID" json:"meals,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Meal struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	NameRu        string         `gorm:"not null"             json:"nameRu"`
	NameTk        string         `gorm:"not null"             json:"nameTk"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"categoryId"`
	Price         float64        `gorm:"not null"             json:"price"`
	DescriptionRu string         `json:"descriptionRu"`
	DescriptionTk string         `json:"descriptionTk"`
	Image         string         `json:"image"`
	Tags          pq.StringArray `gorm:"type:text[]"          json:"tags"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Client struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PhoneNumber string    `gorm:"unique;not null"      json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ActiveOrderStatuses are the states shown on the admin live board;
// the rest is history.
var ActiveOrderStatuses = []string{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady,
}

var HistoryOrderStatuses = []string{OrderStatusDelivered, OrderStatusCancelled}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	PhoneNumber string      `gorm:"not null"             json:"phoneNumber"`
	ClientID    *uuid.UUID  `gorm:"type:uuid;index"      json:"clientId"`
	Client      *Client     `json:"client,omitempty"`
	TotalAmount float64     `gorm:"not null"             json:"totalAmount"`
	Status      string      `gorm:"not null;index"       json:"status"`
	Notes       string      `json:"notes"`
	Address     string      `json:"address"`
	Items       []OrderItem `gorm:"foreignKey:OrderID"   json:"items,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	MealID    uuid.UUID `gorm:"type:uuid;not null"   json:"mealId"`
	Meal      *Meal     `json:"meal,omitempty"`
	Amount    int       `gorm:"not null;check:amount>0" json:"amount"`
	Price     float64   `gorm:"not null"             json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
