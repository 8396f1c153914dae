package transport

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateCategoryRequest struct {
	NameRu          string `json:"nameRu"`
	NameTk          string `json:"nameTk"`
	DescriptionRu   string `json:"descriptionRu"`
	DescriptionTk   string `json:"descriptionTk"`
	ImageCard       string `json:"imageCard"`
	ImageBackground string `json:"imageBackground"`
	Position        *int   `json:"order"`
	Status          *bool  `json:"status"`
	RestaurantID    int    `json:"restaurantId"`
}

type PatchCategoryRequest struct {
	NameRu          *string `json:"nameRu"`
	NameTk          *string `json:"nameTk"`
	DescriptionRu   *string `json:"descriptionRu"`
	DescriptionTk   *string `json:"descriptionTk"`
	ImageCard       *string `json:"imageCard"`
	ImageBackground *string `json:"imageBackground"`
	Position        *int    `json:"order"`
	Status          *bool   `json:"status"`
}

type CreateMealRequest struct {
	NameRu        string    `json:"nameRu"`
	NameTk        string    `json:"nameTk"`
	CategoryID    uuid.UUID `json:"categoryId"`
	Price         float64   `json:"price"`
	DescriptionRu string    `json:"descriptionRu"`
	DescriptionTk string    `json:"descriptionTk"`
	Image         string    `json:"image"`
	Tags          []string  `json:"tags"`
}

type PatchMealRequest struct {
	NameRu        *string    `json:"nameRu"`
	NameTk        *string    `json:"nameTk"`
	CategoryID    *uuid.UUID `json:"categoryId"`
	Price         *float64   `json:"price"`
	DescriptionRu *string    `json:"descriptionRu"`
	DescriptionTk *string    `json:"descriptionTk"`
	Image         *string    `json:"image"`
	Tags          []string   `json:"tags"`
}

type CreateOrderItem struct {
	MealID uuid.UUID `json:"mealId"`
	Amount int       `json:"amount"`
	Price  float64   `json:"price"`
}

type CreateOrderRequest struct {
	PhoneNumber string            `json:"phoneNumber"`
	Address     string            `json:"address"`
	Notes       string            `json:"notes"`
	Items       []CreateOrderItem `json:"items"`
}

type PatchOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemView is the shape the admin order board expects: line totals
// precomputed, meal names flattened out of the relation.
type OrderItemView struct {
	ID         uuid.UUID `json:"id"`
	MealID     uuid.UUID `json:"mealId"`
	DishName   string    `json:"dishName"`
	DishNameTk string    `json:"dishNameTk"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
	Total      float64   `json:"total"`
}

type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	TotalAmount   float64         `json:"totalAmount"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	Address       string          `json:"address"`
	Items         []OrderItemView `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LocalizedCategory and LocalizedMeal collapse the ru/tk field pairs to
// a single name/description for the public menu.
type LocalizedMeal struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
}

type LocalizedCategory struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ImageCard       string          `json:"imageCard"`
	ImageBackground string          `json:"imageBackground"`
	Position        int             `json:"order"`
	Meals           []LocalizedMeal `json:"meals"`
}
