package service

import (
	"context"
	"errors"

	"github.com/hantagam/qrmenu/internal/models"
)

// ErrValidation marks bad input; handlers map it to 400. Missing rows
// surface as gorm.ErrRecordNotFound and map to 404.
var ErrValidation = errors.New("validation")

// EventPublisher pushes domain events to the message broker. A nil
// publisher is valid and turns publishing into a no-op.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

// MealIndexer keeps the search index in step with meal writes. A nil
// indexer disables search maintenance.
type MealIndexer interface {
	IndexMeal(ctx context.Context, meal *models.Meal) error
	RemoveMeal(ctx context.Context, id string) error
}
