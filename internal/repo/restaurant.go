package repo

import (
	"context"

	"github.com/hantagam/qrmenu/internal/models"
)

func (r *GormRepo) GetRestaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetRestaurantMenu returns the active categories of a restaurant in
// display order with their meals preloaded.
func (r *GormRepo) GetRestaurantMenu(ctx context.Context, restaurantID int) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).
		Preload("Meals").
		Where("restaurant_id = ? AND status = ?", restaurantID, true).
		Order("position ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
