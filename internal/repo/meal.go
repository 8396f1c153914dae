package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hantagam/qrmenu/internal/models"
)

func (r *GormRepo) GetMeal(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *GormRepo) GetMeals(ctx context.Context, categoryID *uuid.UUID) ([]models.Meal, error) {
	q := r.DB.WithContext(ctx).Order("created_at ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var items []models.Meal
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := r.DB.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

func (r *GormRepo) SaveMeal(ctx context.Context, meal *models.Meal) error {
	return r.DB.WithContext(ctx).Save(meal).Error
}

func (r *GormRepo) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Meal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
