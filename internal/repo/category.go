package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hantagam/qrmenu/internal/models"
)

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory upserts the owning restaurant in the same transaction
// so a category can never point at a missing restaurant.
func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant := models.Restaurant{
			ID:   cat.RestaurantID,
			Slug: uuid.NewString(),
			Name: "",
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&restaurant).Error; err != nil {
			return err
		}
		return tx.Create(cat).Error
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
