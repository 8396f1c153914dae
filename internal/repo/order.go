package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hantagam/qrmenu/internal/models"
)

// GetOrders returns orders newest first with items and meals preloaded.
// statuses narrows the result; nil means all.
func (r *GormRepo) GetOrders(ctx context.Context, statuses []string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Preload("Items.Meal").
		Order("created_at DESC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Meal").
		Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder writes the order with its items in one transaction and
// upserts the client record by phone number.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.PhoneNumber != "" {
			client := models.Client{PhoneNumber: order.PhoneNumber}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "phone_number"}},
				DoNothing: true,
			}).Create(&client).Error; err != nil {
				return err
			}
			var stored models.Client
			if err := tx.Where("phone_number = ?", order.PhoneNumber).First(&stored).Error; err == nil {
				order.ClientID = &stored.ID
			}
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	order.Status = status
	if err := r.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ClearOrderHistory deletes delivered and cancelled orders together
// with their items. Returns the number of orders removed.
func (r *GormRepo) ClearOrderHistory(ctx context.Context) (int64, error) {
	var removed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&models.Order{}).
			Where("status IN ?", models.HistoryOrderStatuses).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Delete(&models.OrderItem{}, "order_id IN ?", ids).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, "id IN ?", ids)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}
