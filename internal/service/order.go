package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/models"
	"github.com/hantagam/qrmenu/internal/repo"
	"github.com/hantagam/qrmenu/internal/transport"
)

const OrderEventsTopic = "order_events"

type OrderService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, OrderEventsTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "error", err)
	}
}

// GetOrders filters by the admin board's status selector: "active",
// "history", "all" or one concrete status. Unknown values fall back to
// all orders, as the original board did.
func (s *OrderService) GetOrders(ctx context.Context, statusFilter string) ([]transport.OrderView, error) {
	var statuses []string
	switch statusFilter {
	case "active":
		statuses = models.ActiveOrderStatuses
	case "history":
		statuses = models.HistoryOrderStatuses
	case "", "all":
	default:
		if models.ValidOrderStatus(statusFilter) {
			statuses = []string{statusFilter}
		}
	}

	orders, err := s.Repo.GetOrders(ctx, statuses)
	if err != nil {
		return nil, err
	}

	views := make([]transport.OrderView, len(orders))
	for i := range orders {
		views[i] = formatOrder(&orders[i])
	}
	return views, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phoneNumber is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		it := req.Items[i]
		if it.MealID == uuid.Nil {
			return nil, fmt.Errorf("%w: mealId required", ErrValidation)
		}
		if it.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be > 0", ErrValidation)
		}

		meal, err := s.Repo.GetMeal(ctx, it.MealID)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown meal %s", ErrValidation, it.MealID)
		}

		// The price is taken from the menu, never from the client.
		items = append(items, models.OrderItem{
			MealID: meal.ID,
			Amount: it.Amount,
			Price:  meal.Price,
		})
		total += meal.Price * float64(it.Amount)
	}

	order := &models.Order{
		PhoneNumber: req.PhoneNumber,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		Notes:       req.Notes,
		Address:     req.Address,
		Items:       items,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.ID.String(), map[string]any{
		"type":        "order_created",
		"orderID":     created.ID,
		"totalAmount": created.TotalAmount,
	})
	return created, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.ID.String(), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return order, nil
}

func (s *OrderService) ClearOrderHistory(ctx context.Context) (int64, error) {
	removed, err := s.Repo.ClearOrderHistory(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.publish(ctx, "history", map[string]any{
			"type":    "orders_cleared",
			"removed": removed,
		})
	}
	return removed, nil
}

func formatOrder(o *models.Order) transport.OrderView {
	items := make([]transport.OrderItemView, len(o.Items))
	var subtotal float64
	for i := range o.Items {
		it := o.Items[i]
		view := transport.OrderItemView{
			ID:       it.ID,
			MealID:   it.MealID,
			Price:    it.Price,
			Quantity: it.Amount,
			Total:    it.Price * float64(it.Amount),
		}
		if it.Meal != nil {
			view.DishName = it.Meal.NameRu
			view.DishNameTk = it.Meal.NameTk
		}
		subtotal += view.Total
		items[i] = view
	}

	customerName := o.PhoneNumber
	if o.Client != nil {
		customerName = o.Client.PhoneNumber
	}

	return transport.OrderView{
		ID:            o.ID,
		CustomerName:  customerName,
		CustomerPhone: o.PhoneNumber,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		Notes:         o.Notes,
		Address:       o.Address,
		Items:         items,
		Subtotal:      subtotal,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
