package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/models"
	"github.com/hantagam/qrmenu/internal/repo"
	"github.com/hantagam/qrmenu/internal/transport"
)

const MenuEventsTopic = "menu_events"

// MenuService owns category and meal content. Admin mutations publish
// menu_events and keep the meal search index current.
type MenuService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
	Indexer  MealIndexer
}

func (s *MenuService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, MenuEventsTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("menu_event_publish_failed", "error", err)
	}
}

func (s *MenuService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *MenuService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.NameRu == "" || req.NameTk == "" || req.Position == nil || req.RestaurantID == 0 {
		return nil, fmt.Errorf("%w: nameRu, nameTk, order and restaurantId are required", ErrValidation)
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}

	cat := &models.Category{
		NameRu:          req.NameRu,
		NameTk:          req.NameTk,
		DescriptionRu:   req.DescriptionRu,
		DescriptionTk:   req.DescriptionTk,
		ImageCard:       req.ImageCard,
		ImageBackground: req.ImageBackground,
		Position:        *req.Position,
		Status:          status,
		RestaurantID:    req.RestaurantID,
	}

	created, err := s.Repo.CreateCategory(ctx, cat)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.ID.String(), map[string]any{
		"type":       "category_created",
		"categoryID": created.ID,
		"nameRu":     created.NameRu,
	})
	return created, nil
}

func (s *MenuService) PatchCategory(ctx context.Context, id uuid.UUID, req transport.PatchCategoryRequest) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NameRu != nil {
		cat.NameRu = *req.NameRu
	}
	if req.NameTk != nil {
		cat.NameTk = *req.NameTk
	}
	if req.DescriptionRu != nil {
		cat.DescriptionRu = *req.DescriptionRu
	}
	if req.DescriptionTk != nil {
		cat.DescriptionTk = *req.DescriptionTk
	}
	if req.ImageCard != nil {
		cat.ImageCard = *req.ImageCard
	}
	if req.ImageBackground != nil {
		cat.ImageBackground = *req.ImageBackground
	}
	if req.Position != nil {
		cat.Position = *req.Position
	}
	if req.Status != nil {
		cat.Status = *req.Status
	}

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}

	s.publish(ctx, cat.ID.String(), map[string]any{
		"type":       "category_updated",
		"categoryID": cat.ID,
	})
	return cat, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id.String(), map[string]any{
		"type":       "category_deleted",
		"categoryID": id,
	})
	return nil
}

func (s *MenuService) GetMeal(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	return s.Repo.GetMeal(ctx, id)
}

func (s *MenuService) GetMeals(ctx context.Context, categoryID *uuid.UUID) ([]models.Meal, error) {
	return s.Repo.GetMeals(ctx, categoryID)
}

func (s *MenuService) CreateMeal(ctx context.Context, req transport.CreateMealRequest) (*models.Meal, error) {
	if req.NameRu == "" || req.NameTk == "" {
		return nil, fmt.Errorf("%w: nameRu and nameTk are required", ErrValidation)
	}
	if req.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: categoryId is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	meal := &models.Meal{
		NameRu:        req.NameRu,
		NameTk:        req.NameTk,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DescriptionRu: req.DescriptionRu,
		DescriptionTk: req.DescriptionTk,
		Image:         req.Image,
		Tags:          pq.StringArray(req.Tags),
	}

	created, err := s.Repo.CreateMeal(ctx, meal)
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	s.publish(ctx, created.ID.String(), map[string]any{
		"type":   "meal_created",
		"mealID": created.ID,
		"nameRu": created.NameRu,
	})
	return created, nil
}

func (s *MenuService) PatchMeal(ctx context.Context, id uuid.UUID, req transport.PatchMealRequest) (*models.Meal, error) {
	meal, err := s.Repo.GetMeal(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NameRu != nil {
		meal.NameRu = *req.NameRu
	}
	if req.NameTk != nil {
		meal.NameTk = *req.NameTk
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		meal.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		meal.Price = *req.Price
	}
	if req.DescriptionRu != nil {
		meal.DescriptionRu = *req.DescriptionRu
	}
	if req.DescriptionTk != nil {
		meal.DescriptionTk = *req.DescriptionTk
	}
	if req.Image != nil {
		meal.Image = *req.Image
	}
	if req.Tags != nil {
		meal.Tags = pq.StringArray(req.Tags)
	}

	if err := s.Repo.SaveMeal(ctx, meal); err != nil {
		return nil, err
	}

	s.index(ctx, meal)
	s.publish(ctx, meal.ID.String(), map[string]any{
		"type":   "meal_updated",
		"mealID": meal.ID,
	})
	return meal, nil
}

func (s *MenuService) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteMeal(ctx, id); err != nil {
		return err
	}
	if s.Indexer != nil {
		if err := s.Indexer.RemoveMeal(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("meal_index_remove_failed", "error", err)
		}
	}
	s.publish(ctx, id.String(), map[string]any{
		"type":   "meal_deleted",
		"mealID": id,
	})
	return nil
}

func (s *MenuService) index(ctx context.Context, meal *models.Meal) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexMeal(ctx, meal); err != nil {
		logging.FromContext(ctx).Warn("meal_index_failed", "mealID", meal.ID, "error", err)
	}
}
