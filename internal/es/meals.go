package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/hantagam/qrmenu/internal/models"
)

const MealIndex = "meals"

// MealSearch wraps the elasticsearch client for the meal index. It
// satisfies service.MealIndexer.
type MealSearch struct {
	Client *elasticsearch.Client
	Index  string
}

func NewMealSearch(client *elasticsearch.Client) *MealSearch {
	return &MealSearch{Client: client, Index: MealIndex}
}

func (s *MealSearch) IndexMeal(ctx context.Context, meal *models.Meal) error {
	data, err := json.Marshal(meal)
	if err != nil {
		return fmt.Errorf("es: marshal meal: %w", err)
	}

	res, err := s.Client.Index(
		s.Index,
		bytes.NewReader(data),
		s.Client.Index.WithDocumentID(meal.ID.String()),
		s.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index meal: %s", res.Status())
	}
	return nil
}

func (s *MealSearch) RemoveMeal(ctx context.Context, id string) error {
	res, err := s.Client.Delete(
		s.Index,
		id,
		s.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	// 404 is fine, the meal was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete meal: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over the bilingual name and
// description fields, names weighted above descriptions.
func (s *MealSearch) Search(ctx context.Context, query string, from, size int) (int64, []models.Meal, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"nameRu^2", "nameTk^2", "descriptionRu", "descriptionTk"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("es: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Meal `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	meals := make([]models.Meal, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		meals[i] = hit.Source
	}
	return r.Hits.Total.Value, meals, nil
}
