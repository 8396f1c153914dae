package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hantagam/qrmenu/internal/models"
)

func createTestCategory(env *testEnv, session *http.Cookie, nameRu string, position int) models.Category {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/category", map[string]any{
		"nameRu":       nameRu,
		"nameTk":       nameRu + " tk",
		"order":        position,
		"restaurantId": 1,
	}, session)
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var cat models.Category
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &cat))
	return cat
}

func createTestMeal(env *testEnv, session *http.Cookie, categoryID uuid.UUID, nameRu string, price float64) models.Meal {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/meals", map[string]any{
		"nameRu":     nameRu,
		"nameTk":     nameRu + " tk",
		"categoryId": categoryID,
		"price":      price,
		"tags":       []string{"new"},
	}, session)
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var meal models.Meal
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &meal))
	return meal
}

func TestCategoryCRUD(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	session := env.login()

	// listed in display order regardless of creation order
	second := createTestCategory(env, session, "Горячее", 2)
	first := createTestCategory(env, session, "Салаты", 1)

	rec := env.doJSON(http.MethodGet, "/api/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 2)
	assert.Equal(t, first.ID, cats[0].ID)
	assert.Equal(t, second.ID, cats[1].ID)

	// partial update touches only the sent fields
	rec = env.doJSON(http.MethodPatch, "/api/category/"+first.ID.String(), map[string]any{
		"nameRu": "Свежие салаты",
	}, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var patched models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.Equal(t, "Свежие салаты", patched.NameRu)
	assert.Equal(t, first.NameTk, patched.NameTk)
	assert.Equal(t, 1, patched.Position)

	rec = env.doJSON(http.MethodDelete, "/api/category/"+first.ID.String(), nil, session)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/category", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Len(t, cats, 1)
}

func TestCategoryValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	session := env.login()

	rec := env.doJSON(http.MethodPost, "/api/category", map[string]any{
		"nameRu": "Без перевода",
	}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodPatch, "/api/category/not-a-uuid", map[string]any{}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodPatch, "/api/category/"+uuid.NewString(), map[string]any{
		"nameRu": "X",
	}, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMealCRUD(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	session := env.login()

	cat := createTestCategory(env, session, "Супы", 1)
	meal := createTestMeal(env, session, cat.ID, "Борщ", 35)

	rec := env.doJSON(http.MethodGet, "/api/meals/"+meal.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Meal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Борщ", got.NameRu)
	assert.Equal(t, []string{"new"}, []string(got.Tags))

	rec = env.doJSON(http.MethodPatch, "/api/meals/"+meal.ID.String(), map[string]any{
		"price": 40.0,
	}, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 40.0, got.Price)
	assert.Equal(t, "Борщ", got.NameRu)

	// filter by category
	other := createTestCategory(env, session, "Десерты", 2)
	createTestMeal(env, session, other.ID, "Чизкейк", 25)

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/api/meals?categoryId=%s", cat.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meals []models.Meal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meals))
	require.Len(t, meals, 1)
	assert.Equal(t, meal.ID, meals[0].ID)

	rec = env.doJSON(http.MethodDelete, "/api/meals/"+meal.ID.String(), nil, session)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.doJSON(http.MethodGet, "/api/meals/"+meal.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMealValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	session := env.login()

	cat := createTestCategory(env, session, "Супы", 1)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing names", map[string]any{"categoryId": cat.ID, "price": 10}, http.StatusBadRequest},
		{"missing category", map[string]any{"nameRu": "X", "nameTk": "X"}, http.StatusBadRequest},
		{"negative price", map[string]any{"nameRu": "X", "nameTk": "X", "categoryId": cat.ID, "price": -1}, http.StatusBadRequest},
		{"unknown category", map[string]any{"nameRu": "X", "nameTk": "X", "categoryId": uuid.New(), "price": 1}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(http.MethodPost, "/api/meals", tt.body, session)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRestaurantMenuLocalized(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	session := env.login()

	cat := createTestCategory(env, session, "Супы", 1)
	createTestMeal(env, session, cat.ID, "Борщ", 35)

	rec := env.doJSON(http.MethodGet, "/api/restaurant/1/categories?lang=ru", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var menu []struct {
		Name  string `json:"name"`
		Meals []struct {
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"meals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Супы", menu[0].Name)
	require.Len(t, menu[0].Meals, 1)
	assert.Equal(t, "Борщ", menu[0].Meals[0].Name)

	rec = env.doJSON(http.MethodGet, "/api/restaurant/1/categories?lang=tk", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Супы tk", menu[0].Name)
}
