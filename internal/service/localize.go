package service

import (
	"github.com/hantagam/qrmenu/internal/models"
	"github.com/hantagam/qrmenu/internal/transport"
)

// The menu is bilingual: every category and meal carries Russian and
// Turkmen fields, and the public endpoints collapse them by ?lang=.
const (
	LangRu = "ru"
	LangTk = "tk"
)

func NormalizeLang(lang string) string {
	if lang == LangTk {
		return LangTk
	}
	return LangRu
}

func LocalizeMeal(m *models.Meal, lang string) transport.LocalizedMeal {
	name, desc := m.NameRu, m.DescriptionRu
	if lang == LangTk {
		name, desc = m.NameTk, m.DescriptionTk
	}
	return transport.LocalizedMeal{
		ID:          m.ID,
		Name:        name,
		CategoryID:  m.CategoryID,
		Price:       m.Price,
		Description: desc,
		Image:       m.Image,
		Tags:        m.Tags,
	}
}

func LocalizeCategory(c *models.Category, lang string) transport.LocalizedCategory {
	name, desc := c.NameRu, c.DescriptionRu
	if lang == LangTk {
		name, desc = c.NameTk, c.DescriptionTk
	}
	meals := make([]transport.LocalizedMeal, len(c.Meals))
	for i := range c.Meals {
		meals[i] = LocalizeMeal(&c.Meals[i], lang)
	}
	return transport.LocalizedCategory{
		ID:              c.ID,
		Name:            name,
		Description:     desc,
		ImageCard:       c.ImageCard,
		ImageBackground: c.ImageBackground,
		Position:        c.Position,
		Meals:           meals,
	}
}
