package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/id"
)

// categorySeed describes one default checklist category.
type categorySeed struct {
	ID        string
	Name      string
	Icon      string
	SortOrder int
}

// defaultCategories is the fixed category set every fresh database starts
// with. IDs are stable words, not generated, so recipe-derived items can
// target the food category without a lookup.
var defaultCategories = []categorySeed{
	{ID: "food", Name: "食材", Icon: "🍖", SortOrder: 0},
	{ID: "cooking", Name: "調理器具", Icon: "🍳", SortOrder: 1},
	{ID: "fire", Name: "焚き火", Icon: "🔥", SortOrder: 2},
	{ID: "sleeping", Name: "テント・寝具", Icon: "⛺", SortOrder: 3},
	{ID: "clothing", Name: "衣類", Icon: "🧥", SortOrder: 4},
	{ID: "hygiene", Name: "衛生用品", Icon: "🧼", SortOrder: 5},
	{ID: "other", Name: "その他", Icon: "🎒", SortOrder: 6},
}

// defaultTemplateItems is the starter packing template.
var defaultTemplateItems = []domain.TemplateItem{
	{Name: "テント", CategoryID: "sleeping"},
	{Name: "寝袋", CategoryID: "sleeping"},
	{Name: "ランタン", CategoryID: "other"},
	{Name: "薪", CategoryID: "fire"},
	{Name: "着火剤", CategoryID: "fire"},
	{Name: "クッカー", CategoryID: "cooking"},
	{Name: "バーナー", CategoryID: "cooking"},
	{Name: "クーラーボックス", CategoryID: "food"},
	{Name: "飲料水", CategoryID: "food"},
	{Name: "防寒着", CategoryID: "clothing"},
	{Name: "タオル", CategoryID: "hygiene"},
	{Name: "救急セット", CategoryID: "hygiene"},
}

// SeedDefaults creates the default categories and the starter template on
// first run. Already-seeded databases are left untouched.
func (s *Store) SeedDefaults(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seeded := 0
	for _, seed := range defaultCategories {
		category := &domain.Category{
			Name:      seed.Name,
			Icon:      seed.Icon,
			SortOrder: seed.SortOrder,
			IsSystem:  true,
		}
		category.ID = seed.ID
		category.InitTimestamps()

		err := s.Categories.Create(ctx, category.ID, category)
		if errors.Is(err, ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed category %s: %w", seed.Name, err)
		}
		seeded++
	}

	if err := s.seedDefaultTemplate(ctx); err != nil {
		return err
	}

	if s.logger != nil && seeded > 0 {
		s.logger.Info("Default categories seeded", "count", seeded)
	}
	return nil
}

func (s *Store) seedDefaultTemplate(ctx context.Context) error {
	const name = "基本キャンプセット"

	_, err := s.Templates.GetByIndex(ctx, "name", name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	templateID, err := id.Generate("template")
	if err != nil {
		return fmt.Errorf("generate template ID: %w", err)
	}

	template := &domain.Template{
		Name:        name,
		Description: "一泊キャンプの基本装備",
		Items:       defaultTemplateItems,
		IsSystem:    true,
	}
	template.ID = templateID
	template.InitTimestamps()

	if err := s.Templates.Create(ctx, templateID, template); err != nil {
		return fmt.Errorf("seed default template: %w", err)
	}
	return nil
}
