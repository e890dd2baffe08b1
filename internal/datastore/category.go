package datastore

import (
	"context"

	"arcade/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableCategory(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Category)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Category)(nil)).Index("index_category_slug").Unique().IfNotExists().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Category)(nil)).Index("index_category_taxonomy").IfNotExists().Column("taxonomy", "priority").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewRaw(`
		alter table category
			add if not exists meta jsonb default '{}';

		alter table category
			add if not exists priority int default 0;
		`).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetCategoryBySlug(ctx context.Context, db *bun.DB, slug string) (*models.Category, error) {
	var category models.Category
	err := db.NewSelect().Model(&category).Where("slug = ?", slug).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// NewTaxonomyQuery selects every category of a taxonomy, unpaginated.
func NewTaxonomyQuery(db *bun.DB, categories *[]models.Category, taxonomy string) *bun.SelectQuery {
	return db.NewSelect().Model(categories).
		Where("taxonomy = ?", taxonomy).
		Order("priority DESC", "id ASC")
}

func GetCategoriesByTaxonomy(ctx context.Context, db *bun.DB, taxonomy string) ([]models.Category, error) {
	var categories []models.Category
	err := NewTaxonomyQuery(db, &categories, taxonomy).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func SetCategory(ctx context.Context, db bun.IDB, category *models.Category) error {
	_, err := db.NewInsert().Model(category).On("CONFLICT (slug) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("taxonomy = EXCLUDED.taxonomy").
		Set("meta = EXCLUDED.meta").
		Set("priority = EXCLUDED.priority").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}
