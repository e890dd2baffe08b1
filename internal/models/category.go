package models

import "github.com/uptrace/bun"

const TaxonomyGame = "game"

type CategoryMeta struct {
	Image string `json:"image"`
}

type Category struct {
	bun.BaseModel `bun:"table:category"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	Name          string       `bun:"name" json:"name"`
	Slug          string       `bun:"slug" json:"slug"`
	Description   string       `bun:"description" json:"description"`
	Taxonomy      string       `bun:"taxonomy" json:"taxonomy"`
	Meta          CategoryMeta `bun:"meta,type:jsonb" json:"meta"`
	Priority      int          `bun:"priority" json:"priority"`
}
