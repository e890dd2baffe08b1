package models

import "github.com/uptrace/bun"

type GameType string

const (
	GameTypeHTML5 GameType = "HTML5"
	GameTypeFlash GameType = "FLASH"
	GameTypeVideo GameType = "VIDEO"
)

type Game struct {
	bun.BaseModel `bun:"table:game"`
	ID            int64    `bun:"id,pk,autoincrement" json:"id"`
	CategoryID    int64    `bun:"category_id" json:"category_id"`
	Name          string   `bun:"name" json:"name"`
	Slug          string   `bun:"slug" json:"slug"`
	Excerpt       string   `bun:"excerpt" json:"excerpt"`
	Image         string   `bun:"image" json:"image"`
	Views         int64    `bun:"views" json:"views"`
	Type          GameType `bun:"type" json:"type"`
	Display       bool     `bun:"display" json:"display"`
	IsHot         bool     `bun:"is_hot" json:"is_hot"`
	IsNew         bool     `bun:"is_new" json:"is_new"`
}
