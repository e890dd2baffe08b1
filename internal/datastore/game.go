package datastore

import (
	"context"

	"arcade/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGame(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Game)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Game)(nil)).Index("index_game_slug").Unique().IfNotExists().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Game)(nil)).Index("index_game_category_views").IfNotExists().Column("category_id", "display", "views").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewRaw(`
		alter table game
			add if not exists is_hot bool default false;

		alter table game
			add if not exists is_new bool default false;

		alter table game
			alter column views set default 0;
		`).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// categoryGamesFilter is shared by the page query and the count query so both always agree.
func categoryGamesFilter(q *bun.SelectQuery, categoryID int64) *bun.SelectQuery {
	return q.
		Where("category_id = ?", categoryID).
		Where("display = ?", true).
		Where("type != ?", models.GameTypeVideo)
}

func NewCategoryGamesQuery(db *bun.DB, games *[]models.Game, categoryID int64, orderBy string, offset, limit int) *bun.SelectQuery {
	return categoryGamesFilter(db.NewSelect().Model(games), categoryID).
		OrderExpr("? DESC", bun.Ident(orderBy)).
		Order("id ASC").
		Offset(offset).
		Limit(limit)
}

func NewCategoryGamesCountQuery(db *bun.DB, categoryID int64) *bun.SelectQuery {
	return categoryGamesFilter(db.NewSelect().Model((*models.Game)(nil)), categoryID)
}

func GetCategoryGames(ctx context.Context, db *bun.DB, categoryID int64, orderBy string, offset, limit int) ([]models.Game, error) {
	games := []models.Game{}
	err := NewCategoryGamesQuery(db, &games, categoryID, orderBy, offset, limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return games, nil
}

func CountCategoryGames(ctx context.Context, db *bun.DB, categoryID int64) (int64, error) {
	count, err := NewCategoryGamesCountQuery(db, categoryID).Count(ctx)
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

func SetGame(ctx context.Context, db bun.IDB, game *models.Game) error {
	_, err := db.NewInsert().Model(game).On("CONFLICT (slug) DO UPDATE").
		Set("category_id = EXCLUDED.category_id").
		Set("name = EXCLUDED.name").
		Set("excerpt = EXCLUDED.excerpt").
		Set("image = EXCLUDED.image").
		Set("type = EXCLUDED.type").
		Set("display = EXCLUDED.display").
		Set("is_hot = EXCLUDED.is_hot").
		Set("is_new = EXCLUDED.is_new").
		Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}
