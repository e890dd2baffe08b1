package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"arcade/internal/datastore"
	"arcade/internal/models"
	"arcade/internal/pkg/caching"
	"arcade/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			err = datastore.CreateTableCategory(ctx, db)
			if err != nil {
				return err
			}

			err = datastore.CreateTableGame(ctx, db)
			if err != nil {
				return err
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				return err
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "replace values that already exist",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			configs := []models.Config{
				{Key: services.CONFIG_CATEGORY_GAMES_LIMIT, Value: fmt.Sprint(services.CATEGORY_GAMES_DEFAULT_LIMIT)},
				{Key: services.CONFIG_CATEGORY_GAMES_MAX_LIMIT, Value: fmt.Sprint(services.CATEGORY_GAMES_DEFAULT_MAX_LIMIT)},
				{Key: services.CONFIG_CRONJOB_TIME_TAXONOMY_WARMUP, Value: "@every 10m"},
			}

			for _, config := range configs {
				config := config
				err = datastore.UpsertConfig(ctx, db, &config, c.Bool("overwrite"))
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandSeed() *cli.Command {
	return &cli.Command{
		Name:        "seed",
		Description: "Insert a demo catalogue",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "flush-cache",
				Usage: "drop cached categories afterwards (needs REDIS_CACHE)",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			bunDB, err := getDb()
			if err != nil {
				return err
			}

			err = bunDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				for _, seed := range demoCatalogue() {
					category := seed.category
					if err := datastore.SetCategory(ctx, tx, &category); err != nil {
						return err
					}

					for _, game := range seed.games {
						game := game
						game.CategoryID = category.ID
						if err := datastore.SetGame(ctx, tx, &game); err != nil {
							return err
						}
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			if c.Bool("flush-cache") {
				client, err := db.InitRedis(&db.RedisConfig{
					URL: os.Getenv("REDIS_CACHE"),
				})
				if err != nil {
					return err
				}
				if err := caching.DeleteKeys(ctx, client, services.DBKeyCategoryPattern()); err != nil {
					return err
				}
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

type categorySeed struct {
	category models.Category
	games    []models.Game
}

func demoCatalogue() []categorySeed {
	return []categorySeed{
		{
			category: models.Category{Name: "Puzzle", Slug: "puzzle", Taxonomy: models.TaxonomyGame, Priority: 30,
				Description: "Bend your brain", Meta: models.CategoryMeta{Image: "categories/puzzle.png"}},
			games: []models.Game{
				{Name: "Block Drop", Slug: "block-drop", Excerpt: "Stack falling blocks", Image: "games/block-drop.png", Views: 5120, Type: models.GameTypeHTML5, Display: true, IsHot: true},
				{Name: "Tile Twist", Slug: "tile-twist", Excerpt: "Slide tiles into place", Image: "games/tile-twist.png", Views: 2210, Type: models.GameTypeHTML5, Display: true, IsNew: true},
				{Name: "Word Grid", Slug: "word-grid", Excerpt: "Find hidden words", Image: "games/word-grid.png", Views: 870, Type: models.GameTypeHTML5, Display: true},
				{Name: "Block Drop Walkthrough", Slug: "block-drop-walkthrough", Excerpt: "Video guide", Image: "games/block-drop-video.png", Views: 9000, Type: models.GameTypeVideo, Display: true},
			},
		},
		{
			category: models.Category{Name: "Racing", Slug: "racing", Taxonomy: models.TaxonomyGame, Priority: 20,
				Description: "Floor it", Meta: models.CategoryMeta{Image: "categories/racing.png"}},
			games: []models.Game{
				{Name: "Drift King", Slug: "drift-king", Excerpt: "Slide through corners", Image: "games/drift-king.png", Views: 7300, Type: models.GameTypeHTML5, Display: true, IsHot: true},
				{Name: "Moto Dash", Slug: "moto-dash", Excerpt: "Jump the dunes", Image: "games/moto-dash.png", Views: 1290, Type: models.GameTypeFlash, Display: true},
			},
		},
		{
			category: models.Category{Name: "Arcade", Slug: "arcade", Taxonomy: models.TaxonomyGame, Priority: 10,
				Description: "Classic coin-op fun", Meta: models.CategoryMeta{Image: "categories/arcade.png"}},
			games: []models.Game{
				{Name: "Star Blaster", Slug: "star-blaster", Excerpt: "Clear the sky", Image: "games/star-blaster.png", Views: 4410, Type: models.GameTypeHTML5, Display: true},
				{Name: "Brick Breaker", Slug: "brick-breaker", Excerpt: "Bounce and break", Image: "games/brick-breaker.png", Views: 300, Type: models.GameTypeHTML5, Display: false},
			},
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
