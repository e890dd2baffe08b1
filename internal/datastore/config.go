package datastore

import (
	"context"

	"arcade/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Config)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewRaw(`
		alter table config
			add if not exists updated_at timestamptz not null default current_timestamp;`).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetConfigByKey(ctx context.Context, db *bun.DB, key string) (*models.Config, error) {
	var config models.Config
	err := db.NewSelect().Model(&config).Where("key = ?", key).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// UpsertConfig keeps an existing value untouched unless overwrite is set.
func UpsertConfig(ctx context.Context, db *bun.DB, config *models.Config, overwrite bool) error {
	q := db.NewInsert().Model(config)
	if overwrite {
		q = q.On("CONFLICT (key) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_at = current_timestamp")
	} else {
		q = q.On("CONFLICT (key) DO NOTHING")
	}

	_, err := q.Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}
