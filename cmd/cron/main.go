package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"arcade/internal/datastore"
	"arcade/internal/pkg/caching"
	"arcade/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

const defaultTaxonomyWarmupSpec = "@every 10m"

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := env.EnvsRequired("DB_DSN")
	if err != nil {
		log.Fatal(err)
	}

	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(vs),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob(vs map[string]string) *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			container := newContainer(vs)
			defer container.Shutdown() //nolint:errcheck

			job, err := NewTaxonomyWarmupJob(container)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cronRunner := cron.New()
			if err := job.Start(ctx, cronRunner); err != nil {
				return err
			}

			log.Println("Start cronjob")
			cronRunner.Start()
			<-ctx.Done()
			<-cronRunner.Stop().Done()
			log.Println("Stop cronjob")
			return nil
		},
	}
}

type TaxonomyWarmupJob struct {
	db            *bun.DB
	serviceWarmup *services.ServiceWarmup
}

func NewTaxonomyWarmupJob(container *do.Injector) (*TaxonomyWarmupJob, error) {
	db, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	serviceWarmup, err := do.Invoke[*services.ServiceWarmup](container)
	if err != nil {
		return nil, err
	}

	return &TaxonomyWarmupJob{db, serviceWarmup}, nil
}

// Start schedules the job using CRONJOB_TIME_TAXONOMY_WARMUP and warms the cache once right away.
// Runs in progress are cancelled with ctx.
func (j *TaxonomyWarmupJob) Start(ctx context.Context, cronRunner *cron.Cron) error {
	spec := defaultTaxonomyWarmupSpec
	timeline, err := datastore.GetConfigByKey(ctx, j.db, services.CONFIG_CRONJOB_TIME_TAXONOMY_WARMUP)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if timeline != nil && timeline.Value != "" {
		spec = timeline.Value
	}

	_, err = cronRunner.AddFunc(spec, func() { j.run(ctx) })
	if err != nil {
		return err
	}

	log.Println("Taxonomy warmup cronjob:", spec)
	j.run(ctx)
	return nil
}

func (j *TaxonomyWarmupJob) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	err := j.serviceWarmup.WarmTaxonomy(ctx)
	if errors.Is(err, services.ErrTaxonomyWarmupLock) {
		log.Println("Taxonomy warmup skipped: running elsewhere")
		return
	}
	if err != nil {
		log.Println("Taxonomy warmup failed:", err)
	}
}

func newContainer(vs map[string]string) *do.Injector {
	injector := do.New()

	do.ProvideNamed(injector, "db-readonly", func(i *do.Injector) (*bun.DB, error) {
		dsn := os.Getenv("DB_DSN_READONLY")
		password := os.Getenv("DB_PASSWORD_READONLY")
		if dsn == "" {
			dsn, password = vs["DB_DSN"], os.Getenv("DB_PASSWORD")
		}
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithPassword(password),
		))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return getRedis("REDIS_CACHE")
	})

	do.ProvideNamed(injector, "redis-mutex", func(i *do.Injector) (redis.UniversalClient, error) {
		return getRedis("REDIS_MUTEX")
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}
		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (caching.ReadOnlyCache, error) {
		cache, err := do.Invoke[caching.Cache](i)
		if err != nil {
			return nil, err
		}
		return cache, nil
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}

		pool := goredis.NewPool(dbRedis)
		return redsync.New(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceCategory, error) {
		return services.NewServiceCategory(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceWarmup, error) {
		return services.NewServiceWarmup(injector)
	})

	return injector
}

func getRedis(name string) (redis.UniversalClient, error) {
	clusterURL := os.Getenv("CLUSTER_" + name)
	if clusterURL != "" {
		clusterOpts, err := redis.ParseClusterURL(clusterURL)
		if err != nil {
			return nil, err
		}
		return redis.NewClusterClient(clusterOpts), nil
	}

	return db.InitRedis(&db.RedisConfig{
		URL: os.Getenv(name),
	})
}
