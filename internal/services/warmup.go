package services

import (
	"context"
	"log"
	"time"

	"arcade/internal/models"

	"github.com/go-redsync/redsync/v4"
	"github.com/samber/do"
)

type ServiceWarmup struct {
	container       *do.Injector
	rs              *redsync.Redsync
	serviceCategory *ServiceCategory
}

func NewServiceWarmup(container *do.Injector) (*ServiceWarmup, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	serviceCategory, err := do.Invoke[*ServiceCategory](container)
	if err != nil {
		return nil, err
	}

	return &ServiceWarmup{container, rs, serviceCategory}, nil
}

// WarmTaxonomy refreshes the cached sidebar. Only one instance runs it at a time;
// the others return ErrTaxonomyWarmupLock.
func (service *ServiceWarmup) WarmTaxonomy(ctx context.Context) error {
	mutex := service.rs.NewMutex(LockKeyTaxonomyWarmup(models.TaxonomyGame),
		redsync.WithExpiry(time.Minute),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return ErrTaxonomyWarmupLock
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	categories, err := service.serviceCategory.RefreshTaxonomy(ctx, models.TaxonomyGame)
	if err != nil {
		return err
	}

	log.Printf("warmup: cached %d %s categories\n", len(categories), models.TaxonomyGame)
	return nil
}
