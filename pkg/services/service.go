package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Service is a long-running unit of the process, alive until its context
// is canceled.
type Service interface {
	Name() string
	Start(ctx context.Context) error
}

type Group []Service

// Start runs all services and blocks until every one has returned. The
// first failure cancels the rest; all errors are reported together.
func (g Group) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)

	for _, svc := range g {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()

			slog.Info("starting service", "name", svc.Name())
			if err := svc.Start(ctx); err != nil {
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
				cancel()
			}
			slog.Info("service stopped", "name", svc.Name())
		}(svc)
	}

	wg.Wait()
	return errs.ErrorOrNil()
}
