// Package roster keeps an in-memory copy of the employee list for the
// dashboard and applies workload edits optimistically.
package roster

import (
	"context"
	"sync"
	"time"

	"go-nexushr/internal/employee"
	employeeerrors "go-nexushr/internal/employee/errors"
	"go-nexushr/internal/events"
	"go-nexushr/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Store is the authoritative source the roster reads from and writes to.
// ListFresh must bypass any cache.
type Store interface {
	ListFresh(ctx context.Context) ([]employee.EmployeeResponse, error)
	SetWorkload(ctx context.Context, id string, workload int) (employee.EmployeeResponse, error)
}

type Roster struct {
	mu       sync.RWMutex
	records  []employee.EmployeeResponse
	loadedAt time.Time

	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Roster {
	if logger == nil {
		logger = zap.L()
	}
	return &Roster{store: store, logger: logger.Named("roster")}
}

// Snapshot returns a copy of the cached records.
func (r *Roster) Snapshot() []employee.EmployeeResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employee.EmployeeResponse, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Roster) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

// Records returns the snapshot, loading it on first use.
func (r *Roster) Records(ctx context.Context) ([]employee.EmployeeResponse, error) {
	if r.LoadedAt().IsZero() {
		if err := r.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return r.Snapshot(), nil
}

// Refresh replaces the cache with the store's current list. The last
// completed refresh wins.
func (r *Roster) Refresh(ctx context.Context) error {
	records, err := r.store.ListFresh(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, r.logger).Warn("roster refresh failed", zap.Error(err))
		return err
	}

	r.mu.Lock()
	r.records = records
	r.loadedAt = time.Now()
	r.mu.Unlock()
	return nil
}

// AdjustWorkload applies clamp(current+delta) to the cached row at once,
// then writes it through. On failure the whole list is refetched so the
// cache matches the store again, and the write error is returned.
func (r *Roster) AdjustWorkload(ctx context.Context, id string, delta int) (employee.EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, r.logger)

	if _, err := r.Records(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}

	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	row := r.records[idx]
	next := employee.ApplyDelta(row.Workload, delta)
	row.Workload = next
	row.Status = employee.DeriveStatus(next, row.Disabled)
	r.records[idx] = row
	r.mu.Unlock()

	saved, err := r.store.SetWorkload(ctx, id, next)
	if err != nil {
		log.Warn("optimistic workload update failed, refetching",
			zap.String("employee_id", id),
			zap.Int("workload", next),
			zap.Error(err),
		)
		if rerr := r.Refresh(contextutil.Detach(ctx)); rerr != nil {
			log.Error("roster rollback refetch failed", zap.Error(rerr))
		}
		return employee.EmployeeResponse{}, err
	}

	r.mu.Lock()
	if i := r.indexOf(id); i >= 0 {
		r.records[i] = saved
	}
	r.mu.Unlock()

	return saved, nil
}

// Watch refreshes on every change event until ctx ends or changes closes.
func (r *Roster) Watch(ctx context.Context, changes <-chan events.EmployeeChangedEvent) {
	r.logger.Info("roster watching employee changes")
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-changes:
			if !ok {
				r.logger.Info("employee change feed closed")
				return
			}
			r.logger.Debug("employee change received",
				zap.String("event_type", ev.EventType),
				zap.String("employee_id", ev.EmployeeID),
			)
			_ = r.Refresh(ctx)
		}
	}
}

func (r *Roster) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}
