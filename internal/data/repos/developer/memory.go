package developer

import (
	"context"
	"fmt"
	"sync"

	types "github.com/yungbote/devroster-backend/internal/domain"
	"github.com/yungbote/devroster-backend/internal/pkg/errors"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

type memoryRepo struct {
	mu   sync.RWMutex
	rows []types.Developer
	log  *logger.Logger
}

func NewMemoryRepo(baseLog *logger.Logger) DeveloperRepo {
	return &memoryRepo{
		rows: []types.Developer{},
		log:  baseLog.With("repo", "MemoryDeveloperRepo"),
	}
}

func (r *memoryRepo) List(ctx context.Context) ([]types.Developer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.Developer, len(r.rows))
	for i := range r.rows {
		out[i] = r.rows[i].Clone()
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (types.Developer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.rows[i].Clone(), true, nil
	}
	return types.Developer{}, false, nil
}

func (r *memoryRepo) GetByName(ctx context.Context, name string) (types.Developer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.rows {
		if r.rows[i].Name == name {
			return r.rows[i].Clone(), true, nil
		}
	}
	return types.Developer{}, false, nil
}

func (r *memoryRepo) Insert(ctx context.Context, dev types.Developer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dev.ID == "" {
		return fmt.Errorf("insert developer: %w: empty id", errors.ErrInvalidArgument)
	}
	if r.indexOf(dev.ID) >= 0 {
		return fmt.Errorf("insert developer %s: %w: id already present", dev.ID, errors.ErrInvalidArgument)
	}
	r.rows = append(r.rows, dev.Clone())
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, dev types.Developer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(dev.ID)
	if i < 0 {
		return fmt.Errorf("replace developer %s: %w", dev.ID, errors.ErrNotFound)
	}
	r.rows[i] = dev.Clone()
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete developer %s: %w", id, errors.ErrNotFound)
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *memoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}

func (r *memoryRepo) indexOf(id string) int {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return i
		}
	}
	return -1
}
