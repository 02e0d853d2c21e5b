package developer

import (
	"context"

	types "github.com/yungbote/devroster-backend/internal/domain"
)

// DeveloperRepo is the ordered store behind the registry. Implementations
// return copies; callers never hold references into the store.
type DeveloperRepo interface {
	List(ctx context.Context) ([]types.Developer, error)
	GetByID(ctx context.Context, id string) (types.Developer, bool, error)
	GetByName(ctx context.Context, name string) (types.Developer, bool, error)
	// Insert appends at the end of the list.
	Insert(ctx context.Context, dev types.Developer) error
	// Replace overwrites every field of the entry with dev.ID, keeping its position.
	Replace(ctx context.Context, dev types.Developer) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
