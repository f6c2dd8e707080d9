package department

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
)

type DepartmentFilter struct {
	Search string
	pagination.Params
}

// DepartmentRepository - interface for departments table. Deleted rows are never returned.
type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]Department, int64, error)
	Update(ctx context.Context, d Department) (Department, error)
	SoftDelete(ctx context.Context, id string) error
}
