package jobtitle

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
)

type JobTitleFilter struct {
	Search       string
	DepartmentID string
	pagination.Params
}

// JobTitleRepository - interface for job_titles table. Deleted rows are never returned.
type JobTitleRepository interface {
	Create(ctx context.Context, j JobTitle) (JobTitle, error)
	GetByID(ctx context.Context, id string) (JobTitle, error)
	List(ctx context.Context, filter JobTitleFilter) ([]JobTitle, int64, error)
	Update(ctx context.Context, j JobTitle) (JobTitle, error)
	SoftDelete(ctx context.Context, id string) error
}
