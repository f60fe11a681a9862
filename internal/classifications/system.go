package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/pkg/pagination"
)

// System defines the public contract for classification domain operations.
type System interface {
	Handler() *Handler

	// Classify runs the pipeline and stores the result, degrading
	// gracefully when the store is unavailable.
	Classify(ctx context.Context, req classifier.ClassifyRequest) (*ClassifyResult, error)

	Create(ctx context.Context, cmd CreateCommand) (*Classification, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)

	Find(ctx context.Context, id uuid.UUID) (*Classification, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Classification, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Statistics aggregates the full record set in process over a narrow
	// projection.
	Statistics(ctx context.Context) (*Statistics, error)

	// Export renders the full filtered and sorted record set as CSV.
	Export(ctx context.Context, page pagination.PageRequest, filters Filters) ([]byte, error)
}
