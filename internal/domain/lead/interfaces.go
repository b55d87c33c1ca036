package lead

import "context"

// Repository defines lead data access
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	GetByPublicID(ctx context.Context, publicID string) (*Lead, error)
	List(ctx context.Context, filter ListFilter) ([]Lead, int64, error)
	CountByTier(ctx context.Context) (map[string]int64, error)
}
