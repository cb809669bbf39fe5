package branch

import "context"

// BranchRepository - interface for the branches table
type BranchRepository interface {
	Create(ctx context.Context, b Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	GetByName(ctx context.Context, name string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
}
