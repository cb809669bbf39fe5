package master

import (
	"context"
	"fmt"

	"github.com/peopledesk/hr-backend-go/internal/domain/master/branch"
)

type MasterService interface {
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.Branch, error)
	GetBranch(ctx context.Context, id string) (branch.Branch, error)
	ListBranches(ctx context.Context) ([]branch.Branch, error)
}

type MasterServiceImpl struct {
	branch.BranchRepository
}

func NewMasterService(branchRepository branch.BranchRepository) MasterService {
	return &MasterServiceImpl{BranchRepository: branchRepository}
}

// CreateBranch implements MasterService.
func (s *MasterServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.Branch, error) {
	if err := req.Validate(); err != nil {
		return branch.Branch{}, err
	}

	_, err := s.BranchRepository.GetByName(ctx, req.Name)
	if err == nil {
		return branch.Branch{}, branch.ErrBranchNameExists
	}
	if err != branch.ErrBranchNotFound {
		return branch.Branch{}, fmt.Errorf("failed to check branch name: %w", err)
	}

	created, err := s.BranchRepository.Create(ctx, branch.Branch{
		Name: req.Name,
		City: req.City,
	})
	if err != nil {
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}
	return created, nil
}

// GetBranch implements MasterService.
func (s *MasterServiceImpl) GetBranch(ctx context.Context, id string) (branch.Branch, error) {
	return s.BranchRepository.GetByID(ctx, id)
}

// ListBranches implements MasterService.
func (s *MasterServiceImpl) ListBranches(ctx context.Context) ([]branch.Branch, error) {
	return s.BranchRepository.List(ctx)
}
