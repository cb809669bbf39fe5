package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/master/branch"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (id, name, city, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, b.Name, b.City).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return branch.Branch{}, err
	}

	return b, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	var b branch.Branch
	err := q.QueryRow(ctx,
		`SELECT id, name, city, created_at, updated_at FROM branches WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.City, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, err
	}
	return b, nil
}

// GetByName implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByName(ctx context.Context, name string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	var b branch.Branch
	err := q.QueryRow(ctx,
		`SELECT id, name, city, created_at, updated_at FROM branches WHERE name = $1`, name,
	).Scan(&b.ID, &b.Name, &b.City, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, err
	}
	return b, nil
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, name, city, created_at, updated_at FROM branches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]branch.Branch, 0)
	for rows.Next() {
		var b branch.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.City, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
