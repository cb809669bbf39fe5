package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/hr-backend-go/internal/domain/auth"
	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/pkg/jwt"
)

type fakeEmployeeRepo struct {
	byEmail map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	e, ok := f.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateBranch(ctx context.Context, id, branchID string) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

func newTestService(t *testing.T, employees ...employee.Employee) AuthService {
	t.Helper()

	repo := &fakeEmployeeRepo{byEmail: make(map[string]employee.Employee)}
	for _, e := range employees {
		repo.byEmail[e.Email] = e
	}
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "1h"))
}

func testEmployee(t *testing.T, password string, active bool) employee.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return employee.Employee{
		ID:           "emp-1",
		Email:        "sari@example.com",
		PasswordHash: string(hash),
		Role:         employee.RoleStaff,
		IsActive:     active,
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t, testEmployee(t, "correct horse", true))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sari@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, string(employee.RoleStaff), resp.Role)
	assert.Greater(t, resp.ExpiresAt, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, testEmployee(t, "correct horse", true))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sari@example.com",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newTestService(t, testEmployee(t, "correct horse", false))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sari@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
