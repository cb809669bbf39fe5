package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/hr-backend-go/internal/domain/auth"
	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/pkg/jwt"
)

type AuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
}

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		jwtService:         jwtService,
	}
}

// Login implements AuthService. Unknown email, wrong password and
// deactivated account all collapse into the same credentials error so the
// response does not leak which one failed.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !emp.IsActive {
		slog.Info("login attempt on inactive account", "employee_id", emp.ID)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		EmployeeID:  emp.ID,
		Role:        string(emp.Role),
	}, nil
}
