package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peopledesk/hr-backend-go/internal/domain/auth"
	"github.com/peopledesk/hr-backend-go/internal/domain/employee"
	"github.com/peopledesk/hr-backend-go/internal/domain/leave"
	"github.com/peopledesk/hr-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Identity is the authenticated caller extracted from token claims:
// who they are plus the capability set their role grants.
type Identity struct {
	EmployeeID   string
	Role         employee.Role
	Capabilities leave.Capabilities
}

// IdentityFromRequest reads the verified claims. AuthRequired has run
// before any handler that calls this.
func IdentityFromRequest(r *http.Request) (Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, auth.ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return Identity{}, auth.ErrInvalidToken
	}

	role := employee.Role(roleStr)
	return Identity{
		EmployeeID:   employeeID,
		Role:         role,
		Capabilities: leave.CapabilitiesFor(role),
	}, nil
}

// RequireApprover admits managers and HR admins only.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := IdentityFromRequest(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !id.Capabilities.CanApprove {
			response.Forbidden(w, "Approval authority required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireHRAdmin admits HR admins only. Allocation, rollover and master
// data changes stay behind this.
func RequireHRAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := IdentityFromRequest(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if id.Role != employee.RoleHRAdmin {
			response.Forbidden(w, "HR admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
