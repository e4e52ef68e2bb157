package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// principalFrom returns the caller of r as carried by its verified token.
func principalFrom(r *http.Request) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || claims == nil {
		return user.Principal{}, auth.ErrInvalidToken
	}
	return jwt.PrincipalFromClaims(claims), nil
}

// employeeFrom is principalFrom for routes acting on the caller's own records.
func employeeFrom(r *http.Request) (user.Principal, error) {
	p, err := principalFrom(r)
	if err != nil {
		return user.Principal{}, err
	}
	if !p.HasEmployee() {
		return user.Principal{}, user.ErrEmployeeProfileRequired
	}
	return p, nil
}
