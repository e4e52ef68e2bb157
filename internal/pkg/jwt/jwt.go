package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity service. It can also
// mint them, which local tooling and tests use.
type Service interface {
	GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": principal.UserID,
		"role":    string(principal.Role),
		"type":    "access",
		"exp":     expiresAt,
	}
	if principal.HasEmployee() {
		claims["employee_id"] = principal.EmployeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromClaims reads the caller out of verified token claims. A
// missing employee_id leaves EmployeeID empty.
func PrincipalFromClaims(claims map[string]interface{}) user.Principal {
	var p user.Principal
	p.UserID, _ = claims["user_id"].(string)
	p.EmployeeID, _ = claims["employee_id"].(string)
	if role, ok := claims["role"].(string); ok {
		p.Role = user.Role(role)
	}
	return p
}
