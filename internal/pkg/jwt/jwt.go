package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

type Service interface {
	GenerateAccessToken(email string, role identity.Role, employeeID string, name string) (token string, expiresAt int64, err error)
	GenerateSSEToken(employeeID string, role identity.Role) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (identity.Actor, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	sseTokenExpirationTime    string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, sseTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		sseTokenExpirationTime:    sseTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(email string, role identity.Role, employeeID string, name string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"email":       email,
		"role":        string(role),
		"employee_id": employeeID,
		"name":        name,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(employeeID string, role identity.Role) (token string, expiresIn int, err error) {
	expDuration, err := time.ParseDuration(j.sseTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresIn = int(expDuration.Seconds())
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "sse",
		"exp":         expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the actor it was issued to
func (j *JWTService) ValidateSSEToken(tokenString string) (identity.Actor, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return identity.Actor{}, err
	}

	// Check token type
	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return identity.Actor{}, jwt.ErrInvalidJWT()
	}

	employeeIDVal, ok := token.Get("employee_id")
	if !ok {
		return identity.Actor{}, jwt.ErrInvalidJWT()
	}
	employeeID, ok := employeeIDVal.(string)
	if !ok {
		return identity.Actor{}, jwt.ErrInvalidJWT()
	}

	actor := identity.Actor{EmployeeID: employeeID}
	if roleVal, ok := token.Get("role"); ok {
		if role, ok := roleVal.(string); ok {
			actor.Role = identity.Role(role)
		}
	}

	return actor, nil
}
