package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ofertemutare/ofertemutare/internal/model"
)

var ErrInvalidBearer = errors.New("invalid bearer token")

// AuthService verifies bearer tokens minted by the identity provider.
// Only the HMAC secret is shared with it; users live elsewhere.
type AuthService struct {
	jwtSecret []byte
	now       func() time.Time
}

func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Claims carried by bearer tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) GenerateJWT(caller *model.Caller, expiry time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email: caller.Email,
		Role:  caller.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) VerifyJWT(tokenString string) (*model.Caller, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBearer, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidBearer
	}

	role := claims.Role
	switch role {
	case model.RoleAdmin, model.RoleCompany, model.RoleCustomer:
	case "":
		role = model.RoleCustomer
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidBearer, role)
	}

	return &model.Caller{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
	}, nil
}
