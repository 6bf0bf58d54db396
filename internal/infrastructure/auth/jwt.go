package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/infrastructure/config"
)

// Token types carried in the "type" claim
const (
	TokenTypeUser  = "user"
	TokenTypeAdmin = "admin"
)

// Roles carried in the "role" claim
const (
	RoleCustomer = "customer"
	RoleSubAdmin = "subadmin"
	RoleAdmin    = "admin"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims are the JWT claims issued by the API.
//
// Customer and sub-admin tokens carry the user id in "id"; admin tokens carry
// no id and are recognised by role=admin or admin=true.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	Type   string `json:"type,omitempty"`
}

// IsAdmin reports whether the token grants admin access
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin || c.Admin
}

// UserUUID parses the id claim
func (c *Claims) UserUUID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, ErrInvalidClaims
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return id, nil
}

// ExpiresAtTime returns the expiration time, zero when absent
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedToken is a signed token and its expiry
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// JWTService signs and validates HS256 tokens
type JWTService struct {
	secret          []byte
	userExpiration  time.Duration
	adminExpiration time.Duration
	issuer          string
	now             func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:          []byte(cfg.Secret),
		userExpiration:  cfg.UserExpiration,
		adminExpiration: cfg.AdminExpiration,
		issuer:          cfg.Issuer,
		now:             time.Now,
	}
}

// IssueUserToken signs a customer token: {id, role}
func (s *JWTService) IssueUserToken(userID uuid.UUID, role string) (IssuedToken, error) {
	return s.sign(&Claims{
		UserID: userID.String(),
		Role:   role,
		Type:   TokenTypeUser,
	}, s.userExpiration)
}

// IssueSubAdminToken signs a sub-admin token: {id, email, role:subadmin}
func (s *JWTService) IssueSubAdminToken(userID uuid.UUID, email string) (IssuedToken, error) {
	return s.sign(&Claims{
		UserID: userID.String(),
		Email:  email,
		Role:   RoleSubAdmin,
		Type:   TokenTypeUser,
	}, s.userExpiration)
}

// IssueAdminToken signs the platform admin token: {role:admin, email, admin:true, type:admin}
func (s *JWTService) IssueAdminToken(email string) (IssuedToken, error) {
	return s.sign(&Claims{
		Email: email,
		Role:  RoleAdmin,
		Admin: true,
		Type:  TokenTypeAdmin,
	}, s.adminExpiration)
}

func (s *JWTService) sign(claims *Claims, ttl time.Duration) (IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken verifies the signature and time claims and returns the claims.
// The issuer is not enforced so that tokens minted by earlier deployments
// keep working until they expire.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// UserExpiration returns the lifetime of customer and sub-admin tokens
func (s *JWTService) UserExpiration() time.Duration {
	return s.userExpiration
}

// AdminExpiration returns the lifetime of admin tokens
func (s *JWTService) AdminExpiration() time.Duration {
	return s.adminExpiration
}
