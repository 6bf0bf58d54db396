package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/auth"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	IssueUserToken(userID uuid.UUID, role string) (auth.IssuedToken, error)
	IssueAdminToken(email string) (auth.IssuedToken, error)
}

// AuthServiceConfig wires the auth service dependencies
type AuthServiceConfig struct {
	Users     identity.UserRepository
	Tokens    TokenIssuer
	Blacklist auth.TokenBlacklist
	Admin     config.AdminConfig
	Events    shared.EventPublisher
	Logger    *zap.Logger
}

// AuthService handles customer registration, customer login and the admin login
type AuthService struct {
	users     identity.UserRepository
	tokens    TokenIssuer
	blacklist auth.TokenBlacklist
	admin     config.AdminConfig
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:     cfg.Users,
		tokens:    cfg.Tokens,
		blacklist: cfg.Blacklist,
		admin:     cfg.Admin,
		events:    cfg.Events,
		logger:    logger,
	}
}

// Register creates a customer account and returns a token for it
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*TokenResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "User already exists")
	}

	user, err := identity.NewCustomer(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "User already exists")
		}
		return nil, err
	}

	s.publish(ctx, user)
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issueFor(user)
}

// Login authenticates a customer or sub-admin by email and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User doesn't exist")
		}
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid credentials")
	}

	user.RecordLogin()
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		// the login still succeeds
		s.logger.Warn("Failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return s.issueFor(user)
}

// AdminLogin checks the configured admin credentials
func (s *AuthService) AdminLogin(_ context.Context, input LoginInput) (*TokenResult, error) {
	if !s.admin.Configured() {
		s.logger.Error("Admin login attempted without configured credentials")
		return nil, shared.NewDomainError(shared.CodeMisconfigured, "Admin credentials not configured")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(input.Email)), []byte(s.admin.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.admin.Password)) == 1
	if !emailOK || !passwordOK {
		s.logger.Warn("Invalid admin login attempt")
		return nil, shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid credentials")
	}

	issued, err := s.tokens.IssueAdminToken(s.admin.Email)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, Role: auth.RoleAdmin}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" {
		return nil
	}
	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl)
}

func (s *AuthService) issueFor(user *identity.User) (*TokenResult, error) {
	role := string(user.Role)
	if role == "" {
		role = auth.RoleCustomer
	}
	issued, err := s.tokens.IssueUserToken(user.ID, role)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, UserID: user.ID, Role: role}, nil
}

func (s *AuthService) publish(ctx context.Context, user *identity.User) {
	if err := shared.PublishPending(ctx, s.events, user); err != nil {
		s.logger.Warn("Failed to publish user events", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
