package identity

import (
	"context"
	"strings"
	"time"

	"github.com/anascb/storefront/internal/domain/identity"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/anascb/storefront/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"prenom" binding:"required,min=2,max=100"`
	LastName  string `json:"nom" binding:"required,min=2,max=100"`
	Role      string `json:"role"`
}

// LoginRequest is the authentication payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is an account as returned to clients
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"prenom"`
	LastName  string    `json:"nom"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the issued token and its owner
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// AuthService handles account registration and authentication
type AuthService struct {
	users      identity.Repository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.Repository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an account. Requesting the ADMIN role is subject to
// the admin cap; an unknown or empty role falls back to CLIENT.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Un compte existe déjà avec cet email")
	}

	role := identity.Role(strings.ToUpper(req.Role))
	if !role.IsValid() {
		role = identity.RoleClient
	}
	if role == identity.RoleAdmin {
		count, err := s.users.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if count >= identity.MaxAdmins {
			s.logger.Warn("admin registration refused, cap reached",
				zap.String("email", email),
				zap.Int64("admins", count))
			return nil, shared.NewDomainError("ADMIN_LIMIT",
				"Le nombre maximum d'administrateurs est atteint")
		}
	}

	user, err := identity.NewUser(email, req.Password, req.FirstName, req.LastName, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return toUserResponse(user), nil
}

// Login authenticates by email and password and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, invalidCredentials()
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return nil, invalidCredentials()
	}

	token, expiresAt, err := s.jwtService.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *toUserResponse(user),
	}, nil
}

// Me returns the account behind a validated token
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Email ou mot de passe incorrect")
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
