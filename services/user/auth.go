// Package user handles account signup, login and profile management.
package user

import (
	"context"
	"errors"
	"time"

	branchRepo "glowdesk/database/repository/branch"
	tenantRepo "glowdesk/database/repository/tenant"
	userRepo "glowdesk/database/repository/user"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TrialPeriod is how long a fresh tenant stays on trial.
const TrialPeriod = 7 * 24 * time.Hour

// TokenDuration is the login token lifetime.
const TokenDuration = 7 * 24 * time.Hour

// SignupRequest registers a new salon and its owner account.
type SignupRequest struct {
	BusinessName string `json:"businessName" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated identity.
type AuthResponse struct {
	Token  string         `json:"token"`
	User   *models.User   `json:"user"`
	Tenant *models.Tenant `json:"tenant,omitempty"`
}

// UserService is the account API.
type UserService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(userID string) (*models.User, error)
	UpdateFCMToken(userID, fcmToken string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	users    userRepo.UserRepository
	tenants  tenantRepo.TenantRepository
	branches branchRepo.BranchRepository
	logger   *zap.Logger
}

// NewUserService wires a user service.
func NewUserService(users userRepo.UserRepository, tenants tenantRepo.TenantRepository, branches branchRepo.BranchRepository, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{users: users, tenants: tenants, branches: branches, logger: logger}
}

// Signup creates the tenant on a trial plan, its first branch, and the owner
// account, then issues a login token.
func (s *DefaultUserService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		ID:                 uuid.NewString(),
		BusinessName:       req.BusinessName,
		SubscriptionStatus: models.SubscriptionTrial,
		TrialEndsAt:        time.Now().Add(TrialPeriod),
	}
	if err := s.tenants.Create(tenant); err != nil {
		return nil, err
	}

	branch := &models.Branch{
		ID:       uuid.NewString(),
		TenantID: tenant.ID,
		Name:     "Main Branch",
	}
	if err := s.branches.Create(branch); err != nil {
		return nil, err
	}

	owner := &models.User{
		ID:       uuid.NewString(),
		TenantID: tenant.ID,
		BranchID: branch.ID,
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     models.RoleOwner,
		IsActive: true,
	}
	if err := s.users.Create(owner); err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: owner, Tenant: tenant}, nil
}

// Login authenticates by email and password.
func (s *DefaultUserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	account, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, account)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.GetByID(account.TenantID)
	if err != nil {
		s.logger.Warn("failed to load tenant on login", zap.String("tenantId", account.TenantID), zap.Error(err))
	}
	return &AuthResponse{Token: token, User: account, Tenant: tenant}, nil
}

// issueToken signs a JWT and caches its hash so it can be revoked on logout.
func (s *DefaultUserService) issueToken(ctx context.Context, account *models.User) (string, error) {
	token, err := utils.GenerateToken(account.ID, account.TenantID, TokenDuration)
	if err != nil {
		return "", err
	}
	cache := utils.GetAuthCacheClient()
	if err := cache.Set(ctx, utils.AuthCachePrefix+utils.HashToken(token), account.ID, utils.AuthCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache auth token", zap.Error(err))
	}
	return token, nil
}

// Logout drops the cached token hash.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	cache := utils.GetAuthCacheClient()
	return cache.Del(ctx, utils.AuthCachePrefix+utils.HashToken(token)).Err()
}

// GetProfile returns the account for an authenticated user ID.
func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	return s.users.GetByID(userID)
}

// UpdateFCMToken stores the device token for push notifications.
func (s *DefaultUserService) UpdateFCMToken(userID, fcmToken string) error {
	account, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	account.FCMToken = fcmToken
	return s.users.Update(account)
}
