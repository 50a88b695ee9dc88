package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/permission"
	"github.com/instiprop/instiprop-api/internal/domain/score"
	"github.com/instiprop/instiprop-api/internal/domain/user"
	"github.com/instiprop/instiprop-api/internal/pkg/jwt"
	"github.com/instiprop/instiprop-api/internal/pkg/password"
)

// RoleDirectory defines role operations needed by auth
type RoleDirectory interface {
	GetRoleByName(ctx context.Context, name string) (*permission.Role, error)
	PermissionsForRegistration(ctx context.Context, role *permission.Role) ([]string, error)
}

// ScoreKeeper defines score operations needed by auth
type ScoreKeeper interface {
	Add(ctx context.Context, userID int64, delta int) (int, error)
}

// Service handles authentication business logic
type Service struct {
	userRepo user.Repository
	roles    RoleDirectory
	scores   ScoreKeeper
	jwt      *jwt.Service
	redis    *redis.Client // nil if Redis disabled
}

// NewService creates auth service
func NewService(userRepo user.Repository, roles RoleDirectory, scores ScoreKeeper, jwtService *jwt.Service, redis *redis.Client) *Service {
	return &Service{
		userRepo: userRepo,
		roles:    roles,
		scores:   scores,
		jwt:      jwtService,
		redis:    redis,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account.
//
// The requested role is looked up by name ("User" when omitted) and the
// role-granted permission snapshot is derived at creation time. A fresh
// account starts its completeness score with the signup batch.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	// 1. Check if email exists
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	// 2. Resolve role by name
	roleName := req.Role
	if roleName == "" {
		roleName = permission.RoleNameUser
	}
	role, err := s.roles.GetRoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	// 3. Initial role-granted permission snapshot
	rolePerms, err := s.roles.PermissionsForRegistration(ctx, role)
	if err != nil {
		return nil, err
	}

	// 4. Hash password
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	now := time.Now()
	u := &user.User{
		ID:                  uuid.New(),
		Username:            req.Username,
		Name:                req.Name,
		Email:               req.Email,
		MobileNo:            req.MobileNo,
		PasswordHash:        hash,
		RoleID:              role.ID,
		RoleName:            role.Name,
		Status:              user.StatusActive,
		Verified:            true,
		RolePermissions:     rolePerms,
		PermissionOverrides: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	// 6. Signup batch on the completeness score. The account already
	// exists, so a scoring failure is logged rather than surfaced.
	if _, err := s.scores.Add(ctx, u.UniqueID, score.DeltaSignupBatch); err != nil {
		log.Warn().
			Err(err).
			Int64("unique_id", u.UniqueID).
			Msg("failed to apply signup score batch")
	}

	// 7. Generate tokens
	return s.generateTokens(ctx, u)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	// 1. Find user
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 3. Account gates
	if u.IsSuspended() {
		return nil, ErrAccountSuspended
	}
	if !u.Verified {
		return nil, ErrAccountNotVerified
	}

	// 4. Generate tokens
	return s.generateTokens(ctx, u)
}

// Refresh refreshes the token pair using a valid refresh token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	// 1. Validate the refresh JWT itself
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// 2. Check it is still live in Redis (we store hash(refresh))
	refreshHash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.getRefreshToken(ctx, refreshHash)
	if err != nil || userID != claims.UserID {
		return nil, ErrInvalidRefreshToken
	}

	// 3. Get user
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if u.IsSuspended() {
		return nil, ErrAccountSuspended
	}

	// 4. Delete old refresh token (token rotation)
	_ = s.deleteRefreshToken(ctx, refreshHash)

	// 5. Generate new pair
	return s.generateTokens(ctx, u)
}

// Logout invalidates a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.deleteRefreshToken(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns the current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	resp := NewUserResponse(u)
	return &resp, nil
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID, u.UniqueID, u.RoleName)
	if err != nil {
		return nil, err
	}

	refreshToken, _, _, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	// Store hash(refresh) in Redis
	refreshHash := jwt.HashRefreshToken(refreshToken)
	if err := s.storeRefreshToken(ctx, refreshHash, u.ID); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwt.GetAccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

// Redis helpers (handle nil redis gracefully)
func (s *Service) storeRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, "refresh:"+tokenHash, userID.String(), s.jwt.GetRefreshTTL()).Err()
}

func (s *Service) getRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.redis == nil {
		// Without Redis, refresh tokens don't work
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.redis.Get(ctx, "refresh:"+tokenHash).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return uuid.Parse(val)
}

func (s *Service) deleteRefreshToken(ctx context.Context, tokenHash string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, "refresh:"+tokenHash).Err()
}
