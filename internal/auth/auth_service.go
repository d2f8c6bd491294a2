package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-nexushr/internal/auth/errors"
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const recoveryKeyPrefix = "auth:recovery:"

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	SignIn(ctx context.Context, email, password string) (SessionResponse, error)
	SignUp(ctx context.Context, req SignUpRequest) (AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (RecoveryResponse, error)
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	Me(ctx context.Context, userID string) (AuthResponse, error)
}

type TokenConfig struct {
	Secret      string
	AccessTTL   time.Duration
	RecoveryTTL time.Duration
	// ExposeRecoveryToken returns the token in the API response. Off in
	// production.
	ExposeRecoveryToken bool
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	cfg      TokenConfig
	logger   *zap.Logger
	now      func() time.Time
	newToken func() string
}

type Option func(*service)

// WithRecoveryTokenSource replaces the random recovery token generator.
func WithRecoveryTokenSource(fn func() string) Option {
	return func(s *service) { s.newToken = fn }
}

func NewService(repo Repository, rdb *redis.Client, cfg TokenConfig, logger *zap.Logger, opts ...Option) Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RecoveryTTL <= 0 {
		cfg.RecoveryTTL = time.Hour
	}
	if logger == nil {
		logger = zap.L()
	}
	s := &service{
		repo:     repo,
		rdb:      rdb,
		cfg:      cfg,
		logger:   logger.Named("auth.service"),
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SignIn(ctx context.Context, email, password string) (SessionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, apperror.Remote(err)
		}
		log.Info("sign in rejected", zap.String("reason", "unknown email"))
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info("sign in rejected", zap.String("user_id", user.ID.String()), zap.String("reason", "password"))
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.generateToken(user, now)
	if err != nil {
		log.Error("sign token failed", zap.Error(err))
		return SessionResponse{}, autherrors.ErrTokenGenerationFailed
	}

	if err := s.repo.TouchLastSignIn(ctx, user.ID, now); err != nil {
		log.Warn("record last sign in failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.LastSignInAt = &now
	}

	log.Info("sign in success", zap.String("user_id", user.ID.String()))
	return SessionResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.cfg.AccessTTL.Seconds()),
		User:        mapToResponse(user),
	}, nil
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (AuthResponse, error) {
	if err := ValidateSignUpPassword(req.Password, req.ConfirmPassword); err != nil {
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hashed),
		Role:         RoleAuthenticated,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, apperror.Remote(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("sign up success", zap.String("user_id", user.ID.String()))
	return mapToResponse(user), nil
}

// RequestPasswordReset answers the same way whether or not the email exists.
func (s *service) RequestPasswordReset(ctx context.Context, email string) (RecoveryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return RecoveryResponse{}, apperror.Remote(err)
		}
		log.Debug("password reset for unknown email ignored")
		return RecoveryResponse{Sent: true}, nil
	}

	token := s.newToken()
	if err := s.rdb.Set(ctx, recoveryKeyPrefix+token, user.ID.String(), s.cfg.RecoveryTTL).Err(); err != nil {
		log.Error("store recovery token failed", zap.Error(err))
		return RecoveryResponse{}, apperror.Remote(err)
	}

	log.Debug("recovery token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("recovery_token", token),
		zap.Duration("ttl", s.cfg.RecoveryTTL),
	)

	resp := RecoveryResponse{Sent: true}
	if s.cfg.ExposeRecoveryToken {
		resp.RecoveryToken = token
	}
	return resp, nil
}

// UpdatePassword consumes a recovery token. The token survives a rejected
// password so the user can retry from the same link.
func (s *service) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if err := ValidateRecoveryPassword(req.Password, req.ConfirmPassword); err != nil {
		return err
	}

	userID, err := s.rdb.GetDel(ctx, recoveryKeyPrefix+req.RecoveryToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return autherrors.ErrInvalidRecoveryToken
		}
		return apperror.Remote(err)
	}

	return s.setPassword(ctx, userID, req.Password)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := ValidateSettingsPassword(req.Password); err != nil {
		return err
	}
	return s.setPassword(ctx, userID, req.Password)
}

func (s *service) setPassword(ctx context.Context, userID, password string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		return apperror.Remote(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("password updated", zap.String("user_id", userID))
	return nil
}

func (s *service) Me(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return mapToResponse(u), nil
}

func (s *service) generateToken(user *User, now time.Time) (string, error) {
	role := user.Role
	if role == "" {
		role = RoleAuthenticated
	}
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.AccessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapToResponse(u *User) AuthResponse {
	resp := AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Role:  u.Role,
	}
	if u.LastSignInAt != nil {
		resp.LastSignInAt = u.LastSignInAt.UTC().Format(time.RFC3339)
	}
	return resp
}
