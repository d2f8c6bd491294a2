package auth_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-nexushr/internal/auth"
	autherrors "go-nexushr/internal/auth/errors"
	authMock "go-nexushr/internal/auth/mock"
	"go-nexushr/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type serviceDeps struct {
	service   auth.Service
	repo      *authMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	repo := authMock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()

	svc := auth.NewService(repo, rdb, auth.TokenConfig{
		Secret:              testSecret,
		AccessTTL:           time.Hour,
		RecoveryTTL:         30 * time.Minute,
		ExposeRecoveryToken: true,
	}, zap.NewNop(), auth.WithRecoveryTokenSource(func() string { return "recovery-123" }))

	return &serviceDeps{service: svc, repo: repo, redismock: redisMock}
}

func newUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:           uuid.New(),
		Email:        "ana@nexushr.io",
		PasswordHash: string(hash),
		Role:         auth.RoleAuthenticated,
	}
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues a signed token", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := newUser(t, "secreto1")

		deps.repo.EXPECT().GetByEmail(ctx, "ana@nexushr.io").Return(user, nil)
		deps.repo.EXPECT().TouchLastSignIn(ctx, user.ID, gomock.Any()).Return(nil)

		session, err := deps.service.SignIn(ctx, "  Ana@NexusHR.io ", "secreto1")

		assert.NoError(t, err)
		assert.Equal(t, "bearer", session.TokenType)
		assert.Equal(t, int64(3600), session.ExpiresIn)
		assert.Equal(t, user.ID.String(), session.User.ID)
		assert.NotEmpty(t, session.User.LastSignInAt)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(session.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims["sub"])
		assert.Equal(t, "ana@nexushr.io", claims["email"])
		assert.Equal(t, auth.RoleAuthenticated, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := newUser(t, "secreto1")

		deps.repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		_, err := deps.service.SignIn(ctx, user.Email, "otra")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().GetByEmail(ctx, "nadie@nexushr.io").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.SignIn(ctx, "nadie@nexushr.io", "x")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("store failure is a remote error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := deps.service.SignIn(ctx, "ana@nexushr.io", "x")
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, apperror.CodeRemoteStore, httpErr.Code)
		assert.Equal(t, "connection refused", httpErr.Message)
	})

	t.Run("last sign in failure does not block the session", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := newUser(t, "secreto1")

		deps.repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
		deps.repo.EXPECT().TouchLastSignIn(ctx, user.ID, gomock.Any()).Return(errors.New("timeout"))

		session, err := deps.service.SignIn(ctx, user.Email, "secreto1")
		assert.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Empty(t, session.User.LastSignInAt)
	})
}

func TestService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes and lower-cases", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *auth.User) error {
				assert.Equal(t, "nuevo@nexushr.io", u.Email)
				assert.Equal(t, auth.RoleAuthenticated, u.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("abc123")))
				return nil
			})

		res, err := deps.service.SignUp(ctx, auth.SignUpRequest{
			Email: "Nuevo@NexusHR.io", Password: "abc123", ConfirmPassword: "abc123",
		})
		assert.NoError(t, err)
		assert.Equal(t, "nuevo@nexushr.io", res.Email)
	})

	t.Run("passwords do not match", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.SignUp(ctx, auth.SignUpRequest{
			Email: "a@b.io", Password: "abc123", ConfirmPassword: "abc124",
		})
		assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)
	})

	t.Run("password too short", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.SignUp(ctx, auth.SignUpRequest{
			Email: "a@b.io", Password: "abc", ConfirmPassword: "abc",
		})
		assert.ErrorIs(t, err, autherrors.ErrPasswordTooShort)
	})

	t.Run("password over 72 bytes is a validation error", func(t *testing.T) {
		deps := setupServiceTest(t)
		long := strings.Repeat("a1", 40)

		_, err := deps.service.SignUp(ctx, auth.SignUpRequest{
			Email: "a@b.io", Password: long, ConfirmPassword: long,
		})
		assert.ErrorIs(t, err, autherrors.ErrPasswordTooLong)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeValidation, httpErr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		_, err := deps.service.SignUp(ctx, auth.SignUpRequest{
			Email: "a@b.io", Password: "abc123", ConfirmPassword: "abc123",
		})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a one time token", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := newUser(t, "secreto1")

		deps.repo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
		deps.redismock.ExpectSet("auth:recovery:recovery-123", user.ID.String(), 30*time.Minute).SetVal("OK")

		res, err := deps.service.RequestPasswordReset(ctx, user.Email)
		assert.NoError(t, err)
		assert.True(t, res.Sent)
		assert.Equal(t, "recovery-123", res.RecoveryToken)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("unknown email answers the same", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().GetByEmail(ctx, "nadie@nexushr.io").Return(nil, gorm.ErrRecordNotFound)

		res, err := deps.service.RequestPasswordReset(ctx, "nadie@nexushr.io")
		assert.NoError(t, err)
		assert.True(t, res.Sent)
		assert.Empty(t, res.RecoveryToken)
	})
}

func TestService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("consumes token and stores new hash", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGetDel("auth:recovery:tok").SetVal(userID.String())
		deps.repo.EXPECT().UpdatePassword(ctx, userID, gomock.Any()).Return(nil)

		err := deps.service.UpdatePassword(ctx, auth.UpdatePasswordRequest{
			RecoveryToken: "tok", Password: "nuevo123", ConfirmPassword: "nuevo123",
		})
		assert.NoError(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("expired token", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGetDel("auth:recovery:tok").RedisNil()

		err := deps.service.UpdatePassword(ctx, auth.UpdatePasswordRequest{
			RecoveryToken: "tok", Password: "nuevo123", ConfirmPassword: "nuevo123",
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRecoveryToken)
	})

	t.Run("weak password keeps the token", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.UpdatePassword(ctx, auth.UpdatePasswordRequest{
			RecoveryToken: "tok", Password: "sinnumero", ConfirmPassword: "sinnumero",
		})
		assert.ErrorIs(t, err, autherrors.ErrPasswordNeedsDigit)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("overlong password keeps the token", func(t *testing.T) {
		deps := setupServiceTest(t)
		long := strings.Repeat("clave123", 10)

		err := deps.service.UpdatePassword(ctx, auth.UpdatePasswordRequest{
			RecoveryToken: "tok", Password: long, ConfirmPassword: long,
		})
		assert.ErrorIs(t, err, autherrors.ErrPasswordTooLong)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().UpdatePassword(ctx, userID, gomock.Any()).Return(nil)

		err := deps.service.ChangePassword(ctx, userID.String(), auth.ChangePasswordRequest{Password: "abcdef"})
		assert.NoError(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.ChangePassword(ctx, userID.String(), auth.ChangePasswordRequest{Password: "abc"})
		assert.ErrorIs(t, err, autherrors.ErrPasswordTooShort)
	})

	t.Run("too long", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.ChangePassword(ctx, userID.String(), auth.ChangePasswordRequest{Password: strings.Repeat("x", 73)})
		assert.ErrorIs(t, err, autherrors.ErrPasswordTooLong)
	})

	t.Run("user removed", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().UpdatePassword(ctx, userID, gomock.Any()).Return(gorm.ErrRecordNotFound)

		err := deps.service.ChangePassword(ctx, userID.String(), auth.ChangePasswordRequest{Password: "abcdef"})
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Me(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		user := newUser(t, "x")

		deps.repo.EXPECT().GetByID(ctx, user.ID).Return(user, nil)

		res, err := deps.service.Me(ctx, user.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, user.Email, res.Email)
	})
}
