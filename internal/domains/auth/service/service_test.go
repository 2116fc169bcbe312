package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"
)

var now = time.Date(2025, 12, 1, 8, 30, 0, 0, time.UTC)

type fixture struct {
	repo *userMocks.MockUser
	jwt  *jwtMocks.MockJWT
	svc  service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo: userMocks.NewMockUser(ctrl),
		jwt:  jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.repo, &config.Config{}, mocks.NewOtel(), f.jwt, timezone.FixedClock(now))

	return f
}

func staffUser(t *testing.T, secret string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(secret)
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "frontdesk@hotel.test",
		Password: hashed,
		Level:    constant.RoleStaff,
		Active:   true,
		Metadata: gModel.NewMetadata(now.AddDate(0, -1, 0), "admin-1"),
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues tokens and stamps last login", func(t *testing.T) {
		f := newFixture(t)
		user := staffUser(t, "password123")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), user.ID, user.Email, constant.RoleStaff).
			Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod map[string]any, _ any) error {
				assert.Equal(t, now, mod[userModel.FieldLastLogin])
				assert.Equal(t, user.ID, mod[constant.FieldModifiedBy])

				return nil
			})

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, "refresh", res.RefreshToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
		assert.Equal(t, user.ID, res.User.ID)
		require.NotNil(t, res.User.LastLogin)
		assert.Equal(t, "2025-12-01T08:30:00Z", *res.User.LastLogin)
	})

	t.Run("last login failure does not block login", func(t *testing.T) {
		f := newFixture(t)
		user := staffUser(t, "password123")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&jwt.TokenPair{AccessToken: "access"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("conn reset"))

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Nil(t, res.User.LastLogin)
	})

	tests := []struct {
		name     string
		req      dto.LoginRequest
		setup    func(f fixture, user userModel.User)
		wantCode int
		wantKind string
	}{
		{
			name:     "missing password",
			req:      dto.LoginRequest{Email: "frontdesk@hotel.test"},
			setup:    func(fixture, userModel.User) {},
			wantCode: http.StatusBadRequest,
			wantKind: failure.KindMissingField,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password123"},
			setup: func(f fixture, _ userModel.User) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "frontdesk@hotel.test", Password: "not-the-password"},
			setup: func(f fixture, user userModel.User) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "frontdesk@hotel.test", Password: "password123"},
			setup: func(f fixture, user userModel.User) {
				user.Active = false
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusForbidden,
			wantKind: failure.KindForbidden,
		},
		{
			name: "store failure",
			req:  dto.LoginRequest{Email: "frontdesk@hotel.test", Password: "password123"},
			setup: func(f fixture, _ userModel.User) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantKind: failure.KindServerError,
		},
	}

	user := staffUser(t, "password123")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f, user)

			_, err := f.svc.Login(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the pair", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "stale").Return(nil, jwt.ErrExpiredToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "stale"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("empty token", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{})

		assert.True(t, failure.IsKind(err, failure.KindMissingField))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	t.Run("stores a new hash", func(t *testing.T) {
		f := newFixture(t)
		user := staffUser(t, "password123")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod map[string]any, _ any) error {
				hashed, ok := mod[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("brand-new-secret", hashed))
				assert.Equal(t, "user-1", mod[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "brand-new-secret",
		}, "user-1")

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, "password123"), nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "guess-guess",
			NewPassword:     "brand-new-secret",
		}, "user-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "Current password is incorrect", err.Error())
	})

	t.Run("new password must differ", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "password123",
		}, "user-1")

		assert.True(t, failure.IsKind(err, failure.KindInvalidInput))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "brand-new-secret",
		}, "user-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
