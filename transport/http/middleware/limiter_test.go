package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name              string
		enable            bool
		headers           map[string]string
		setup             func(c *cacheMocks.MockRedisCache)
		expectedCode      int
		expectedRemaining string
	}{
		{
			name:         "disabled skips redis",
			expectedCode: http.StatusOK,
		},
		{
			name:   "within window",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), "limiter:192.0.2.10:unknown", 60).Return(int64(1), nil)
			},
			expectedCode:      http.StatusOK,
			expectedRemaining: "1",
		},
		{
			name:    "first forwarded hop and agent form the key",
			enable:  true,
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1", "User-Agent": "curl"},
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), "limiter:203.0.113.7:curl", 60).Return(int64(2), nil)
			},
			expectedCode:      http.StatusOK,
			expectedRemaining: "0",
		},
		{
			name:   "over limit",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)
			},
			expectedCode:      http.StatusTooManyRequests,
			expectedRemaining: "0",
		},
		{
			name:   "redis failure lets the request through",
			enable: true,
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("redis down"))
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setup != nil {
				tt.setup(redisCache)
			}

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 2
			cfg.App.RateLimiter.WindowSeconds = 60

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/availability", nil)
			req.RemoteAddr = "192.0.2.10:52100"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.expectedRemaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}
