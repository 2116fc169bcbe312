package dto_test

import (
	"encoding/json"
	"testing"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	userDto "hotel/internal/domains/user/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pair = &jwt.TokenPair{
	AccessToken:  "access",
	RefreshToken: "refresh",
	TokenType:    "Bearer",
	ExpiresIn:    900,
}

func TestLoginResponse_JSONShape(t *testing.T) {
	res := dto.LoginResponse{User: userDto.UserResponse{ID: "u-1", Email: "desk@hotel.test", Level: "staff"}}
	res.FromTokenPair(pair)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "access", body["access_token"])
	assert.Equal(t, "refresh", body["refresh_token"])
	assert.Equal(t, "Bearer", body["token_type"])
	assert.InDelta(t, 900, body["expires_in"], 0)
	assert.Equal(t, "u-1", body["user"].(map[string]any)["id"])
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	var res dto.RefreshTokenResponse
	res.FromTokenPair(pair)

	assert.Equal(t, dto.Tokens{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, res.Tokens)
}
