package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func organizerHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(organizerHash(t, "hunter2"), testSecret)

	token, expiresAt, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), expiresAt, time.Minute)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleOrganizer, claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)

	_, _, err = svc.Login(ctx, "hunter3")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginDisabled(t *testing.T) {
	svc := NewAuthService("", testSecret)
	_, _, err := svc.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestAuthServiceParseTokenRejects(t *testing.T) {
	svc := NewAuthService(organizerHash(t, "pw"), testSecret)
	valid, _, err := svc.Login(context.Background(), "pw")
	require.NoError(t, err)

	sign := func(claims OrganizerClaims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	now := time.Now()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "tampered signature", token: valid + "A"},
		{name: "other secret", token: sign(OrganizerClaims{
			Role:             RoleOrganizer,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		}, "other")},
		{name: "wrong issuer", token: sign(OrganizerClaims{
			Role:             RoleOrganizer,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		}, testSecret)},
		{name: "expired", token: sign(OrganizerClaims{
			Role:             RoleOrganizer,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))},
		}, testSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
