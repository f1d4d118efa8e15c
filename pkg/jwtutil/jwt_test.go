package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	companyID := uint(12)
	token, err := util.GenerateToken("owner@acme.example", 7, &companyID, "company")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.example", claims.Email)
	assert.Equal(t, uint(7), claims.UserID)
	require.NotNil(t, claims.CompanyID)
	assert.Equal(t, uint(12), *claims.CompanyID)
	assert.Equal(t, "company", claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestValidateToken_WrongKey(t *testing.T) {
	issuer := NewJWTUtil(&JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	verifier := NewJWTUtil(&JWTConfig{SigningKey: "key-two", ExpirationHours: 1})

	token, err := issuer.GenerateToken("admin@platform.example", 1, nil, "admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestAdminClaims(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := util.GenerateToken("admin@platform.example", 1, nil, "admin")
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
	assert.Nil(t, claims.CompanyID)
}
