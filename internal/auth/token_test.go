package auth

import (
	"testing"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDecodeUnverified(t *testing.T) {
	token := signToken(t, "whatever", jwt.MapClaims{"id": 12, "roles": "SECRETARY", "cabinetId": 3})

	identity, err := NewDecoder("").Decode(token)
	require.NoError(t, err)

	assert.Equal(t, int64(12), identity.UserID)
	assert.Equal(t, model.RoleSecretary, identity.Role)
	assert.Equal(t, int64(3), identity.CabinetID)
	assert.Nil(t, identity.ExpiresAt)
}

func TestDecodeRoleVariants(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   model.Role
	}{
		{"roles string", jwt.MapClaims{"id": 1, "roles": "ADMIN"}, model.RoleAdmin},
		{"roles array", jwt.MapClaims{"id": 1, "roles": []string{"MEDECIN"}}, model.RoleDoctor},
		{"role claim", jwt.MapClaims{"id": 1, "role": "secretary"}, model.RoleSecretary},
		{"bearer prefix", jwt.MapClaims{"id": 1, "roles": "ADMIN"}, model.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, "k", tt.claims)
			if tt.name == "bearer prefix" {
				token = "Bearer " + token
			}
			identity, err := NewDecoder("").Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, identity.Role)
		})
	}
}

func TestDecodeFailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one part", "abc"},
		{"two parts", "abc.def"},
		{"bad base64", "eyJhbGciOiJIUzI1NiJ9.!!!.sig"},
		{"unknown role", signToken(t, "k", jwt.MapClaims{"id": 1, "roles": "PATIENT"})},
		{"missing id", signToken(t, "k", jwt.MapClaims{"roles": "ADMIN"})},
		{"expired", signToken(t, "k", jwt.MapClaims{"id": 1, "roles": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix()})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := NewDecoder("").Decode(tt.token)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, model.ErrUnauthorized)
		})
	}
}

func TestDecodeVerifiesSignature(t *testing.T) {
	claims := jwt.MapClaims{"id": 5, "roles": "MEDECIN", "exp": time.Now().Add(time.Hour).Unix()}
	d := NewDecoder("secret")
	require.True(t, d.Verifies())

	identity, err := d.Decode(signToken(t, "secret", claims))
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, identity.Role)
	require.NotNil(t, identity.ExpiresAt)

	_, err = d.Decode(signToken(t, "wrong", claims))
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestDecodeUsesClock(t *testing.T) {
	exp := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	token := signToken(t, "k", jwt.MapClaims{"id": 1, "roles": "ADMIN", "exp": exp.Unix()})

	d := NewDecoder("")
	d.now = func() time.Time { return exp.Add(-time.Second) }
	_, err := d.Decode(token)
	require.NoError(t, err)

	d.now = func() time.Time { return exp }
	_, err = d.Decode(token)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
