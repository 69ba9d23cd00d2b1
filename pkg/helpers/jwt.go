package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates the signed access tokens. A single
// process-wide secret signs both the regular 15-minute session tokens and
// the one-hour admin tokens; the refresh token is opaque and lives in the
// database, not here.
type JWTManager struct {
	Secret    []byte
	AccessTTL time.Duration
	AdminTTL  time.Duration
}

func NewJWTManager(secret string, accessTTL, adminTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:    []byte(secret),
		AccessTTL: accessTTL,
		AdminTTL:  adminTTL,
	}
}

// Claims carried by every access token. IsAdmin is only set on tokens from
// the admin login flow.
type Claims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken mints a short-lived session token for a user.
func (m *JWTManager) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	return m.sign(userID, email, false, m.AccessTTL)
}

// GenerateAdminToken mints the longer admin token carrying the admin flag.
func (m *JWTManager) GenerateAdminToken(userID, email string) (string, time.Time, error) {
	return m.sign(userID, email, true, m.AdminTTL)
}

func (m *JWTManager) sign(userID, email string, admin bool, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ParseAccessToken verifies the signature and expiry and returns the claims.
func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
