package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims for both session kinds. A member token
// carries user_id/username/email, an admin token carries admin_id/admin_name;
// the two are never mixed in one token.
type Claims struct {
	UserID    int64  `json:"user_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	AdminID   int64  `json:"admin_id,omitempty"`
	AdminName string `json:"admin_name,omitempty"`
	jwt.RegisteredClaims
}

// IsMember reports whether the claims belong to a member session.
func (c *Claims) IsMember() bool {
	return c.UserID != 0
}

// IsAdmin reports whether the claims belong to an admin session.
func (c *Claims) IsAdmin() bool {
	return c.AdminID != 0
}

// TokenExpiry is the default token lifetime.
const TokenExpiry = 24 * time.Hour

// GenerateMemberToken creates a new JWT for an approved member.
func GenerateMemberToken(secret string, userID int64, username, email string) (string, error) {
	return generate(secret, Claims{UserID: userID, Username: username, Email: email})
}

// GenerateAdminToken creates a new JWT for an administrator.
func GenerateAdminToken(secret string, adminID int64, name string) (string, error) {
	return generate(secret, Claims{AdminID: adminID, AdminName: name})
}

func generate(secret string, claims Claims) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        jti,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// generateJTI creates a random token ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
