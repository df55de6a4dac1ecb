package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken issues an HMAC-signed JWT carrying the user's uid and roles.
func GenerateToken(secret, uid string, roles []string, expiryMinutes int) (string, error) {
	claims := jwt.MapClaims{
		"sub": uid,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates an HMAC-signed JWT and returns its claims.
func ParseToken(secret, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NormalizeRoles flattens the role claims of a token into a deduplicated
// slice. Identity providers ship either a singular "role" (string) or a
// "roles" collection, sometimes both; callers downstream only ever see the
// normalized set.
func NormalizeRoles(claims map[string]interface{}) []string {
	seen := make(map[string]bool)
	var roles []string

	appendRole := func(v interface{}) {
		s, ok := v.(string)
		if !ok || s == "" || seen[s] {
			return
		}
		seen[s] = true
		roles = append(roles, s)
	}

	if v, ok := claims["role"]; ok {
		switch role := v.(type) {
		case []interface{}:
			for _, r := range role {
				appendRole(r)
			}
		default:
			appendRole(role)
		}
	}
	if v, ok := claims["roles"]; ok {
		switch role := v.(type) {
		case []interface{}:
			for _, r := range role {
				appendRole(r)
			}
		case []string:
			for _, r := range role {
				appendRole(r)
			}
		default:
			appendRole(role)
		}
	}

	return roles
}

// HasAnyRole reports whether the normalized role set contains at least one
// of the required roles.
func HasAnyRole(roles, required []string) bool {
	for _, r := range roles {
		for _, want := range required {
			if r == want {
				return true
			}
		}
	}
	return false
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password")
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password against its bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
