package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrMalformedSubject = errors.New("token payload malformed: userId must be a plain string")
)

// Identity is the normalized result of verifying a credential. Downstream
// code only ever sees a plain string identifier.
type Identity struct {
	UserID string
	Role   string
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting the user's identifier and role.
func (tm *TokenManager) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"iat":    now.Unix(),
		"exp":    now.Add(tm.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the normalized identity.
func (tm *TokenManager) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := NormalizeSubject(claims["userId"])
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)

	return &Identity{UserID: userID, Role: role}, nil
}

// NormalizeSubject unwraps the known payload-shape quirk where the user
// identifier arrives nested one level under a wrapper key ({"User": "<id>"}).
// Anything that does not normalize to a non-empty string is rejected.
func NormalizeSubject(v interface{}) (string, error) {
	switch sub := v.(type) {
	case string:
		if sub == "" {
			return "", ErrMalformedSubject
		}
		return sub, nil
	case map[string]interface{}:
		inner, ok := sub["User"].(string)
		if !ok || inner == "" {
			return "", ErrMalformedSubject
		}
		return inner, nil
	default:
		return "", ErrMalformedSubject
	}
}
