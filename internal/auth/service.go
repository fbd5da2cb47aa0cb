package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long issued access tokens stay valid
const TokenTTL = time.Hour

// Claims represents JWT token claims
type Claims struct {
	UserID   uuid.UUID `json:"user_id" example:"2b1c8f1e-9b1a-4a5e-8f3d-4d2c1a0b9e8f"`
	Email    string    `json:"email" example:"jane.doe@example.com"`
	FullName string    `json:"full_name" example:"Jane Doe"`
	jwt.RegisteredClaims
}

// Service issues and validates JWT access tokens
type Service struct {
	secret []byte
}

// NewService creates a new authentication service
func NewService(jwtSecret string) *Service {
	return &Service{secret: []byte(jwtSecret)}
}

// GenerateToken creates a signed JWT for the user
func (s *Service) GenerateToken(userID uuid.UUID, email, fullName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "contacthub-backend",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates and parses a JWT token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
