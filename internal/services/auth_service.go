package services

import (
	"fmt"
	"log"
	"time"

	"sako/internal/models"
	"sako/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService guards the API with the stall owner's account. The app
// serves one stall, so registration is a one-time bootstrap: once an
// owner exists, further registrations are rejected.
type AuthService struct {
	ownerRepo repositories.OwnerRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(ownerRepo repositories.OwnerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		ownerRepo: ownerRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// RegisterOwner creates the stall's owner account. It fails when an
// owner already exists, keeping the account unique. The password is
// bcrypt-hashed before it is stored.
func (s *AuthService) RegisterOwner(owner *models.Owner) error {
	if existing, err := s.ownerRepo.Get(); err == nil && existing != nil {
		return fmt.Errorf("owner account already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(owner.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	owner.Password = string(hashedPassword)

	if err := s.ownerRepo.Create(owner); err != nil {
		return fmt.Errorf("failed to create owner account: %w", err)
	}
	return nil
}

// Login authenticates the owner and returns a signed JWT.
func (s *AuthService) Login(username, password string) (string, error) {
	owner, err := s.ownerRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"owner_id": owner.ID,
		"username": owner.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
