package services

import (
	"errors"
	"fmt"
	"time"

	"decaf/internal/models"
	"decaf/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMsg = "Invalid username or credentials"

// AuthService registers users and authenticates logins using either a
// password or an 8-digit numeric PIN.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	bcryptCost int
}

// NewAuthService creates a new AuthService. bcryptCost applies to both
// password and PIN hashing.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user with independently hashed password and PIN.
// The PIN must be exactly eight decimal digits; a taken username fails
// with a conflict, including the case where a concurrent registration
// wins the insert race.
func (s *AuthService) Register(username, password string, pin models.PIN) (*models.User, error) {
	if !pin.Valid() {
		return nil, models.BadRequestError("PIN must be exactly 8 digits")
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, models.ConflictError("Username already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin.String()), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	pinHashStr := string(pinHash)
	user := &models.User{
		Username: username,
		Password: string(passwordHash),
		Pin:      &pinHashStr,
		Role:     "user",
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.ConflictError("Username already exists")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with exactly one of password or PIN and
// returns the user together with a signed session token. Unknown
// usernames and wrong secrets produce the same error so callers cannot
// enumerate accounts.
func (s *AuthService) Login(username, password string, pin models.PIN) (*models.User, string, error) {
	hasPassword := password != ""
	hasPin := pin != ""

	if hasPassword && hasPin {
		return nil, "", models.BadRequestError("Provide either password or PIN, not both")
	}
	if !hasPassword && !hasPin {
		return nil, "", models.BadRequestError("Either password or PIN is required")
	}
	if hasPin && !pin.Valid() {
		return nil, "", models.BadRequestError("PIN must be exactly 8 digits")
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", models.UnauthorizedError(invalidCredentialsMsg)
	}

	if hasPassword {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return nil, "", models.UnauthorizedError(invalidCredentialsMsg)
		}
	} else {
		if user.Pin == nil {
			return nil, "", models.UnauthorizedError(invalidCredentialsMsg)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*user.Pin), []byte(pin.String())); err != nil {
			return nil, "", models.UnauthorizedError(invalidCredentialsMsg)
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// issueToken signs a session token embedding identity and role claims.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a session token, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
