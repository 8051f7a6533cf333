// Package authenticating handles dashboard operator login and session tokens.
package authenticating

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/pkg/log"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// Account is one configured operator login. Passwords arrive as plaintext
// from configuration and are hashed immediately at startup; only the hash is
// kept in memory.
type Account struct {
	Username string
	Name     string
	Role     string
	Password string
}

// Authenticator issues and validates operator session tokens.
type Authenticator interface {
	LoginUser(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetProfile(username string) (*domain.User, error)
}

type service struct {
	secret []byte
	users  map[string]domain.User
}

func NewService(secret string, accounts []Account) (Authenticator, error) {
	users := make(map[string]domain.User, len(accounts))
	for _, account := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrapf(err, "hashing password for %s", account.Username)
		}
		users[account.Username] = domain.User{
			Username:     account.Username,
			Name:         account.Name,
			Role:         account.Role,
			PasswordHash: string(hash),
		}
	}

	return &service{
		secret: []byte(secret),
		users:  users,
	}, nil
}

// LoginUser verifies the credentials and returns a signed session token.
func (s *service) LoginUser(username, password string) (string, error) {
	user, exists := s.users[username]
	if !exists {
		// Same error as a wrong password, no username probing.
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.L.WithField("username", username).Warn("failed login attempt")
		return "", ErrInvalidCredentials
	}

	return s.generateJWT(user)
}

// ValidateToken parses and verifies a session token, returning its claims.
func (s *service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetProfile returns the operator profile without credential material.
func (s *service) GetProfile(username string) (*domain.User, error) {
	user, exists := s.users[username]
	if !exists {
		return nil, ErrUserNotFound
	}

	user.PasswordHash = ""
	return &user, nil
}

func (s *service) generateJWT(user domain.User) (string, error) {
	now := time.Now()
	claims := domain.Claims{
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return signed, nil
}
