package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/ports"
	"github.com/google/uuid"
)

type authClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	users  ports.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users ports.UserRepository, secret []byte, ttl time.Duration) *authService {
	return &authService{
		users:  users,
		secret: secret,
		ttl:    ttl,
	}
}

func (s *authService) Register(ctx context.Context, request *models.RegisterRequest) (*models.User, error) {
	_, err := s.users.GetUserByUsername(ctx, request.Username)
	if err == nil {
		return nil, models.ErrUsernameTaken
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     request.Username,
		Email:        request.Email,
		Phone:        request.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, request *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetUserByUsername(ctx, request.Username)
	if err != nil {
		// uniform response whether the user is missing or the password
		// is wrong
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &models.LoginResponse{
		Token:    token,
		Username: user.Username,
	}, nil
}

func (s *authService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, models.ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, models.ErrInvalidToken
	}
	return user, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := authClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
