package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "bearer"

// RegisterInput is the data needed to open an account
type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	DateOfBirth *string
	PhotoURL    *string
}

// Register creates a new user with hashed password and signs them in
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		DateOfBirth:  in.DateOfBirth,
		PhotoURL:     in.PhotoURL,
		IsActive:     true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Infof("User registered: %s", user.Email)
	return s.authResponse(user)
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.store.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, models.ErrInactiveUser
	}

	s.log.WithField("user_id", user.ID).Infof("User logged in: %s", user.Email)
	return s.authResponse(user)
}

// Authenticate validates a bearer token and returns its active user
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidToken
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, models.ErrInvalidToken
	}

	user, err := s.store.FindUserByID(ctx, subject)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrInactiveUser
	}
	return user, nil
}

func (s *Service) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.issueToken(user.ID, time.Now())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, TokenType: tokenType, User: user}, nil
}

func (s *Service) issueToken(userID string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Error("Failed to sign token")
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// normalizeEmail makes addresses differing only in case or surrounding
// whitespace the same account on every backend
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
