package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"redsocial/internal/config"
	"redsocial/internal/models"
	"redsocial/internal/repository"
	"redsocial/internal/storage"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest, avatar *Upload) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UsernameFromToken(tokenString string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest, avatar *Upload) (*models.User, error) {
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	if avatar != nil {
		avatarURL, err := s.storage.Upload(ctx, "avatars", avatar.FileName, avatar.Reader, avatar.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to upload avatar: %w", err)
		}
		user.AvatarURL = avatarURL
	}

	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"exp":      time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) UsernameFromToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("token has no username claim")
	}

	return username, nil
}
