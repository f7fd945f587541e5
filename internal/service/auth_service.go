package service

import (
	"context"
	"errors"

	"comicdash/internal/models"
	"comicdash/internal/platform/authclient"
	"comicdash/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is what the middleware extracts from a verified session token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// AuthService proxies sign-in/sign-up/sign-out to the hosted auth service and
// verifies its HS256 session tokens locally with the shared secret.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*authclient.Session, error)
	Signup(ctx context.Context, name, email, password string) (*authclient.Session, error)
	Logout(ctx context.Context, accessToken string) error
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	auth      *authclient.Client
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewAuthService(auth *authclient.Client, userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{
		auth:      auth,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*authclient.Session, error) {
	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		if authclient.IsUnauthorized(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return session, nil
}

// Signup registers the account with the auth service, then inserts the
// matching profile row so fetchUser finds exactly one row for the new id.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*authclient.Session, error) {
	session, err := s.auth.SignUp(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:    session.User.ID,
		Name:  name,
		Email: email,
		Role:  "user",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	return s.auth.SignOut(ctx, accessToken)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
