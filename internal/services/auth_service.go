package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/config"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/aerointel/aerointel-backend/internal/policy"
	"github.com/aerointel/aerointel-backend/internal/store"
)

const bcryptCost = 10

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	store  store.Store
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store:  st,
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) {
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleAnalyst
	}
	if !role.Valid() {
		return nil, "", apperr.Validation("Invalid role. Must be one of: analyst, manager, executive, admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if findUserByEmail(doc, email) != nil {
		return nil, "", &apperr.Error{Kind: apperr.KindConflict, Message: "User with this email already exists", Err: ErrEmailTaken}
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
	}
	doc.Users = append(doc.Users, user)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, "", err
	}

	user := findUserByEmail(doc, strings.ToLower(strings.TrimSpace(req.Email)))
	if user == nil || !user.IsActive {
		return nil, "", invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", invalidCredentials()
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Refresh re-issues a token for a still-valid one whose user exists and is active.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*models.User, string, error) {
	if raw == "" {
		return nil, "", apperr.Validation("Token is required")
	}

	p, err := s.ParseToken(raw)
	if err != nil {
		return nil, "", &apperr.Error{Kind: apperr.KindAuthentication, Message: "Invalid or expired token", Err: err}
	}

	user, err := s.Me(ctx, p.UserID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me returns the active user behind a token subject.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == userID && doc.Users[i].IsActive {
			return &doc.Users[i], nil
		}
	}
	return nil, &apperr.Error{Kind: apperr.KindAuthentication, Message: "User not found or deactivated", Err: ErrUserNotFound}
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the caller.
func (s *AuthService) ParseToken(raw string) (policy.Principal, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return policy.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Principal{}, ErrInvalidToken
	}
	p, ok := PrincipalFromClaims(claims)
	if !ok {
		return policy.Principal{}, ErrInvalidToken
	}
	return p, nil
}

// PrincipalFromClaims reads the caller out of verified token claims.
func PrincipalFromClaims(claims jwt.MapClaims) (policy.Principal, bool) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return policy.Principal{}, false
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return policy.Principal{UserID: sub, Email: email, Name: name, Role: models.Role(role)}, true
}

func findUserByEmail(doc *store.Document, email string) *models.User {
	for i := range doc.Users {
		if strings.EqualFold(doc.Users[i].Email, email) {
			return &doc.Users[i]
		}
	}
	return nil
}

func invalidCredentials() error {
	return &apperr.Error{Kind: apperr.KindAuthentication, Message: "Invalid email or password", Err: ErrInvalidCredentials}
}
