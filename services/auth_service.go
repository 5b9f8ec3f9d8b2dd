package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vonvha/Nutri-Smart/models"
	"github.com/vonvha/Nutri-Smart/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// IdentityResolver maps a bearer credential to the user's email.
type IdentityResolver interface {
	ResolveIdentity(credential string) (string, error)
}

// TokenIssuer mints the credential handed out on login.
type TokenIssuer interface {
	IssueToken(email string) (string, error)
}

// JWTTokens issues and validates HS256 tokens.
type JWTTokens struct {
	Secret []byte
	TTL    time.Duration
}

func (t JWTTokens) IssueToken(email string) (string, error) {
	return utils.GenerateJWT(email, t.Secret, t.TTL)
}

func (t JWTTokens) ResolveIdentity(credential string) (string, error) {
	email, err := utils.ParseJWT(credential, t.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return email, nil
}

const fakeTokenSuffix = "-fake-jwt-token"

// FakeTokens is the development scheme where the token is the email plus a
// fixed suffix. It performs no verification.
type FakeTokens struct{}

func (FakeTokens) IssueToken(email string) (string, error) {
	return email + fakeTokenSuffix, nil
}

func (FakeTokens) ResolveIdentity(credential string) (string, error) {
	email, ok := strings.CutSuffix(credential, fakeTokenSuffix)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest also binds the OAuth2 password form (username/password).
type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserSummary `json:"user"`
}

type AuthService struct {
	db     *gorm.DB
	tokens TokenIssuer
}

func NewAuthService(db *gorm.DB, tokens TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserSummary, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, Name: req.Name, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &UserSummary{Name: user.Name, Email: user.Email}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        UserSummary{Name: user.Name, Email: user.Email},
	}, nil
}
