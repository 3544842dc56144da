package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/latia/admin-api/pkg/oauth"
	"github.com/latia/admin-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles sign-in, token refresh and the Google OAuth flow.
// Authentication only establishes identity; whether an account may use the
// panel is decided separately by the admin allow-list.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	googleSvc  *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	googleSvc *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		googleSvc:  googleSvc,
	}
}

// TokenPair holds a freshly issued access and refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) issueTokens(user *entity.User) (*TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login authenticates with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.Password == "" {
		// OAuth-only accounts carry no password; the comparison below would
		// reject them anyway, but keep the error uniform
		return nil, nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetProfile returns the authenticated user's account
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// GoogleAuthURL returns the consent URL for the Google sign-in flow
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.googleSvc.IsConfigured() {
		return "", apperror.NewBadRequestError("Google OAuth is not configured")
	}
	return s.googleSvc.GetAuthURL(state), nil
}

// HandleGoogleCallback exchanges the authorization code, then finds or
// creates the matching account. Accounts created this way have no password
// and can only sign in through Google.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*entity.User, *TokenPair, error) {
	if !s.googleSvc.IsConfigured() {
		return nil, nil, apperror.NewBadRequestError("Google OAuth is not configured")
	}

	token, err := s.googleSvc.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	info, err := s.googleSvc.GetUserInfo(ctx, token)
	if err != nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		user = &entity.User{
			Name:  info.Name,
			Email: info.Email,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, err
		}
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}
