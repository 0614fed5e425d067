package service

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/exam-marks-api/internal/models"
	appErrors "github.com/noah-isme/exam-marks-api/pkg/errors"
)

// AuthConfig defines the admin credential and token settings.
type AuthConfig struct {
	Password     string
	PasswordHash string
	TokenSecret  string
	TokenTTL     time.Duration
	Issuer       string
}

// AuthService exchanges the shared admin secret for a short-lived token.
type AuthService struct {
	config  AuthConfig
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(config AuthConfig, metrics *MetricsService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 12 * time.Hour
	}
	return &AuthService{config: config, metrics: metrics, logger: logger, now: time.Now}
}

// Login checks the admin password and issues a token scoped to mark administration.
func (s *AuthService) Login(req models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	if !s.passwordMatches(req.Password) {
		s.metrics.RecordAdminLogin(false)
		s.logger.Warn("admin login rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid password")
	}

	token, expiresAt, err := s.generateToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin token")
	}

	s.metrics.RecordAdminLogin(true)
	s.logger.Info("admin login succeeded", zap.Time("expires_at", expiresAt))
	return &models.AdminLoginResponse{Success: true, Token: token, ExpiresAt: &expiresAt}, nil
}

func (s *AuthService) passwordMatches(candidate string) bool {
	if candidate == "" {
		return false
	}
	if hash := strings.TrimSpace(s.config.PasswordHash); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	}
	if s.config.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.config.Password)) == 1
}

// ValidateToken parses an admin token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.Scope != models.ScopeMarksAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token lacks admin scope")
	}
	return claims, nil
}

func (s *AuthService) generateToken() (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenTTL)
	claims := &models.AdminClaims{
		Scope: models.ScopeMarksAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
