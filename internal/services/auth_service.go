package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gigcred/backend/internal/config"
	"github.com/gigcred/backend/internal/models"
	jwtpkg "github.com/gigcred/backend/pkg/jwt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrPhoneNotVerified = errors.New("phone number has not been verified")

type AuthService struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   *config.Config
	otp   *OTPService
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, otp *OTPService) *AuthService {
	return &AuthService{
		db:    db,
		redis: redisClient,
		cfg:   cfg,
		otp:   otp,
	}
}

// Register creates a new user account. The phone number must have passed
// verification recently; the code itself is checked by the OTP flow.
func (s *AuthService) Register(name, email, phone, password, role string) (*models.User, error) {
	if role != "freelancer" && role != "client" {
		return nil, errors.New("role must be 'freelancer' or 'client'")
	}

	verified, err := s.otp.IsRecentlyVerified(phone)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrPhoneNotVerified
	}

	var existing models.User
	if err := s.db.Where("email = ? OR phone = ?", email, phone).First(&existing).Error; err == nil {
		if existing.Email == email {
			return nil, errors.New("email already registered")
		}
		return nil, errors.New("phone already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(email, password string) (string, string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, errors.New("invalid credentials")
		}
		return "", "", nil, err
	}

	if !user.IsActive {
		return "", "", nil, errors.New("account is deactivated")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", "", nil, errors.New("invalid credentials")
	}

	accessToken, err := jwtpkg.GenerateToken(user.ID.String(), jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := jwtpkg.GenerateToken(user.ID.String(), jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshTokenDuration),
	}
	if err := s.db.Create(refreshTokenModel).Error; err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, &user, nil
}

// RefreshToken generates new access token from refresh token
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}

	if claims.TokenType != jwtpkg.RefreshToken {
		return "", errors.New("invalid token type")
	}

	var tokenModel models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&tokenModel).Error; err != nil {
		return "", errors.New("refresh token not found")
	}

	if time.Now().After(tokenModel.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	return jwtpkg.GenerateToken(claims.UserID, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
}

// Logout invalidates the refresh tokens and blacklists the access token
// for its remaining lifetime.
func (s *AuthService) Logout(userID uuid.UUID, accessToken string) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return err
	}

	if accessToken != "" {
		ctx := context.Background()
		blacklistKey := fmt.Sprintf("blacklist:token:%s", accessToken)
		if err := s.redis.Set(ctx, blacklistKey, 1, s.cfg.JWTAccessTokenDuration).Err(); err != nil {
			log.Printf("WARN: Could not blacklist access token: %v", err)
		}
	}
	return nil
}

// ValidateAccessToken validates an access token and returns claims
func (s *AuthService) ValidateAccessToken(token string) (*jwtpkg.Claims, error) {
	claims, err := jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != jwtpkg.AccessToken {
		return nil, errors.New("invalid token type")
	}

	// If redis is down, we allow the request to proceed
	ctx := context.Background()
	blacklistKey := fmt.Sprintf("blacklist:token:%s", token)
	exists, err := s.redis.Exists(ctx, blacklistKey).Result()
	if err != nil {
		log.Printf("WARN: Could not connect to Redis to check token blacklist: %v", err)
	} else if exists > 0 {
		return nil, errors.New("token is blacklisted")
	}

	return claims, nil
}

// ResetPassword sets a new password for the account that owns the phone.
// The phone must have completed verification recently.
func (s *AuthService) ResetPassword(phone, newPassword string) error {
	verified, err := s.otp.IsRecentlyVerified(phone)
	if err != nil {
		return err
	}
	if !verified {
		return ErrPhoneNotVerified
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.User{}).Where("phone = ?", phone).Update("password", string(hashed))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	// Force re-login everywhere
	return s.db.Where("user_id IN (?)",
		s.db.Model(&models.User{}).Select("id").Where("phone = ?", phone),
	).Delete(&models.RefreshToken{}).Error
}

// CleanupExpiredTokens removes expired refresh tokens
func (s *AuthService) CleanupExpiredTokens() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}
