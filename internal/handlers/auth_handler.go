package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gigcred/backend/internal/config"
	"github.com/gigcred/backend/internal/services"
	"github.com/gigcred/backend/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OTPService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, otpService *services.OTPService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
		cfg:         cfg,
	}
}

// respondOTPError translates verification flow errors into HTTP responses.
func respondOTPError(c *gin.Context, err error) {
	var throttled *services.ThrottledError
	var invalid *services.InvalidCodeError

	switch {
	case errors.As(err, &throttled):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":         "Too many failed attempts",
			"blocked_until": throttled.Until.UTC().Format(time.RFC3339),
		})
	case errors.Is(err, services.ErrResendCooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "A code was sent recently, please wait before requesting another"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              "Invalid verification code",
			"attempts_remaining": invalid.AttemptsRemaining,
		})
	case errors.Is(err, services.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No active verification code for this phone"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
	}
}

// SendOTP issues a verification code for a phone number
// POST /auth/otp/send
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validation.ValidatePhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format"})
		return
	}

	code, err := h.otpService.Send(req.Phone)
	if err != nil {
		respondOTPError(c, err)
		return
	}

	resp := gin.H{"message": "Verification code sent"}
	// Surface the code outside production so the flow can be exercised
	// without a real SMS provider.
	if h.cfg.Env != "production" {
		resp["code"] = code
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP checks a candidate verification code
// POST /auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpService.Verify(req.Phone, req.Code); err != nil {
		respondOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validation.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if !validation.ValidatePhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format"})
		return
	}

	if !validation.ValidatePassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"})
		return
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Phone, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrPhoneNotVerified) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Phone number must be verified before registration"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":                user.ID,
			"name":              user.Name,
			"email":             user.Email,
			"role":              user.Role,
			"credibility_score": user.CredibilityScore,
		},
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	accessToken := c.GetString("accessToken")

	if err := h.authService.Logout(userID.(uuid.UUID), accessToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// ResetPassword sets a new password after a fresh phone verification
// POST /auth/password/reset
// Body: {"phone": "...", "code": "...", "new_password": "..."}
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Phone       string `json:"phone" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validation.ValidatePassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"})
		return
	}

	if err := h.otpService.Verify(req.Phone, req.Code); err != nil {
		respondOTPError(c, err)
		return
	}

	if err := h.authService.ResetPassword(req.Phone, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account for this phone number"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
