package jwt

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-123", AccessToken, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, AccessToken)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", AccessToken, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-123", RefreshToken, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, testSecret); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}
