package auth

import (
	"testing"
	"time"

	"portal-backend/internal/models"
)

const testSecret = "test-secret-test-secret-test-secret!"

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{Email: "test@example.com"}
	user.ID = 42

	token, err := GenerateToken(testSecret, user)
	if err != nil {
		t.Fatalf("token oluşturulamadı: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("token çözümlenemedi: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("beklenmeyen user_id: %d", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Fatalf("beklenmeyen email: %s", claims.Email)
	}

	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Fatalf("beklenmeyen token süresi: %v", ttl)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &models.User{Email: "test@example.com"}
	user.ID = 1

	token, err := GenerateToken(testSecret, user)
	if err != nil {
		t.Fatalf("token oluşturulamadı: %v", err)
	}

	if _, err := ParseToken("baska-bir-secret-baska-bir-secret!!!", token); err == nil {
		t.Fatal("yanlış secret ile token kabul edildi")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "bu-bir-jwt-degil"); err == nil {
		t.Fatal("bozuk token kabul edildi")
	}
}
