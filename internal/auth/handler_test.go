package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"
	"portal-backend/internal/testutil"
	"portal-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	testutil.SetupDB(t)

	cfg := &config.Config{JWTSecret: "test-secret-test-secret-test-secret!"}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Beklenmeyen sunucu hatası"})
		},
	})

	app.Post("/auth/sign-up", SignUpHandler(cfg))
	app.Post("/auth/sign-in", SignInHandler(cfg))
	app.Patch("/auth/verify/:token", VerifyHandler(cfg))
	app.Get("/auth/user/:token", GetUserByTokenHandler())

	protected := app.Group("")
	protected.Use(JWTMiddleware(cfg))
	protected.Post("/auth/sign-out", SignOutHandler())
	protected.Get("/auth/session", SessionHandler())

	return app, cfg
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("istek gövdesi kodlanamadı: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func tokenCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == TokenCookieName {
			return c
		}
	}
	return nil
}

func TestSignUpSignInFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up",
		fiber.Map{"email": "Owner@Example.com", "password": "gizli-sifre"}))
	if err != nil {
		t.Fatalf("sign-up isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("sign-up durum kodu %d, 201 bekleniyordu", resp.StatusCode)
	}
	cookie := tokenCookie(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("sign-up access-token cookie'si set etmedi")
	}
	if !cookie.HttpOnly {
		t.Fatal("access-token cookie'si HttpOnly olmalı")
	}

	// Email küçük harfe çevrilerek saklanır
	var user models.User
	if err := database.DB.Where("email = ?", "owner@example.com").First(&user).Error; err != nil {
		t.Fatalf("kullanıcı kaydı bulunamadı: %v", err)
	}
	if user.LastLogin != nil {
		t.Fatal("yeni kullanıcıda last_login dolu olmamalı")
	}

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-in",
		fiber.Map{"email": "owner@example.com", "password": "gizli-sifre"}))
	if err != nil {
		t.Fatalf("sign-in isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("sign-in durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
	if tokenCookie(resp) == nil {
		t.Fatal("sign-in access-token cookie'si set etmedi")
	}

	if err := database.DB.Where("email = ?", "owner@example.com").First(&user).Error; err != nil {
		t.Fatalf("kullanıcı kaydı bulunamadı: %v", err)
	}
	if user.LastLogin == nil {
		t.Fatal("başarılı girişten sonra last_login güncellenmeli")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	body := fiber.Map{"email": "owner@example.com", "password": "gizli-sifre"}
	if resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up", body)); err != nil || resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("ilk kayıt başarısız: %v", err)
	}

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up", body))
	if err != nil {
		t.Fatalf("ikinci kayıt isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("duplicate kayıt durum kodu %d, 400 bekleniyordu", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("cevap çözümlenemedi: %v", err)
	}
	if payload["error"] != "email-exists" {
		t.Fatalf("beklenmeyen hata mesajı: %q", payload["error"])
	}
}

func TestSignInWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	if resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up",
		fiber.Map{"email": "owner@example.com", "password": "gizli-sifre"})); err != nil || resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("kayıt başarısız: %v", err)
	}

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-in",
		fiber.Map{"email": "owner@example.com", "password": "yanlis-sifre"}))
	if err != nil {
		t.Fatalf("sign-in isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("yanlış şifre durum kodu %d, 401 bekleniyordu", resp.StatusCode)
	}

	// Başarısız giriş last_login'i değiştirmez
	var user models.User
	if err := database.DB.Where("email = ?", "owner@example.com").First(&user).Error; err != nil {
		t.Fatalf("kullanıcı kaydı bulunamadı: %v", err)
	}
	if user.LastLogin != nil {
		t.Fatal("başarısız girişte last_login güncellenmemeli")
	}

	// Bilinmeyen email de aynı cevabı alır
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-in",
		fiber.Map{"email": "yok@example.com", "password": "gizli-sifre"}))
	if err != nil {
		t.Fatalf("sign-in isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("bilinmeyen email durum kodu %d, 401 bekleniyordu", resp.StatusCode)
	}
}

func TestSessionAndSignOut(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up",
		fiber.Map{"email": "owner@example.com", "password": "gizli-sifre"}))
	if err != nil || resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("kayıt başarısız: %v", err)
	}
	cookie := tokenCookie(resp)

	// Cookie olmadan korumalı uca erişilemez
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/session", nil))
	if err != nil {
		t.Fatalf("session isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("token'sız session durum kodu %d, 401 bekleniyordu", resp.StatusCode)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/auth/session", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("session isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("session durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}

	var session map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("session cevabı çözümlenemedi: %v", err)
	}
	if session["email"] != "owner@example.com" {
		t.Fatalf("beklenmeyen session email'i: %v", session["email"])
	}

	// Bearer header ile de erişilir
	req = httptest.NewRequest(fiber.MethodGet, "/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("session isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("bearer session durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodPost, "/auth/sign-out", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("sign-out isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("sign-out durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
	cleared := tokenCookie(resp)
	if cleared == nil || cleared.Value != "" {
		t.Fatal("sign-out cookie'yi temizlemedi")
	}
}

func TestVerifyLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up",
		fiber.Map{"email": "owner@example.com", "password": "gizli-sifre"}))
	if err != nil || resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("kayıt başarısız: %v", err)
	}

	owner, err := users.FindByEmail("owner@example.com")
	if err != nil || owner == nil {
		t.Fatalf("sahip bulunamadı: %v", err)
	}

	invited, token, err := users.CreateWithoutPassword(users.InviteInput{
		Email:     "worker@example.com",
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
		CompanyID: *owner.CompanyID,
	})
	if err != nil {
		t.Fatalf("davet başarısız: %v", err)
	}

	// Davet sayfası token sahibini döndürür
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/user/"+token, nil))
	if err != nil {
		t.Fatalf("user-by-token isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("user-by-token durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
	var info map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("cevap çözümlenemedi: %v", err)
	}
	if info["email"] != "worker@example.com" {
		t.Fatalf("beklenmeyen email: %v", info["email"])
	}

	resp, err = app.Test(jsonRequest(t, fiber.MethodPatch, "/auth/verify/"+token,
		fiber.Map{"password": "yeni-sifre"}))
	if err != nil {
		t.Fatalf("verify isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("verify durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
	if tokenCookie(resp) == nil {
		t.Fatal("verify access-token cookie'si set etmedi")
	}

	// Şifre yazılmış olmalı
	verified, err := users.GetByID(invited.ID)
	if err != nil {
		t.Fatalf("kullanıcı bulunamadı: %v", err)
	}
	if verified.Hash == "" || verified.Salt == "" {
		t.Fatal("doğrulama şifreyi kaydetmemiş")
	}

	// Token tek kullanımlıktır
	resp, err = app.Test(jsonRequest(t, fiber.MethodPatch, "/auth/verify/"+token,
		fiber.Map{"password": "baska-sifre"}))
	if err != nil {
		t.Fatalf("ikinci verify isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("kullanılmış token durum kodu %d, 400 bekleniyordu", resp.StatusCode)
	}

	// Doğrulanan kullanıcı yeni şifresiyle giriş yapabilir
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-in",
		fiber.Map{"email": "worker@example.com", "password": "yeni-sifre"}))
	if err != nil {
		t.Fatalf("sign-in isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("doğrulanan kullanıcı girişi durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/auth/sign-up",
		fiber.Map{"email": "owner@example.com", "password": "gizli-sifre"}))
	if err != nil || resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("kayıt başarısız: %v", err)
	}
	owner, err := users.FindByEmail("owner@example.com")
	if err != nil || owner == nil {
		t.Fatalf("sahip bulunamadı: %v", err)
	}

	expired := models.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    owner.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := database.DB.Create(&expired).Error; err != nil {
		t.Fatalf("token kaydedilemedi: %v", err)
	}

	resp, err = app.Test(jsonRequest(t, fiber.MethodPatch,
		fmt.Sprintf("/auth/verify/%s", expired.Token), fiber.Map{"password": "yeni-sifre"}))
	if err != nil {
		t.Fatalf("verify isteği başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("süresi dolmuş token durum kodu %d, 400 bekleniyordu", resp.StatusCode)
	}
}
