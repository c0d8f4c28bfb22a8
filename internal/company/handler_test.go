package company

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"portal-backend/internal/models"
	"portal-backend/internal/testutil"
	"portal-backend/internal/users"

	"github.com/gofiber/fiber/v2"
)

// test uygulaması JWT yerine user_id'yi doğrudan Locals'a koyan bir
// middleware kullanır.
func newTestApp(t *testing.T, userID *uint) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Beklenmeyen sunucu hatası"})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", *userID)
		return c.Next()
	})

	app.Post("/company", CreateCompanyHandler())
	app.Get("/company", GetCompanyHandler())
	app.Get("/company/get-users-of-company", GetUsersOfCompanyHandler())
	app.Get("/company/get-company-by-id/:companyId", GetCompanyByIDHandler())

	return app
}

func TestCreateCompanyConflict(t *testing.T) {
	testutil.SetupDB(t)

	// Kayıt akışı sahibe zaten bir şirket açar
	owner, err := users.CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("kayıt başarısız: %v", err)
	}

	app := newTestApp(t, &owner.ID)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/company", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("ikinci şirket durum kodu %d, 409 bekleniyordu", resp.StatusCode)
	}
}

func TestGetCompanyOwnerAndMemberFallback(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := users.CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("kayıt başarısız: %v", err)
	}
	member, _, err := users.CreateWithoutPassword(users.InviteInput{
		Email:     "worker@example.com",
		CompanyID: *owner.CompanyID,
	})
	if err != nil {
		t.Fatalf("davet başarısız: %v", err)
	}

	currentUser := owner.ID
	app := newTestApp(t, &currentUser)

	// Sahip kendi şirketini görür
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/company", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("sahip için durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
	var got CompanyResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("cevap çözümlenemedi: %v", err)
	}
	if got.OwnerID != owner.ID {
		t.Fatalf("beklenmeyen şirket sahibi: %d", got.OwnerID)
	}

	// Üye, sahibi olmadığı şirketi üyelik üzerinden görür
	currentUser = member.ID
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/company", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("üye için durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("cevap çözümlenemedi: %v", err)
	}
	if got.ID != *owner.CompanyID {
		t.Fatalf("üye yanlış şirketi gördü: %d", got.ID)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	db := testutil.SetupDB(t)

	// Şirketi ve üyeliği olmayan kullanıcı
	user := models.User{Email: "lonely@example.com", Hash: "h", Salt: "s"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}

	app := newTestApp(t, &user.ID)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/company", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("durum kodu %d, 404 bekleniyordu", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/company/get-company-by-id/999", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("durum kodu %d, 404 bekleniyordu", resp.StatusCode)
	}
}

func TestGetUsersOfCompany(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := users.CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("kayıt başarısız: %v", err)
	}
	if _, _, err := users.CreateWithoutPassword(users.InviteInput{
		Email:     "worker@example.com",
		FirstName: "Ayşe",
		CompanyID: *owner.CompanyID,
	}); err != nil {
		t.Fatalf("davet başarısız: %v", err)
	}

	app := newTestApp(t, &owner.ID)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/company/get-users-of-company", nil))
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("durum kodu %d, 200 bekleniyordu", resp.StatusCode)
	}

	var members []companyUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		t.Fatalf("cevap çözümlenemedi: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("üye sayısı %d, 2 bekleniyordu", len(members))
	}
}
