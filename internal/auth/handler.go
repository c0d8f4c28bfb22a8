package auth

import (
	"strings"

	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"
	"portal-backend/internal/password"
	"portal-backend/internal/users"

	"github.com/gofiber/fiber/v2"
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Password string `json:"password"`
}

func SignUpHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignUpRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		existing, err := users.FindByEmail(body.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			logs.Logger.Warnf("Mevcut email ile kayıt denemesi: %s", body.Email)
			return fiber.NewError(fiber.StatusBadRequest, "email-exists")
		}

		salt, err := password.GetSalt()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Salt üretilemedi")
		}
		hash := password.GetHash(body.Password, salt)

		user, err := users.CreateWithCompany(body.Email, hash, salt)
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}
		SetTokenCookie(c, token)

		logs.Logger.Infof("Kullanıcı kaydı tamamlandı: %s", body.Email)
		return c.SendStatus(fiber.StatusCreated)
	}
}

func SignInHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		user, err := users.FindByEmail(body.Email)
		if err != nil {
			return err
		}
		if user == nil {
			logs.Logger.Warnf("Bilinmeyen email ile giriş denemesi: %s", body.Email)
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if password.GetHash(body.Password, user.Salt) != user.Hash {
			logs.Logger.Warnf("Hatalı şifre ile giriş denemesi: %s", body.Email)
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := users.UpdateLastLogin(user.ID); err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}
		SetTokenCookie(c, token)

		logs.Logger.Infof("Kullanıcı giriş yaptı: %s", body.Email)
		return c.SendStatus(fiber.StatusOK)
	}
}

// SignOutHandler cookie'yi temizler; token doğal süresi dolana kadar geçerli
// kalır, sunucu tarafında oturum durumu tutulmaz.
func SignOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ClearTokenCookie(c)
		return c.SendStatus(fiber.StatusOK)
	}
}

func SessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Oturum bilgisi alınamadı")
		}

		return c.JSON(fiber.Map{
			"id":    claims.UserID,
			"email": claims.Email,
			"iat":   claims.IssuedAt.Unix(),
			"exp":   claims.ExpiresAt.Unix(),
		})
	}
}

// VerifyHandler davet token'ı ile şifre belirler ve hesabı aktifleştirir.
// Token tek kullanımlıktır, başarılı doğrulamadan sonra silinir.
func VerifyHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")

		var body VerifyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre zorunlu")
		}

		record, err := users.FindVerificationToken(token)
		if err != nil {
			return err
		}

		salt, err := password.GetSalt()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Salt üretilemedi")
		}
		hash := password.GetHash(body.Password, salt)

		if err := users.UpdatePassword(record.UserID, hash, salt); err != nil {
			return err
		}
		if err := users.DeleteVerificationToken(token); err != nil {
			return err
		}

		user, err := users.GetByID(record.UserID)
		if err != nil {
			return err
		}

		accessToken, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}
		SetTokenCookie(c, accessToken)

		logs.Logger.Infof("Kullanıcı doğrulandı ve şifre belirlendi: id=%d", user.ID)
		return c.JSON(fiber.Map{
			"message": "Account verified successfully",
			"user": fiber.Map{
				"email":     user.Email,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
			},
		})
	}
}

// GetUserByTokenHandler davet sayfasının ön doldurması için token sahibini döndürür.
func GetUserByTokenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")

		record, err := users.FindVerificationToken(token)
		if err != nil {
			return err
		}

		user, err := users.GetByID(record.UserID)
		if err != nil {
			return err
		}
		if user.CompanyID == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı herhangi bir şirkete bağlı değil")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", *user.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket sorgulanamadı")
		}

		return c.JSON(fiber.Map{
			"email":       user.Email,
			"firstName":   user.FirstName,
			"lastName":    user.LastName,
			"companyName": company.CompanyName,
		})
	}
}
