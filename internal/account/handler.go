package account

import (
	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AccountResponse struct {
	ID                uint `json:"id"`
	OwnerID           uint `json:"ownerId"`
	IsBlockingEnabled bool `json:"isBlockingEnabled"`
}

type PatchAccountRequest struct {
	IsBlockingEnabled *bool `json:"isBlockingEnabled"`
}

func GetAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var acc models.Account
		if err := database.DB.Where("owner_id = ?", userID).First(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için hesap bulunamadı")
		}
		return c.JSON(AccountResponse{
			ID:                acc.ID,
			OwnerID:           acc.OwnerID,
			IsBlockingEnabled: acc.IsBlockingEnabled,
		})
	}
}

func PatchAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var acc models.Account
		if err := database.DB.Where("owner_id = ?", userID).First(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için hesap bulunamadı")
		}

		var body PatchAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.IsBlockingEnabled == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Güncellenecek alan yok")
		}

		acc.IsBlockingEnabled = *body.IsBlockingEnabled
		if err := database.DB.Save(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hesap güncellenemedi")
		}
		return c.JSON(AccountResponse{
			ID:                acc.ID,
			OwnerID:           acc.OwnerID,
			IsBlockingEnabled: acc.IsBlockingEnabled,
		})
	}
}
