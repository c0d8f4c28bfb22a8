package permissions

import (
	"strconv"

	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PermissionResponse struct {
	ID             uint `json:"id"`
	UserPositionID uint `json:"userPositionId"`
	IsAdmin        bool `json:"isAdmin"`
}

type CreatePermissionRequest struct {
	UserPositionID uint `json:"userPositionId"`
	IsAdmin        bool `json:"isAdmin"`
}

type PatchPermissionRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

func toPermissionResponse(p *models.Permission) PermissionResponse {
	return PermissionResponse{
		ID:             p.ID,
		UserPositionID: p.UserPositionID,
		IsAdmin:        p.IsAdmin,
	}
}

// POST /permissions - pozisyon başına tek yetki kaydı
func CreatePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePermissionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.UserPositionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Pozisyon id'si zorunlu")
		}

		var position models.UserPosition
		if err := database.DB.First(&position, "id = ?", body.UserPositionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pozisyon bulunamadı")
		}

		var count int64
		database.DB.Model(&models.Permission{}).Where("user_position_id = ?", body.UserPositionID).Count(&count)
		if count > 0 {
			logs.Logger.Warnf("Pozisyon %d için yetki kaydı zaten mevcut", body.UserPositionID)
			return fiber.NewError(fiber.StatusConflict, "Bu pozisyon için yetki kaydı zaten mevcut")
		}

		perm := models.Permission{UserPositionID: body.UserPositionID, IsAdmin: body.IsAdmin}
		if err := database.DB.Create(&perm).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kaydı oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toPermissionResponse(&perm))
	}
}

// GET /permissions/user/:userId - kullanıcı -> pozisyon -> yetki zinciri
func GetPermissionByUserIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		if user.PositionID == nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için yetki kaydı bulunamadı")
		}

		var perm models.Permission
		if err := database.DB.Where("user_position_id = ?", *user.PositionID).First(&perm).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için yetki kaydı bulunamadı")
		}
		return c.JSON(toPermissionResponse(&perm))
	}
}

func PatchPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yetki id'si")
		}

		var perm models.Permission
		if err := database.DB.First(&perm, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Yetki kaydı bulunamadı")
		}

		var body PatchPermissionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.IsAdmin == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Güncellenecek alan yok")
		}

		perm.IsAdmin = *body.IsAdmin
		if err := database.DB.Save(&perm).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kaydı güncellenemedi")
		}
		return c.JSON(toPermissionResponse(&perm))
	}
}

func DeletePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yetki id'si")
		}

		res := database.DB.Delete(&models.Permission{}, "id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kaydı silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Yetki kaydı bulunamadı")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
