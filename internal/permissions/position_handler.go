package permissions

import (
	"errors"
	"strconv"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserPositionResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateUserPositionRequest struct {
	Name string `json:"name"`
}

type AssignUserPositionRequest struct {
	UserID         uint `json:"userId"`
	UserPositionID uint `json:"userPositionId"`
}

func toPositionResponse(p *models.UserPosition) UserPositionResponse {
	return UserPositionResponse{ID: p.ID, Name: string(p.Name)}
}

func validPositionType(name string) bool {
	switch models.PositionType(name) {
	case models.PositionCompanyOwner, models.PositionAdmin, models.PositionManager,
		models.PositionDispatcher, models.PositionWorker, models.PositionLimitedWorker,
		models.PositionCustom:
		return true
	}
	return false
}

// GET /user-position - oturumdaki kullanıcının pozisyonu ve yetkileri.
// isOwner pozisyondan değil şirket sahipliğinden türetilir.
func GetSessionUserPositionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		if user.PositionID == nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için pozisyon bulunamadı")
		}

		var position models.UserPosition
		if err := database.DB.First(&position, "id = ?", *user.PositionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pozisyon bulunamadı")
		}

		isAdmin := false
		var perm models.Permission
		if err := database.DB.Where("user_position_id = ?", position.ID).First(&perm).Error; err == nil {
			isAdmin = perm.IsAdmin
		}

		isOwner := false
		var ownedCount int64
		if err := database.DB.Model(&models.Company{}).Where("owner_id = ?", userID).Count(&ownedCount).Error; err == nil {
			isOwner = ownedCount > 0
		}

		return c.JSON(fiber.Map{
			"id":      position.ID,
			"name":    string(position.Name),
			"isAdmin": isAdmin,
			"isOwner": isOwner,
		})
	}
}

func CreateUserPositionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserPositionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if !validPositionType(body.Name) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz pozisyon adı")
		}

		position := models.UserPosition{Name: models.PositionType(body.Name)}
		if err := database.DB.Create(&position).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pozisyon oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toPositionResponse(&position))
	}
}

// POST /user-position/assign - pozisyonu kullanıcıya bağlar
func AssignUserPositionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssignUserPositionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.UserID == 0 || body.UserPositionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı ve pozisyon id'si zorunlu")
		}

		var position models.UserPosition
		if err := database.DB.First(&position, "id = ?", body.UserPositionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pozisyon bulunamadı")
		}

		res := database.DB.Model(&models.User{}).Where("id = ?", body.UserID).
			Update("position_id", position.ID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pozisyon atanamadı")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

func GetUserPositionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz pozisyon id'si")
		}

		var position models.UserPosition
		if err := database.DB.First(&position, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pozisyon bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Pozisyon sorgulanamadı")
		}
		return c.JSON(toPositionResponse(&position))
	}
}

func PatchUserPositionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz pozisyon id'si")
		}

		var position models.UserPosition
		if err := database.DB.First(&position, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pozisyon bulunamadı")
		}

		var body CreateUserPositionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if !validPositionType(body.Name) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz pozisyon adı")
		}

		position.Name = models.PositionType(body.Name)
		if err := database.DB.Save(&position).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pozisyon güncellenemedi")
		}
		return c.JSON(toPositionResponse(&position))
	}
}

// DELETE /user-position/:id - pozisyonla birlikte yetki kaydı da silinir
func DeleteUserPositionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz pozisyon id'si")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_position_id = ?", id).Delete(&models.Permission{}).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.UserPosition{}, "id = ?", id)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pozisyon bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Pozisyon silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
