package communications

import (
	"strconv"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Aynı handler seti hem /communications hem /user-notification-settings
// altında kayıtlıdır; iki yol da aynı tabloya gider.

type CommunicationResponse struct {
	ID            uint `json:"id"`
	UserID        uint `json:"userId"`
	Surveys       bool `json:"surveys"`
	ErrorMessages bool `json:"errorMessages"`
}

type PatchCommunicationRequest struct {
	Surveys       *bool `json:"surveys"`
	ErrorMessages *bool `json:"errorMessages"`
}

func toResponse(com *models.Communication) CommunicationResponse {
	return CommunicationResponse{
		ID:            com.ID,
		UserID:        com.UserID,
		Surveys:       com.Surveys,
		ErrorMessages: com.ErrorMessages,
	}
}

func getByUser(userID uint) (*models.Communication, error) {
	var com models.Communication
	if err := database.DB.Where("user_id = ?", userID).First(&com).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için bildirim tercihleri bulunamadı")
	}
	return &com, nil
}

func patch(com *models.Communication, body *PatchCommunicationRequest) error {
	if body.Surveys != nil {
		com.Surveys = *body.Surveys
	}
	if body.ErrorMessages != nil {
		com.ErrorMessages = *body.ErrorMessages
	}
	if err := database.DB.Save(com).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Bildirim tercihleri güncellenemedi")
	}
	return nil
}

func CreateCommunicationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var count int64
		database.DB.Model(&models.Communication{}).Where("user_id = ?", userID).Count(&count)
		if count > 0 {
			logs.Logger.Warnf("Kullanıcı %d için bildirim tercihleri zaten mevcut", userID)
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için bildirim tercihleri zaten mevcut")
		}

		com := models.Communication{UserID: userID}
		if err := database.DB.Create(&com).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirim tercihleri oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(&com))
	}
}

func GetCommunicationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		com, err := getByUser(auth.SessionUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(toResponse(com))
	}
}

func GetCommunicationByUserIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		com, err2 := getByUser(uint(userID))
		if err2 != nil {
			return err2
		}
		return c.JSON(toResponse(com))
	}
}

func PatchCommunicationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		com, err := getByUser(auth.SessionUserID(c))
		if err != nil {
			return err
		}

		var body PatchCommunicationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := patch(com, &body); err != nil {
			return err
		}
		return c.JSON(toResponse(com))
	}
}

func PatchCommunicationByUserIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		com, err2 := getByUser(uint(userID))
		if err2 != nil {
			return err2
		}

		var body PatchCommunicationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := patch(com, &body); err != nil {
			return err
		}
		return c.JSON(toResponse(com))
	}
}
