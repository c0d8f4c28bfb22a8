package payment

import (
	"strconv"

	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Aynı handler seti hem /payment-type hem /labour-cost altında kayıtlıdır.

type PaymentTypeResponse struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"userId"`
	LabourCost float64 `json:"labourCost"`
	CostUnit   string  `json:"costUnit"`
}

type CreatePaymentTypeRequest struct {
	UserID     uint     `json:"userId"`
	LabourCost *float64 `json:"labourCost"`
	CostUnit   string   `json:"costUnit"`
}

type PatchPaymentTypeRequest struct {
	LabourCost *float64 `json:"labourCost"`
	CostUnit   *string  `json:"costUnit"`
}

func toResponse(pt *models.PaymentType) PaymentTypeResponse {
	return PaymentTypeResponse{
		ID:         pt.ID,
		UserID:     pt.UserID,
		LabourCost: pt.LabourCost,
		CostUnit:   string(pt.CostUnit),
	}
}

func validCostUnit(u string) bool {
	switch models.CostUnit(u) {
	case models.CostUnitPerHour, models.CostUnitPerMonth:
		return true
	}
	return false
}

func CreatePaymentTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.UserID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı id'si zorunlu")
		}

		var count int64
		database.DB.Model(&models.PaymentType{}).Where("user_id = ?", body.UserID).Count(&count)
		if count > 0 {
			logs.Logger.Warnf("Kullanıcı %d için işçilik maliyeti kaydı zaten mevcut", body.UserID)
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için işçilik maliyeti kaydı zaten mevcut")
		}

		pt := models.PaymentType{UserID: body.UserID, CostUnit: models.CostUnitPerHour}
		if body.LabourCost != nil {
			pt.LabourCost = *body.LabourCost
		}
		if body.CostUnit != "" {
			if !validCostUnit(body.CostUnit) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz maliyet birimi")
			}
			pt.CostUnit = models.CostUnit(body.CostUnit)
		}

		if err := database.DB.Create(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşçilik maliyeti kaydı oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(&pt))
	}
}

func GetPaymentTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		var pt models.PaymentType
		if err := database.DB.Where("user_id = ?", userID).First(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için işçilik maliyeti kaydı bulunamadı")
		}
		return c.JSON(toResponse(&pt))
	}
}

func PatchPaymentTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		var pt models.PaymentType
		if err := database.DB.Where("user_id = ?", userID).First(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için işçilik maliyeti kaydı bulunamadı")
		}

		var body PatchPaymentTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.LabourCost != nil {
			pt.LabourCost = *body.LabourCost
		}
		if body.CostUnit != nil {
			if !validCostUnit(*body.CostUnit) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz maliyet birimi")
			}
			pt.CostUnit = models.CostUnit(*body.CostUnit)
		}

		if err := database.DB.Save(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşçilik maliyeti kaydı güncellenemedi")
		}
		return c.JSON(toResponse(&pt))
	}
}

func DeletePaymentTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		res := database.DB.Where("user_id = ?", userID).Delete(&models.PaymentType{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşçilik maliyeti kaydı silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için işçilik maliyeti kaydı bulunamadı")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
