package orders

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderResponse struct {
	ID          uint           `json:"id"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	StartAt     time.Time      `json:"startAt"`
	EndAt       time.Time      `json:"endAt"`
	Meta        datatypes.JSON `json:"meta"`
	CompanyID   *uint          `json:"companyId"`
}

type CreateOrderRequest struct {
	Description string         `json:"description"`
	Status      string         `json:"status"`
	StartAt     time.Time      `json:"startAt"`
	EndAt       time.Time      `json:"endAt"`
	Meta        datatypes.JSON `json:"meta"`
	CompanyID   *uint          `json:"companyId"`
}

type PatchOrderRequest struct {
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	StartAt     *time.Time     `json:"startAt"`
	EndAt       *time.Time     `json:"endAt"`
	Meta        datatypes.JSON `json:"meta"`
	CompanyID   *uint          `json:"companyId"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Description: o.Description,
		Status:      string(o.Status),
		StartAt:     o.StartAt,
		EndAt:       o.EndAt,
		Meta:        o.Meta,
		CompanyID:   o.CompanyID,
	}
}

func validStatus(s string) bool {
	switch models.OrderStatus(s) {
	case models.OrderPlanned, models.OrderInProgress, models.OrderDone, models.OrderCancelled:
		return true
	}
	return false
}

func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Description = strings.TrimSpace(body.Description)
		if body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş açıklaması zorunlu")
		}
		if body.StartAt.IsZero() || body.EndAt.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "Başlangıç ve bitiş zamanı zorunlu")
		}
		if body.EndAt.Before(body.StartAt) {
			return fiber.NewError(fiber.StatusBadRequest, "Bitiş zamanı başlangıçtan önce olamaz")
		}

		order := models.Order{
			Description: body.Description,
			Status:      models.OrderPlanned,
			StartAt:     body.StartAt,
			EndAt:       body.EndAt,
			Meta:        body.Meta,
			CompanyID:   body.CompanyID,
		}
		if body.Status != "" {
			if !validStatus(body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş durumu")
			}
			order.Status = models.OrderStatus(body.Status)
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		logs.Logger.Infof("Sipariş oluşturuldu: id=%d", order.ID)
		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(&order))
	}
}

func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş id'si")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş sorgulanamadı")
		}
		return c.JSON(toOrderResponse(&order))
	}
}

func PatchOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş id'si")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		var body PatchOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Description != nil {
			order.Description = strings.TrimSpace(*body.Description)
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş durumu")
			}
			order.Status = models.OrderStatus(*body.Status)
		}
		if body.StartAt != nil {
			order.StartAt = *body.StartAt
		}
		if body.EndAt != nil {
			order.EndAt = *body.EndAt
		}
		if order.EndAt.Before(order.StartAt) {
			return fiber.NewError(fiber.StatusBadRequest, "Bitiş zamanı başlangıçtan önce olamaz")
		}
		if body.Meta != nil {
			order.Meta = body.Meta
		}
		if body.CompanyID != nil {
			order.CompanyID = body.CompanyID
		}

		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}
		return c.JSON(toOrderResponse(&order))
	}
}

// DELETE /orders/:id - bağlı şirket ve kaynak kayıtları da silinir
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş id'si")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderCompany{}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderResource{}).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.Order{}, "id = ?", id)
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
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
