package orders

import (
	"strconv"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OrderResourceResponse struct {
	ID         uint  `json:"id"`
	OrderID    uint  `json:"orderId"`
	ResourceID uint  `json:"resourceId"`
	UserID     *uint `json:"userId"`
}

type CreateOrderResourceRequest struct {
	OrderID    uint  `json:"orderId"`
	ResourceID uint  `json:"resourceId"`
	UserID     *uint `json:"userId"`
}

type PatchOrderResourceRequest struct {
	ResourceID *uint `json:"resourceId"`
	UserID     *uint `json:"userId"`
}

func toOrderResourceResponse(or *models.OrderResource) OrderResourceResponse {
	return OrderResourceResponse{
		ID:         or.ID,
		OrderID:    or.OrderID,
		ResourceID: or.ResourceID,
		UserID:     or.UserID,
	}
}

func CreateOrderResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderResourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.OrderID == 0 || body.ResourceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş ve varlık id'si zorunlu")
		}

		if err := database.DB.First(&models.Order{}, "id = ?", body.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		if err := database.DB.First(&models.Resource{}, "id = ?", body.ResourceID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Varlık bulunamadı")
		}

		or := models.OrderResource{
			OrderID:    body.OrderID,
			ResourceID: body.ResourceID,
			UserID:     body.UserID,
		}
		if err := database.DB.Create(&or).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaynağı oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toOrderResourceResponse(&or))
	}
}

// GET /order-resources?orderId=... - siparişin kaynak atamaları
func ListOrderResourcesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.OrderResource{})
		if orderID := c.Query("orderId"); orderID != "" {
			q = q.Where("order_id = ?", orderID)
		}

		var list []models.OrderResource
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaynakları listelenemedi")
		}

		res := make([]OrderResourceResponse, 0, len(list))
		for i := range list {
			res = append(res, toOrderResourceResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

func GetOrderResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var or models.OrderResource
		if err := database.DB.First(&or, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş kaynağı bulunamadı")
		}
		return c.JSON(toOrderResourceResponse(&or))
	}
}

func PatchOrderResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var or models.OrderResource
		if err := database.DB.First(&or, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş kaynağı bulunamadı")
		}

		var body PatchOrderResourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ResourceID != nil {
			if err := database.DB.First(&models.Resource{}, "id = ?", *body.ResourceID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Varlık bulunamadı")
			}
			or.ResourceID = *body.ResourceID
		}
		if body.UserID != nil {
			or.UserID = body.UserID
		}

		if err := database.DB.Save(&or).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaynağı güncellenemedi")
		}
		return c.JSON(toOrderResourceResponse(&or))
	}
}

func DeleteOrderResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		res := database.DB.Delete(&models.OrderResource{}, "id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaynağı silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş kaynağı bulunamadı")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
