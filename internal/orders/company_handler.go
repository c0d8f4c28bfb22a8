package orders

import (
	"strconv"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OrderCompanyResponse struct {
	ID        uint   `json:"id"`
	OrderID   uint   `json:"orderId"`
	CompanyID uint   `json:"companyId"`
	Role      string `json:"role"`
}

type CreateOrderCompanyRequest struct {
	OrderID   uint   `json:"orderId"`
	CompanyID uint   `json:"companyId"`
	Role      string `json:"role"`
}

type PatchOrderCompanyRequest struct {
	Role *string `json:"role"`
}

func toOrderCompanyResponse(oc *models.OrderCompany) OrderCompanyResponse {
	return OrderCompanyResponse{
		ID:        oc.ID,
		OrderID:   oc.OrderID,
		CompanyID: oc.CompanyID,
		Role:      oc.Role,
	}
}

func CreateOrderCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.OrderID == 0 || body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş ve şirket id'si zorunlu")
		}

		if err := database.DB.First(&models.Order{}, "id = ?", body.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		if err := database.DB.First(&models.Company{}, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}

		oc := models.OrderCompany{
			OrderID:   body.OrderID,
			CompanyID: body.CompanyID,
			Role:      body.Role,
		}
		if err := database.DB.Create(&oc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş şirketi oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toOrderCompanyResponse(&oc))
	}
}

// GET /order-companies?orderId=... - siparişin şirket bağlantıları
func ListOrderCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.OrderCompany{})
		if orderID := c.Query("orderId"); orderID != "" {
			q = q.Where("order_id = ?", orderID)
		}

		var list []models.OrderCompany
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş şirketleri listelenemedi")
		}

		res := make([]OrderCompanyResponse, 0, len(list))
		for i := range list {
			res = append(res, toOrderCompanyResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

func GetOrderCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var oc models.OrderCompany
		if err := database.DB.First(&oc, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş şirketi bulunamadı")
		}
		return c.JSON(toOrderCompanyResponse(&oc))
	}
}

func PatchOrderCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var oc models.OrderCompany
		if err := database.DB.First(&oc, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş şirketi bulunamadı")
		}

		var body PatchOrderCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Role != nil {
			oc.Role = *body.Role
		}

		if err := database.DB.Save(&oc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş şirketi güncellenemedi")
		}
		return c.JSON(toOrderCompanyResponse(&oc))
	}
}

func DeleteOrderCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		res := database.DB.Delete(&models.OrderCompany{}, "id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş şirketi silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş şirketi bulunamadı")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
