package resources

import (
	"errors"
	"strconv"
	"strings"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResourceResponse struct {
	ID                   uint           `json:"id"`
	Name                 string         `json:"name"`
	Type                 string         `json:"type"`
	UserID               *uint          `json:"userId"`
	CompanyID            uint           `json:"companyId"`
	AdditionalProperties datatypes.JSON `json:"additionalProperties"`
}

type CreateResourceRequest struct {
	Name                 string         `json:"name"`
	Type                 string         `json:"type"`
	UserID               *uint          `json:"userId"`
	CompanyID            uint           `json:"companyId"`
	AdditionalProperties datatypes.JSON `json:"additionalProperties"`
}

type PatchResourceRequest struct {
	Name                 *string        `json:"name"`
	Type                 *string        `json:"type"`
	UserID               *uint          `json:"userId"`
	AdditionalProperties datatypes.JSON `json:"additionalProperties"`
}

func toResourceResponse(r *models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:                   r.ID,
		Name:                 r.Name,
		Type:                 string(r.Type),
		UserID:               r.UserID,
		CompanyID:            r.CompanyID,
		AdditionalProperties: r.AdditionalProperties,
	}
}

func validType(t string) bool {
	switch models.ResourceType(t) {
	case models.ResourceTruck, models.ResourceCar, models.ResourceVan, models.ResourceEquipment:
		return true
	}
	return false
}

func CreateResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateResourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Varlık adı zorunlu")
		}
		if !validType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz varlık tipi")
		}
		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Şirket id'si zorunlu")
		}

		resource := models.Resource{
			Name:                 body.Name,
			Type:                 models.ResourceType(body.Type),
			UserID:               body.UserID,
			CompanyID:            body.CompanyID,
			AdditionalProperties: body.AdditionalProperties,
		}
		if err := database.DB.Create(&resource).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varlık oluşturulamadı")
		}

		logs.Logger.Infof("Varlık oluşturuldu: %s (id=%d)", resource.Name, resource.ID)
		return c.Status(fiber.StatusCreated).JSON(toResourceResponse(&resource))
	}
}

// GET /resources - oturumdaki kullanıcının şirketine ait varlıklar
func ListResourcesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		companyID := uint(0)
		if user.CompanyID != nil {
			companyID = *user.CompanyID
		} else {
			var co models.Company
			if err := database.DB.Where("owner_id = ?", userID).First(&co).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için şirket bulunamadı")
			}
			companyID = co.ID
		}

		var list []models.Resource
		if err := database.DB.Where("company_id = ?", companyID).Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varlıklar listelenemedi")
		}

		res := make([]ResourceResponse, 0, len(list))
		for i := range list {
			res = append(res, toResourceResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

func GetResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz varlık id'si")
		}

		var resource models.Resource
		if err := database.DB.First(&resource, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Varlık bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Varlık sorgulanamadı")
		}
		return c.JSON(toResourceResponse(&resource))
	}
}

func PatchResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz varlık id'si")
		}

		var resource models.Resource
		if err := database.DB.First(&resource, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Varlık bulunamadı")
		}

		var body PatchResourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			resource.Name = strings.TrimSpace(*body.Name)
		}
		if body.Type != nil {
			if !validType(*body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz varlık tipi")
			}
			resource.Type = models.ResourceType(*body.Type)
		}
		if body.UserID != nil {
			resource.UserID = body.UserID
		}
		if body.AdditionalProperties != nil {
			resource.AdditionalProperties = body.AdditionalProperties
		}

		if err := database.DB.Save(&resource).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varlık güncellenemedi")
		}
		return c.JSON(toResourceResponse(&resource))
	}
}

func DeleteResourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz varlık id'si")
		}

		res := database.DB.Delete(&models.Resource{}, "id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varlık silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Varlık bulunamadı")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /resources/default/:companyId?industry=... - sektöre göre başlangıç varlıkları
func CreateDefaultResourcesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id'si")
		}

		var co models.Company
		if err := database.DB.First(&co, "id = ?", companyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}

		if err := CreateDefaults(co.ID, c.Query("industry")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varsayılan varlıklar oluşturulamadı")
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}
