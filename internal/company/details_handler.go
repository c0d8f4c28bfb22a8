package company

import (
	"strconv"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"
	"portal-backend/internal/resources"

	"github.com/gofiber/fiber/v2"
)

type CompanyDetailsResponse struct {
	ID                     uint   `json:"id"`
	OwnerID                uint   `json:"ownerId"`
	CompanyID              *uint  `json:"companyId"`
	TeamSize               string `json:"teamSize"`
	EstimatedAnnualRevenue string `json:"estimatedAnnualRevenue"`
	TopPriority            string `json:"topPriority"`
	Industry               string `json:"industry"`
	HeardAboutUs           string `json:"heardAboutUs"`
	DisplayBusinessHours   bool   `json:"displayBusinessHours"`
}

type PatchCompanyDetailsRequest struct {
	TeamSize               *string `json:"teamSize"`
	EstimatedAnnualRevenue *string `json:"estimatedAnnualRevenue"`
	TopPriority            *string `json:"topPriority"`
	Industry               *string `json:"industry"`
	HeardAboutUs           *string `json:"heardAboutUs"`
	DisplayBusinessHours   *bool   `json:"displayBusinessHours"`
}

func toCompanyDetailsResponse(d *models.CompanyDetails) CompanyDetailsResponse {
	return CompanyDetailsResponse{
		ID:                     d.ID,
		OwnerID:                d.OwnerID,
		CompanyID:              d.CompanyID,
		TeamSize:               d.TeamSize,
		EstimatedAnnualRevenue: d.EstimatedAnnualRevenue,
		TopPriority:            d.TopPriority,
		Industry:               d.Industry,
		HeardAboutUs:           d.HeardAboutUs,
		DisplayBusinessHours:   d.DisplayBusinessHours,
	}
}

// POST /company-details - sahip başına tek kayıt, ikinci deneme 409 döner
func CreateCompanyDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var count int64
		database.DB.Model(&models.CompanyDetails{}).Where("owner_id = ?", userID).Count(&count)
		if count > 0 {
			logs.Logger.Warnf("Kullanıcı %d için şirket detayları zaten mevcut", userID)
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için şirket detayları zaten mevcut")
		}

		details := models.CompanyDetails{OwnerID: userID}
		if err := database.DB.Create(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket detayları oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toCompanyDetailsResponse(&details))
	}
}

func GetCompanyDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var details models.CompanyDetails
		if err := database.DB.Where("owner_id = ?", userID).First(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için şirket detayları bulunamadı")
		}
		return c.JSON(toCompanyDetailsResponse(&details))
	}
}

// PATCH /company-details/patch - Industry "Transportation" olarak
// güncellenirse şirkete varsayılan taşıma varlıkları açılır.
func PatchCompanyDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var details models.CompanyDetails
		if err := database.DB.Where("owner_id = ?", userID).First(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için şirket detayları bulunamadı")
		}

		var body PatchCompanyDetailsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		industryChangedToTransport := false
		if body.TeamSize != nil {
			details.TeamSize = *body.TeamSize
		}
		if body.EstimatedAnnualRevenue != nil {
			details.EstimatedAnnualRevenue = *body.EstimatedAnnualRevenue
		}
		if body.TopPriority != nil {
			details.TopPriority = *body.TopPriority
		}
		if body.Industry != nil {
			industryChangedToTransport = *body.Industry == "Transportation" && details.Industry != "Transportation"
			details.Industry = *body.Industry
		}
		if body.HeardAboutUs != nil {
			details.HeardAboutUs = *body.HeardAboutUs
		}
		if body.DisplayBusinessHours != nil {
			details.DisplayBusinessHours = *body.DisplayBusinessHours
		}

		if err := database.DB.Save(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket detayları güncellenemedi")
		}

		if industryChangedToTransport && details.CompanyID != nil {
			if err := resources.CreateTransportAssets(*details.CompanyID); err != nil {
				// Varlık açılamasa da detay güncellemesi geçerli kalır
				logs.Logger.Errorf("Taşıma varlıkları oluşturulamadı (şirket %d): %v", *details.CompanyID, err)
			}
		}

		return c.JSON(toCompanyDetailsResponse(&details))
	}
}

// GET /company-details/industry/:companyId
func GetIndustryByCompanyIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id'si")
		}

		var details models.CompanyDetails
		if err := database.DB.Where("company_id = ?", companyID).First(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket detayları bulunamadı")
		}
		return c.JSON(fiber.Map{"industry": details.Industry})
	}
}
