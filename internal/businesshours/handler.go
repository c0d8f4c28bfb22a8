package businesshours

import (
	"strconv"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BusinessHoursResponse struct {
	ID        uint   `json:"id"`
	OwnerID   uint   `json:"ownerId"`
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

type PatchBusinessHoursRequest struct {
	Monday    *string `json:"monday"`
	Tuesday   *string `json:"tuesday"`
	Wednesday *string `json:"wednesday"`
	Thursday  *string `json:"thursday"`
	Friday    *string `json:"friday"`
	Saturday  *string `json:"saturday"`
	Sunday    *string `json:"sunday"`
}

func toResponse(bh *models.BusinessHours) BusinessHoursResponse {
	return BusinessHoursResponse{
		ID:        bh.ID,
		OwnerID:   bh.OwnerID,
		Monday:    bh.Monday,
		Tuesday:   bh.Tuesday,
		Wednesday: bh.Wednesday,
		Thursday:  bh.Thursday,
		Friday:    bh.Friday,
		Saturday:  bh.Saturday,
		Sunday:    bh.Sunday,
	}
}

func getByOwner(ownerID uint) (*models.BusinessHours, error) {
	var bh models.BusinessHours
	if err := database.DB.Where("owner_id = ?", ownerID).First(&bh).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için çalışma saatleri bulunamadı")
	}
	return &bh, nil
}

func applyPatch(bh *models.BusinessHours, body *PatchBusinessHoursRequest) {
	if body.Monday != nil {
		bh.Monday = *body.Monday
	}
	if body.Tuesday != nil {
		bh.Tuesday = *body.Tuesday
	}
	if body.Wednesday != nil {
		bh.Wednesday = *body.Wednesday
	}
	if body.Thursday != nil {
		bh.Thursday = *body.Thursday
	}
	if body.Friday != nil {
		bh.Friday = *body.Friday
	}
	if body.Saturday != nil {
		bh.Saturday = *body.Saturday
	}
	if body.Sunday != nil {
		bh.Sunday = *body.Sunday
	}
}

// POST /business-hours - kullanıcı başına tek kayıt
func CreateBusinessHoursHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var count int64
		database.DB.Model(&models.BusinessHours{}).Where("owner_id = ?", userID).Count(&count)
		if count > 0 {
			logs.Logger.Warnf("Kullanıcı %d için çalışma saatleri zaten mevcut", userID)
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için çalışma saatleri zaten mevcut")
		}

		bh := models.BusinessHours{OwnerID: userID}
		if err := database.DB.Create(&bh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışma saatleri oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(&bh))
	}
}

func GetBusinessHoursHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bh, err := getByOwner(auth.SessionUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(toResponse(bh))
	}
}

func GetBusinessHoursByUserIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		bh, err2 := getByOwner(uint(userID))
		if err2 != nil {
			return err2
		}
		return c.JSON(toResponse(bh))
	}
}

func PatchBusinessHoursHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bh, err := getByOwner(auth.SessionUserID(c))
		if err != nil {
			return err
		}

		var body PatchBusinessHoursRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		applyPatch(bh, &body)
		if err := database.DB.Save(bh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışma saatleri güncellenemedi")
		}
		return c.JSON(toResponse(bh))
	}
}

func PatchBusinessHoursByUserIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		bh, err2 := getByOwner(uint(userID))
		if err2 != nil {
			return err2
		}

		var body PatchBusinessHoursRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		applyPatch(bh, &body)
		if err := database.DB.Save(bh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışma saatleri güncellenemedi")
		}
		return c.JSON(toResponse(bh))
	}
}
