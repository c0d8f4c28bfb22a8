package company

import (
	"errors"
	"strconv"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CompanyResponse struct {
	ID               uint   `json:"id"`
	OwnerID          uint   `json:"ownerId"`
	CompanyName      string `json:"companyName"`
	PhoneNumber      string `json:"phoneNumber"`
	WebsiteURL       string `json:"websiteURL"`
	CompanyEmail     string `json:"companyEmail"`
	Street1          string `json:"street1"`
	Street2          string `json:"street2"`
	City             string `json:"city"`
	State            string `json:"state"`
	PostCode         string `json:"postCode"`
	Country          string `json:"country"`
	Timezone         string `json:"timezone"`
	DateFormat       string `json:"dateFormat"`
	TimeFormat       string `json:"timeFormat"`
	FirstDayOfWeek   string `json:"firstDayOfWeek"`
	DisplayBusinessHours bool `json:"displayBusinessHours"`
	CompanyDetailsID *uint  `json:"companyDetailsId"`
}

type PatchCompanyRequest struct {
	CompanyName          *string `json:"companyName"`
	PhoneNumber          *string `json:"phoneNumber"`
	WebsiteURL           *string `json:"websiteURL"`
	CompanyEmail         *string `json:"companyEmail"`
	Street1              *string `json:"street1"`
	Street2              *string `json:"street2"`
	City                 *string `json:"city"`
	State                *string `json:"state"`
	PostCode             *string `json:"postCode"`
	Country              *string `json:"country"`
	Timezone             *string `json:"timezone"`
	DateFormat           *string `json:"dateFormat"`
	TimeFormat           *string `json:"timeFormat"`
	FirstDayOfWeek       *string `json:"firstDayOfWeek"`
	DisplayBusinessHours *bool   `json:"displayBusinessHours"`
}

func toCompanyResponse(co *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:                   co.ID,
		OwnerID:              co.OwnerID,
		CompanyName:          co.CompanyName,
		PhoneNumber:          co.PhoneNumber,
		WebsiteURL:           co.WebsiteURL,
		CompanyEmail:         co.CompanyEmail,
		Street1:              co.Street1,
		Street2:              co.Street2,
		City:                 co.City,
		State:                co.State,
		PostCode:             co.PostCode,
		Country:              co.Country,
		Timezone:             co.Timezone,
		DateFormat:           co.DateFormat,
		TimeFormat:           co.TimeFormat,
		FirstDayOfWeek:       co.FirstDayOfWeek,
		DisplayBusinessHours: co.DisplayBusinessHours,
		CompanyDetailsID:     co.CompanyDetailsID,
	}
}

// findForUser önce sahiplik, sonra üyelik üzerinden şirketi bulur.
func findForUser(userID uint) (*models.Company, error) {
	var co models.Company
	err := database.DB.Where("owner_id = ?", userID).First(&co).Error
	if err == nil {
		return &co, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Şirket sorgulanamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
	}
	if user.CompanyID == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için şirket bulunamadı")
	}
	if err := database.DB.First(&co, "id = ?", *user.CompanyID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için şirket bulunamadı")
	}
	return &co, nil
}

// POST /company - sahip başına tek şirket, ikinci deneme 409 döner
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var count int64
		database.DB.Model(&models.Company{}).Where("owner_id = ?", userID).Count(&count)
		if count > 0 {
			logs.Logger.Warnf("Kullanıcı %d için şirket zaten mevcut", userID)
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için şirket zaten mevcut")
		}

		co := models.Company{OwnerID: userID}
		if err := database.DB.Create(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toCompanyResponse(&co))
	}
}

func GetCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := findForUser(auth.SessionUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(toCompanyResponse(co))
	}
}

func GetCompanyByIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Params("companyId")

		var co models.Company
		if err := database.DB.First(&co, "id = ?", companyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}
		return c.JSON(toCompanyResponse(&co))
	}
}

// PATCH /company/patch-company - sadece gönderilen alanlar güncellenir
func PatchCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.SessionUserID(c)

		var co models.Company
		if err := database.DB.Where("owner_id = ?", userID).First(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kullanıcı için şirket bulunamadı")
		}

		var body PatchCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.CompanyName != nil {
			co.CompanyName = *body.CompanyName
		}
		if body.PhoneNumber != nil {
			co.PhoneNumber = *body.PhoneNumber
		}
		if body.WebsiteURL != nil {
			co.WebsiteURL = *body.WebsiteURL
		}
		if body.CompanyEmail != nil {
			co.CompanyEmail = *body.CompanyEmail
		}
		if body.Street1 != nil {
			co.Street1 = *body.Street1
		}
		if body.Street2 != nil {
			co.Street2 = *body.Street2
		}
		if body.City != nil {
			co.City = *body.City
		}
		if body.State != nil {
			co.State = *body.State
		}
		if body.PostCode != nil {
			co.PostCode = *body.PostCode
		}
		if body.Country != nil {
			co.Country = *body.Country
		}
		if body.Timezone != nil {
			co.Timezone = *body.Timezone
		}
		if body.DateFormat != nil {
			co.DateFormat = *body.DateFormat
		}
		if body.TimeFormat != nil {
			co.TimeFormat = *body.TimeFormat
		}
		if body.FirstDayOfWeek != nil {
			co.FirstDayOfWeek = *body.FirstDayOfWeek
		}
		if body.DisplayBusinessHours != nil {
			co.DisplayBusinessHours = *body.DisplayBusinessHours
		}

		if err := database.DB.Save(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket güncellenemedi")
		}
		return c.JSON(toCompanyResponse(&co))
	}
}

// PATCH /company/add-user-to-company/:companyId/:userId
func AddUserToCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id'si")
		}
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		var co models.Company
		if err := database.DB.First(&co, "id = ?", companyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}

		if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
			Update("company_id", co.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı şirkete eklenemedi")
		}

		logs.Logger.Infof("Kullanıcı %d şirkete eklendi: %d", userID, co.ID)
		return c.JSON(fiber.Map{"companyName": co.CompanyName})
	}
}

// PATCH /company/connect-company-details/:companyId/:companyDetailsId
func ConnectCompanyDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id'si")
		}
		detailsID, err := strconv.ParseUint(c.Params("companyDetailsId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket detay id'si")
		}

		var co models.Company
		if err := database.DB.First(&co, "id = ?", companyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}
		var details models.CompanyDetails
		if err := database.DB.First(&details, "id = ?", detailsID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket detayları bulunamadı")
		}

		id := uint(detailsID)
		co.CompanyDetailsID = &id
		details.CompanyID = &co.ID

		if err := database.DB.Save(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket detayları bağlanamadı")
		}
		if err := database.DB.Save(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket detayları bağlanamadı")
		}

		return c.SendStatus(fiber.StatusOK)
	}
}

type companyUserResponse struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	LastLogin     *string `json:"lastLogin"`
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	Province      string  `json:"province"`
	PostalCode    string  `json:"postalCode"`
	Country       string  `json:"country"`
	PhoneNumber   string  `json:"phoneNumber"`
}

func listCompanyUsers(companyID uint) ([]companyUserResponse, error) {
	var members []models.User
	if err := database.DB.Where("company_id = ?", companyID).Find(&members).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Şirket kullanıcıları listelenemedi")
	}

	res := make([]companyUserResponse, 0, len(members))
	for _, u := range members {
		var lastLogin *string
		if u.LastLogin != nil {
			s := u.LastLogin.Format("2006-01-02 15:04:05")
			lastLogin = &s
		}
		res = append(res, companyUserResponse{
			ID:            u.ID,
			Email:         u.Email,
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			LastLogin:     lastLogin,
			StreetAddress: u.StreetAddress,
			City:          u.City,
			Province:      u.Province,
			PostalCode:    u.PostalCode,
			Country:       u.Country,
			PhoneNumber:   u.PhoneNumber,
		})
	}
	return res, nil
}

// GET /company/get-users-of-company - oturumdaki kullanıcının şirketi
func GetUsersOfCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := findForUser(auth.SessionUserID(c))
		if err != nil {
			return err
		}

		res, err := listCompanyUsers(co.ID)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /company/get-users-of-company/:companyId
func GetUsersOfCompanyByIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id'si")
		}

		res, err := listCompanyUsers(uint(companyID))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
