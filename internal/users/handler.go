package users

import (
	"strconv"
	"strings"

	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/mailer"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UserResponse struct {
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
	CompanyID     *uint   `json:"companyId"`
}

type PatchUserRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	StreetAddress *string `json:"streetAddress"`
	City          *string `json:"city"`
	Province      *string `json:"province"`
	PostalCode    *string `json:"postalCode"`
	Country       *string `json:"country"`
	PhoneNumber   *string `json:"phoneNumber"`
}

type CreateUserWithoutPasswordRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	PhoneNumber   string `json:"phoneNumber"`

	CompanyID uint `json:"companyId"`

	LabourCost *float64 `json:"labourCost"`
	CostUnit   string   `json:"costUnit"`
	Surveys    *bool    `json:"surveys"`

	IsAdmin         bool   `json:"isAdmin"`
	PermissionLevel string `json:"permissionLevel"`

	InviterFirstName string `json:"inviterFirstName"`
	InviterLastName  string `json:"inviterLastName"`
}

type UpdatePasswordRequest struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// auth paketi bu paketi import ettiği için Locals anahtarı burada
// auth.CtxUserIDKey yerine sabit olarak okunur.
func sessionUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}

func toUserResponse(u *models.User) UserResponse {
	var lastLogin *string
	if u.LastLogin != nil {
		s := u.LastLogin.Format("2006-01-02 15:04:05")
		lastLogin = &s
	}
	return UserResponse{
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
		CompanyID:     u.CompanyID,
	}
}

// GET /users - oturumdaki kullanıcının bilgileri
func GetUserDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := GetByID(sessionUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(toUserResponse(user))
	}
}

func FindByEmailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := strings.TrimSpace(strings.ToLower(c.Query("email")))
		if email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email parametresi zorunlu")
		}

		user, err := FindByEmail(email)
		if err != nil {
			return err
		}
		if user == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı bulunamadı")
		}
		return c.JSON(toUserResponse(user))
	}
}

func GetUserByIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		user, err := GetByID(uint(userID))
		if err != nil {
			return err
		}
		return c.JSON(toUserResponse(user))
	}
}

// POST /users/create-new-user-without-password - yönetici daveti.
// Kayıtlar tek transaction'da açılır, e-posta commit sonrası gönderilir.
func CreateUserWithoutPasswordHandler(m *mailer.Mailer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserWithoutPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email zorunlu")
		}
		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Şirket id'si zorunlu")
		}

		in := InviteInput{
			Email:            body.Email,
			FirstName:        body.FirstName,
			LastName:         body.LastName,
			StreetAddress:    body.StreetAddress,
			City:             body.City,
			Province:         body.Province,
			PostalCode:       body.PostalCode,
			Country:          body.Country,
			PhoneNumber:      body.PhoneNumber,
			CompanyID:        body.CompanyID,
			LabourCost:       body.LabourCost,
			CostUnit:         models.CostUnit(body.CostUnit),
			Surveys:          body.Surveys,
			IsAdmin:          body.IsAdmin,
			PermissionLevel:  models.PositionType(body.PermissionLevel),
			InviterFirstName: body.InviterFirstName,
			InviterLastName:  body.InviterLastName,
		}

		user, token, err := CreateWithoutPassword(in)
		if err != nil {
			return err
		}

		companyName := ""
		if user.CompanyID != nil {
			var company models.Company
			if err := database.DB.First(&company, "id = ?", *user.CompanyID).Error; err == nil {
				companyName = company.CompanyName
			}
		}

		if err := m.SendInvitation(mailer.Invitation{
			Email:            user.Email,
			FirstName:        user.FirstName,
			CompanyName:      companyName,
			InviterFirstName: body.InviterFirstName,
			InviterLastName:  body.InviterLastName,
			Token:            token,
		}); err != nil {
			// Kayıtlar oluştu; e-posta hatası daveti geçersiz kılmaz
			logs.Logger.Errorf("Davet e-postası gönderilemedi (%s): %v", user.Email, err)
		}

		return c.JSON(toUserResponse(user))
	}
}

func PatchUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PatchUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		user, err := GetByID(sessionUserID(c))
		if err != nil {
			return err
		}

		if body.FirstName != nil {
			user.FirstName = *body.FirstName
		}
		if body.LastName != nil {
			user.LastName = *body.LastName
		}
		if body.StreetAddress != nil {
			user.StreetAddress = *body.StreetAddress
		}
		if body.City != nil {
			user.City = *body.City
		}
		if body.Province != nil {
			user.Province = *body.Province
		}
		if body.PostalCode != nil {
			user.PostalCode = *body.PostalCode
		}
		if body.Country != nil {
			user.Country = *body.Country
		}
		if body.PhoneNumber != nil {
			user.PhoneNumber = *body.PhoneNumber
		}

		if err := database.DB.Save(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}
		return c.JSON(toUserResponse(user))
	}
}

func UpdatePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		var body UpdatePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Hash == "" || body.Salt == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Hash ve salt zorunlu")
		}

		if err := UpdatePassword(uint(userID), body.Hash, body.Salt); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

func FindVerificationTokenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := FindVerificationToken(c.Params("token"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"token":  record.Token,
			"userId": record.UserID,
		})
	}
}

func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id'si")
		}

		if err := Delete(uint(userID), sessionUserID(c)); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
