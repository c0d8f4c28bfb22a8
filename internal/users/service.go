package users

import (
	"errors"
	"time"

	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doğrulama token'ları 72 saat geçerlidir
const verificationTokenTTL = 72 * time.Hour

// FindByEmail kullanıcıyı email ile arar; bulunamazsa (nil, nil) döner.
func FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı sorgulanamadı")
	}
	return &user, nil
}

func GetByID(userID uint) (*models.User, error) {
	var user models.User
	err := database.DB.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı sorgulanamadı")
	}
	return &user, nil
}

// CreateWithCompany yeni kayıt olan kullanıcı için tüm bağımlı kayıtları tek
// transaction içinde oluşturur: şirket, şirket detayları, üyelik, çalışma
// saatleri, bildirim tercihleri, işçilik maliyeti, pozisyon ve yetki.
// Herhangi bir adım başarısız olursa hiçbir kayıt kalmaz.
func CreateWithCompany(email, hash, salt string) (*models.User, error) {
	var user models.User

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		user = models.User{Email: email, Hash: hash, Salt: salt}
		if err := tx.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		if err := tx.Create(&models.Account{OwnerID: user.ID}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hesap oluşturulamadı")
		}

		company, err := createCompany(tx, user.ID)
		if err != nil {
			return err
		}

		details, err := createCompanyDetails(tx, user.ID, company.ID)
		if err != nil {
			return err
		}

		company.CompanyDetailsID = &details.ID
		if err := tx.Save(company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket detayları bağlanamadı")
		}

		// Sahip, kendi şirketinin üyesi de olur
		user.CompanyID = &company.ID

		if err := createDependentRecords(tx, user.ID); err != nil {
			return err
		}

		level := models.PositionManager
		if user.ID == company.OwnerID {
			level = models.PositionCompanyOwner
		}
		positionID, err := createPositionWithPermission(tx, level, true)
		if err != nil {
			return err
		}
		user.PositionID = &positionID

		if err := tx.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}
		return nil
	})
	if err != nil {
		logs.Logger.Errorf("Kullanıcı provizyonu başarısız (%s): %v", email, err)
		return nil, err
	}

	logs.Logger.Infof("Kullanıcı ve şirket kayıtları oluşturuldu: %s (id=%d)", email, user.ID)
	return &user, nil
}

// InviteInput - yönetici tarafından davet edilen kullanıcının bilgileri
type InviteInput struct {
	Email         string
	FirstName     string
	LastName      string
	StreetAddress string
	City          string
	Province      string
	PostalCode    string
	Country       string
	PhoneNumber   string

	CompanyID uint

	LabourCost *float64
	CostUnit   models.CostUnit
	Surveys    *bool

	IsAdmin         bool
	PermissionLevel models.PositionType

	InviterFirstName string
	InviterLastName  string
}

// CreateWithoutPassword davet edilen kullanıcıyı boş kimlik bilgileriyle
// oluşturur, verilen şirkete üye yapar ve bağımlı kayıtları kurar. Dönen token
// davet e-postasında kullanılır; e-posta gönderimi transaction dışındadır.
func CreateWithoutPassword(in InviteInput) (*models.User, string, error) {
	existing, err := FindByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Bu email ile kayıtlı kullanıcı zaten var")
	}

	var user models.User
	token := uuid.NewString()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, "id = ?", in.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket sorgulanamadı")
		}

		user = models.User{
			Email:         in.Email,
			Hash:          "", // şifre doğrulama sırasında belirlenecek
			Salt:          "",
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			StreetAddress: in.StreetAddress,
			City:          in.City,
			Province:      in.Province,
			PostalCode:    in.PostalCode,
			Country:       in.Country,
			PhoneNumber:   in.PhoneNumber,
			CompanyID:     &in.CompanyID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		if err := tx.Create(&models.Account{OwnerID: user.ID}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hesap oluşturulamadı")
		}

		if err := createDependentRecords(tx, user.ID); err != nil {
			return err
		}

		// Davette verilen tercihler varsayılanların üzerine yazılır
		if in.Surveys != nil {
			if err := tx.Model(&models.Communication{}).Where("user_id = ?", user.ID).
				Update("surveys", *in.Surveys).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Bildirim tercihleri güncellenemedi")
			}
		}
		if in.LabourCost != nil || in.CostUnit != "" {
			updates := map[string]interface{}{}
			if in.LabourCost != nil {
				updates["labour_cost"] = *in.LabourCost
			}
			if in.CostUnit != "" {
				updates["cost_unit"] = in.CostUnit
			}
			if err := tx.Model(&models.PaymentType{}).Where("user_id = ?", user.ID).
				Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "İşçilik maliyeti güncellenemedi")
			}
		}

		level := in.PermissionLevel
		if level == "" {
			level = models.PositionWorker
		}
		positionID, err := createPositionWithPermission(tx, level, in.IsAdmin)
		if err != nil {
			return err
		}
		user.PositionID = &positionID
		if err := tx.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		vt := models.VerificationToken{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(verificationTokenTTL),
		}
		if err := tx.Create(&vt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Doğrulama token'ı kaydedilemedi")
		}
		return nil
	})
	if err != nil {
		logs.Logger.Errorf("Davetli kullanıcı provizyonu başarısız (%s): %v", in.Email, err)
		return nil, "", err
	}

	logs.Logger.Infof("Davetli kullanıcı oluşturuldu: %s (id=%d)", in.Email, user.ID)
	return &user, token, nil
}

func createCompany(tx *gorm.DB, ownerID uint) (*models.Company, error) {
	var count int64
	tx.Model(&models.Company{}).Where("owner_id = ?", ownerID).Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için şirket zaten mevcut")
	}

	company := models.Company{OwnerID: ownerID}
	if err := tx.Create(&company).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Şirket oluşturulamadı")
	}
	return &company, nil
}

func createCompanyDetails(tx *gorm.DB, ownerID, companyID uint) (*models.CompanyDetails, error) {
	var count int64
	tx.Model(&models.CompanyDetails{}).Where("owner_id = ?", ownerID).Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Bu kullanıcı için şirket detayları zaten mevcut")
	}

	details := models.CompanyDetails{OwnerID: ownerID, CompanyID: &companyID}
	if err := tx.Create(&details).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Şirket detayları oluşturulamadı")
	}
	return &details, nil
}

// createDependentRecords kullanıcıya bire bir bağlı varsayılan kayıtları açar.
func createDependentRecords(tx *gorm.DB, userID uint) error {
	if err := tx.Create(&models.BusinessHours{OwnerID: userID}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Çalışma saatleri oluşturulamadı")
	}
	if err := tx.Create(&models.Communication{UserID: userID}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Bildirim tercihleri oluşturulamadı")
	}
	pt := models.PaymentType{UserID: userID, LabourCost: 0, CostUnit: models.CostUnitPerHour}
	if err := tx.Create(&pt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "İşçilik maliyeti kaydı oluşturulamadı")
	}
	return nil
}

func createPositionWithPermission(tx *gorm.DB, level models.PositionType, isAdmin bool) (uint, error) {
	pos := models.UserPosition{Name: level}
	if err := tx.Create(&pos).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Pozisyon oluşturulamadı")
	}
	perm := models.Permission{UserPositionID: pos.ID, IsAdmin: isAdmin}
	if err := tx.Create(&perm).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Yetki kaydı oluşturulamadı")
	}
	return pos.ID, nil
}

// FindVerificationToken token'ı arar; süresi dolmuş veya bilinmeyen token'lar
// aynı şekilde reddedilir.
func FindVerificationToken(token string) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	err := database.DB.Where("token = ?", token).First(&vt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Token geçersiz veya süresi dolmuş")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Token sorgulanamadı")
	}
	if time.Now().After(vt.ExpiresAt) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Token geçersiz veya süresi dolmuş")
	}
	return &vt, nil
}

func DeleteVerificationToken(token string) error {
	if err := database.DB.Delete(&models.VerificationToken{}, "token = ?", token).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Token silinemedi")
	}
	return nil
}

func UpdatePassword(userID uint, hash, salt string) error {
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"hash": hash, "salt": salt}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Şifre güncellenemedi")
	}
	return nil
}

func UpdateLastLogin(userID uint) error {
	now := time.Now()
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login", now).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Son giriş zamanı güncellenemedi")
	}
	return nil
}

// Delete kullanıcıyı ve bire bir bağlı tüm kayıtlarını tek transaction içinde
// siler. Şirket sahibi silinemez.
func Delete(userID, requesterID uint) error {
	user, err := GetByID(userID)
	if err != nil {
		return err
	}

	var owned models.Company
	if err := database.DB.Where("owner_id = ?", userID).First(&owned).Error; err == nil {
		return fiber.NewError(fiber.StatusForbidden, "Şirket sahibi olan kullanıcı silinemez")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VerificationToken{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PaymentType{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Communication{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if user.PositionID != nil {
			if err := tx.Delete(&models.Permission{}, "user_position_id = ?", *user.PositionID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.UserPosition{}, "id = ?", *user.PositionID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.BusinessHours{}, "owner_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Account{}, "owner_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logs.Logger.Errorf("Kullanıcı silinemedi (id=%d): %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
	}

	logs.Logger.Infof("Kullanıcı silindi: id=%d (talep eden: %d)", userID, requesterID)
	return nil
}
