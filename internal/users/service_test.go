package users

import (
	"errors"
	"testing"
	"time"

	"portal-backend/internal/database"
	"portal-backend/internal/models"
	"portal-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func countOf(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := database.DB.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("sayım başarısız: %v", err)
	}
	return count
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("fiber.Error bekleniyordu, gelen: %v", err)
	}
	return fe.Code
}

func TestCreateWithCompanyProvisionsEverything(t *testing.T) {
	testutil.SetupDB(t)

	user, err := CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("kayıt başarısız: %v", err)
	}

	var company models.Company
	if err := database.DB.Where("owner_id = ?", user.ID).First(&company).Error; err != nil {
		t.Fatalf("şirket oluşmamış: %v", err)
	}
	if company.CompanyDetailsID == nil {
		t.Fatal("şirket detayları bağlanmamış")
	}
	if user.CompanyID == nil || *user.CompanyID != company.ID {
		t.Fatal("sahip kendi şirketinin üyesi yapılmamış")
	}

	if n := countOf(t, &models.Account{}, "owner_id = ?", user.ID); n != 1 {
		t.Fatalf("hesap kaydı sayısı %d, 1 bekleniyordu", n)
	}
	if n := countOf(t, &models.CompanyDetails{}, "owner_id = ?", user.ID); n != 1 {
		t.Fatalf("şirket detayı sayısı %d, 1 bekleniyordu", n)
	}
	if n := countOf(t, &models.BusinessHours{}, "owner_id = ?", user.ID); n != 1 {
		t.Fatalf("çalışma saati kaydı sayısı %d, 1 bekleniyordu", n)
	}
	if n := countOf(t, &models.Communication{}, "user_id = ?", user.ID); n != 1 {
		t.Fatalf("bildirim kaydı sayısı %d, 1 bekleniyordu", n)
	}

	var pt models.PaymentType
	if err := database.DB.Where("user_id = ?", user.ID).First(&pt).Error; err != nil {
		t.Fatalf("işçilik maliyeti kaydı oluşmamış: %v", err)
	}
	if pt.LabourCost != 0 || pt.CostUnit != models.CostUnitPerHour {
		t.Fatalf("beklenmeyen işçilik maliyeti varsayılanları: %+v", pt)
	}

	if user.PositionID == nil {
		t.Fatal("pozisyon atanmamış")
	}
	var pos models.UserPosition
	if err := database.DB.First(&pos, "id = ?", *user.PositionID).Error; err != nil {
		t.Fatalf("pozisyon bulunamadı: %v", err)
	}
	if pos.Name != models.PositionCompanyOwner {
		t.Fatalf("sahip pozisyonu %s, COMPANY_OWNER bekleniyordu", pos.Name)
	}
	var perm models.Permission
	if err := database.DB.Where("user_position_id = ?", pos.ID).First(&perm).Error; err != nil {
		t.Fatalf("yetki kaydı oluşmamış: %v", err)
	}
	if !perm.IsAdmin {
		t.Fatal("sahip admin yetkisiyle açılmalıydı")
	}
}

func TestCreateWithoutPasswordAppliesOverrides(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("sahip kaydı başarısız: %v", err)
	}

	cost := 25.5
	surveys := true
	user, token, err := CreateWithoutPassword(InviteInput{
		Email:           "worker@example.com",
		FirstName:       "Ayşe",
		CompanyID:       *owner.CompanyID,
		LabourCost:      &cost,
		CostUnit:        models.CostUnitPerMonth,
		Surveys:         &surveys,
		IsAdmin:         false,
		PermissionLevel: models.PositionDispatcher,
	})
	if err != nil {
		t.Fatalf("davet başarısız: %v", err)
	}
	if token == "" {
		t.Fatal("doğrulama token'ı boş")
	}
	if user.Hash != "" || user.Salt != "" {
		t.Fatal("davetli kullanıcı kimlik bilgisiz açılmalıydı")
	}
	if user.CompanyID == nil || *user.CompanyID != *owner.CompanyID {
		t.Fatal("davetli kullanıcı şirkete üye yapılmamış")
	}

	var pt models.PaymentType
	if err := database.DB.Where("user_id = ?", user.ID).First(&pt).Error; err != nil {
		t.Fatalf("işçilik maliyeti kaydı oluşmamış: %v", err)
	}
	if pt.LabourCost != cost || pt.CostUnit != models.CostUnitPerMonth {
		t.Fatalf("davet tercihleri uygulanmamış: %+v", pt)
	}

	var com models.Communication
	if err := database.DB.Where("user_id = ?", user.ID).First(&com).Error; err != nil {
		t.Fatalf("bildirim kaydı oluşmamış: %v", err)
	}
	if !com.Surveys {
		t.Fatal("surveys tercihi uygulanmamış")
	}

	var pos models.UserPosition
	if err := database.DB.First(&pos, "id = ?", *user.PositionID).Error; err != nil {
		t.Fatalf("pozisyon bulunamadı: %v", err)
	}
	if pos.Name != models.PositionDispatcher {
		t.Fatalf("pozisyon %s, DISPATCHER bekleniyordu", pos.Name)
	}

	var vt models.VerificationToken
	if err := database.DB.Where("token = ?", token).First(&vt).Error; err != nil {
		t.Fatalf("doğrulama token'ı kaydedilmemiş: %v", err)
	}
	ttl := time.Until(vt.ExpiresAt)
	if ttl < 71*time.Hour || ttl > 73*time.Hour {
		t.Fatalf("beklenmeyen token süresi: %v", ttl)
	}
}

func TestCreateWithoutPasswordDuplicateEmail(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("sahip kaydı başarısız: %v", err)
	}

	_, _, err = CreateWithoutPassword(InviteInput{Email: "owner@example.com", CompanyID: *owner.CompanyID})
	if err == nil {
		t.Fatal("mevcut email ile davet kabul edildi")
	}
	if code := fiberCode(t, err); code != fiber.StatusBadRequest {
		t.Fatalf("beklenmeyen durum kodu: %d", code)
	}
}

func TestCreateWithoutPasswordUnknownCompanyRollsBack(t *testing.T) {
	testutil.SetupDB(t)

	_, _, err := CreateWithoutPassword(InviteInput{Email: "worker@example.com", CompanyID: 999})
	if err == nil {
		t.Fatal("bilinmeyen şirket için davet kabul edildi")
	}
	if code := fiberCode(t, err); code != fiber.StatusNotFound {
		t.Fatalf("beklenmeyen durum kodu: %d", code)
	}

	if n := countOf(t, &models.User{}, "email = ?", "worker@example.com"); n != 0 {
		t.Fatal("başarısız davetten kullanıcı kaydı kalmış")
	}
	if n := countOf(t, &models.VerificationToken{}, "1 = 1"); n != 0 {
		t.Fatal("başarısız davetten token kaydı kalmış")
	}
}

func TestFindVerificationTokenExpired(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("sahip kaydı başarısız: %v", err)
	}

	expired := models.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    owner.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := database.DB.Create(&expired).Error; err != nil {
		t.Fatalf("token kaydedilemedi: %v", err)
	}

	_, err = FindVerificationToken(expired.Token)
	if err == nil {
		t.Fatal("süresi dolmuş token kabul edildi")
	}
	if code := fiberCode(t, err); code != fiber.StatusBadRequest {
		t.Fatalf("beklenmeyen durum kodu: %d", code)
	}

	// Bilinmeyen token da aynı şekilde reddedilir
	_, err = FindVerificationToken("boyle-bir-token-yok")
	if err == nil {
		t.Fatal("bilinmeyen token kabul edildi")
	}
	if code := fiberCode(t, err); code != fiber.StatusBadRequest {
		t.Fatalf("beklenmeyen durum kodu: %d", code)
	}
}

func TestDeleteOwnerForbidden(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("sahip kaydı başarısız: %v", err)
	}

	err = Delete(owner.ID, owner.ID)
	if err == nil {
		t.Fatal("şirket sahibi silinebildi")
	}
	if code := fiberCode(t, err); code != fiber.StatusForbidden {
		t.Fatalf("beklenmeyen durum kodu: %d", code)
	}
}

func TestDeleteMemberCascades(t *testing.T) {
	testutil.SetupDB(t)

	owner, err := CreateWithCompany("owner@example.com", "hash", "salt")
	if err != nil {
		t.Fatalf("sahip kaydı başarısız: %v", err)
	}

	member, token, err := CreateWithoutPassword(InviteInput{
		Email:     "worker@example.com",
		CompanyID: *owner.CompanyID,
	})
	if err != nil {
		t.Fatalf("davet başarısız: %v", err)
	}
	positionID := *member.PositionID

	if err := Delete(member.ID, owner.ID); err != nil {
		t.Fatalf("silme başarısız: %v", err)
	}

	if n := countOf(t, &models.User{}, "id = ?", member.ID); n != 0 {
		t.Fatal("kullanıcı silinmemiş")
	}
	if n := countOf(t, &models.Account{}, "owner_id = ?", member.ID); n != 0 {
		t.Fatal("hesap kaydı silinmemiş")
	}
	if n := countOf(t, &models.BusinessHours{}, "owner_id = ?", member.ID); n != 0 {
		t.Fatal("çalışma saati kaydı silinmemiş")
	}
	if n := countOf(t, &models.Communication{}, "user_id = ?", member.ID); n != 0 {
		t.Fatal("bildirim kaydı silinmemiş")
	}
	if n := countOf(t, &models.PaymentType{}, "user_id = ?", member.ID); n != 0 {
		t.Fatal("işçilik maliyeti kaydı silinmemiş")
	}
	if n := countOf(t, &models.UserPosition{}, "id = ?", positionID); n != 0 {
		t.Fatal("pozisyon silinmemiş")
	}
	if n := countOf(t, &models.Permission{}, "user_position_id = ?", positionID); n != 0 {
		t.Fatal("yetki kaydı silinmemiş")
	}
	if n := countOf(t, &models.VerificationToken{}, "token = ?", token); n != 0 {
		t.Fatal("doğrulama token'ı silinmemiş")
	}

	// Sahip ve şirket etkilenmez
	if n := countOf(t, &models.User{}, "id = ?", owner.ID); n != 1 {
		t.Fatal("sahip kaydı kaybolmuş")
	}
	if n := countOf(t, &models.Company{}, "owner_id = ?", owner.ID); n != 1 {
		t.Fatal("şirket kaydı kaybolmuş")
	}
}
