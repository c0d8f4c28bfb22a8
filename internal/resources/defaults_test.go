package resources

import (
	"encoding/json"
	"testing"

	"portal-backend/internal/database"
	"portal-backend/internal/models"
	"portal-backend/internal/testutil"
)

func createCompany(t *testing.T, ownerID uint) *models.Company {
	t.Helper()
	co := models.Company{OwnerID: ownerID}
	if err := database.DB.Create(&co).Error; err != nil {
		t.Fatalf("şirket oluşturulamadı: %v", err)
	}
	return &co
}

func listCompanyResources(t *testing.T, companyID uint) []models.Resource {
	t.Helper()
	var list []models.Resource
	if err := database.DB.Where("company_id = ?", companyID).Find(&list).Error; err != nil {
		t.Fatalf("varlıklar listelenemedi: %v", err)
	}
	return list
}

func TestCreateDefaultsFreight(t *testing.T) {
	testutil.SetupDB(t)
	co := createCompany(t, 1)

	if err := CreateDefaults(co.ID, "Freight Transport Company"); err != nil {
		t.Fatalf("varsayılan varlıklar oluşturulamadı: %v", err)
	}

	list := listCompanyResources(t, co.ID)
	if len(list) != 1 {
		t.Fatalf("varlık sayısı %d, 1 bekleniyordu", len(list))
	}
	if list[0].Name != "Freight Truck" || list[0].Type != models.ResourceTruck {
		t.Fatalf("beklenmeyen varlık: %+v", list[0])
	}

	var props map[string]string
	if err := json.Unmarshal(list[0].AdditionalProperties, &props); err != nil {
		t.Fatalf("ek özellikler çözümlenemedi: %v", err)
	}
	if props["drivingLicenseRequirement"] != "C" || props["fuelType"] != "Diesel" {
		t.Fatalf("beklenmeyen ek özellikler: %v", props)
	}
}

func TestCreateDefaultsUnknownIndustry(t *testing.T) {
	testutil.SetupDB(t)
	co := createCompany(t, 1)

	if err := CreateDefaults(co.ID, "Rail Transport Company"); err != nil {
		t.Fatalf("varsayılan varlıklar oluşturulamadı: %v", err)
	}

	list := listCompanyResources(t, co.ID)
	if len(list) != 2 {
		t.Fatalf("varlık sayısı %d, 2 bekleniyordu", len(list))
	}

	types := map[models.ResourceType]bool{}
	for _, r := range list {
		types[r.Type] = true
	}
	if !types[models.ResourceTruck] || !types[models.ResourceCar] {
		t.Fatalf("beklenmeyen varlık tipleri: %v", types)
	}
}

func TestCreateTransportAssets(t *testing.T) {
	testutil.SetupDB(t)
	co := createCompany(t, 1)

	if err := CreateTransportAssets(co.ID); err != nil {
		t.Fatalf("taşıma varlıkları oluşturulamadı: %v", err)
	}
	if list := listCompanyResources(t, co.ID); len(list) == 0 {
		t.Fatal("taşıma varlıkları oluşmamış")
	}
}
