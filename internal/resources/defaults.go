package resources

import (
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"gorm.io/datatypes"
)

// Sektör adları onboarding formundaki seçeneklerle birebir aynıdır.
const (
	industryFreight   = "Freight Transport Company"
	industryPassenger = "Passenger Transport Company"
	industryLogistics = "Logistics and Supply Chain Company"
)

func defaultResourcesFor(industry string, companyID uint) []models.Resource {
	switch industry {
	case industryFreight:
		return []models.Resource{{
			Name:      "Freight Truck",
			Type:      models.ResourceTruck,
			CompanyID: companyID,
			AdditionalProperties: datatypes.JSON([]byte(`{"registrationNumber":"FR-1234","mark":"FreightBrand","model":"FreightModel","sizeInCubicMeters":"50","department":"Logistics","drivingLicenseRequirement":"C","fuelType":"Diesel"}`)),
		}}
	case industryPassenger:
		return []models.Resource{{
			Name:      "Passenger Car",
			Type:      models.ResourceCar,
			CompanyID: companyID,
			AdditionalProperties: datatypes.JSON([]byte(`{"registrationNumber":"PS-5678","mark":"PassengerBrand","model":"PassengerModel","sizeInCubicMeters":"5","department":"Transport","drivingLicenseRequirement":"B","fuelType":"Petrol"}`)),
		}}
	case industryLogistics:
		return []models.Resource{{
			Name:      "Logistics Van",
			Type:      models.ResourceVan,
			CompanyID: companyID,
			AdditionalProperties: datatypes.JSON([]byte(`{"registrationNumber":"LG-9012","mark":"LogisticsBrand","model":"LogisticsModel","sizeInCubicMeters":"30","department":"Supply Chain","drivingLicenseRequirement":"B","fuelType":"Diesel"}`)),
		}}
	default:
		return []models.Resource{
			{
				Name:      "Default Truck",
				Type:      models.ResourceTruck,
				CompanyID: companyID,
				AdditionalProperties: datatypes.JSON([]byte(`{"registrationNumber":"DF-3456","mark":"DefaultBrand","model":"DefaultModel","sizeInCubicMeters":"50","department":"General","drivingLicenseRequirement":"C","fuelType":"Diesel"}`)),
			},
			{
				Name:      "Default Car",
				Type:      models.ResourceCar,
				CompanyID: companyID,
				AdditionalProperties: datatypes.JSON([]byte(`{"registrationNumber":"DF-7890","mark":"DefaultBrand","model":"DefaultModel","sizeInCubicMeters":"5","department":"General","drivingLicenseRequirement":"B","fuelType":"Petrol"}`)),
			},
		}
	}
}

// CreateDefaults şirkete sektörüne göre başlangıç varlıklarını açar.
func CreateDefaults(companyID uint, industry string) error {
	for _, r := range defaultResourcesFor(industry, companyID) {
		resource := r
		if err := database.DB.Create(&resource).Error; err != nil {
			return err
		}
	}
	logs.Logger.Infof("Şirket %d için varsayılan varlıklar oluşturuldu (%s)", companyID, industry)
	return nil
}

// CreateTransportAssets onboarding sırasında sektör taşımacılık olarak
// seçildiğinde çağrılır.
func CreateTransportAssets(companyID uint) error {
	return CreateDefaults(companyID, "")
}
