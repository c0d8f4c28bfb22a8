package main

import (
	"log"
	"strings"

	"portal-backend/internal/account"
	"portal-backend/internal/auth"
	"portal-backend/internal/businesshours"
	"portal-backend/internal/communications"
	"portal-backend/internal/company"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/logs"
	"portal-backend/internal/mailer"
	"portal-backend/internal/orders"
	"portal-backend/internal/payment"
	"portal-backend/internal/permissions"
	"portal-backend/internal/resources"
	"portal-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	logs.Init(cfg.LogLevel, cfg.LogFormat)
	database.Init(cfg)

	m := mailer.New(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logs.Logger.Errorf("Beklenmeyen hata: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizleyerek geçir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	// Public auth
	app.Post("/auth/sign-up", auth.SignUpHandler(cfg))
	app.Post("/auth/sign-in", auth.SignInHandler(cfg))
	app.Patch("/auth/verify/:token", auth.VerifyHandler(cfg))
	app.Get("/auth/user/:token", auth.GetUserByTokenHandler())

	// Protected
	protected := app.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/sign-out", auth.SignOutHandler())
	protected.Get("/auth/session", auth.SessionHandler())

	// Kullanıcılar
	protected.Get("/users", users.GetUserDetailsHandler())
	protected.Get("/users/find-by-email", users.FindByEmailHandler())
	protected.Get("/users/get-user-by-id/:userId", users.GetUserByIDHandler())
	protected.Get("/users/find-verification-token/:token", users.FindVerificationTokenHandler())
	protected.Post("/users/create-new-user-without-password", users.CreateUserWithoutPasswordHandler(m))
	protected.Patch("/users", users.PatchUserHandler())
	protected.Patch("/users/update-password/:userId", users.UpdatePasswordHandler())
	protected.Delete("/users/:userId", users.DeleteUserHandler())

	// Hesap
	protected.Get("/account", account.GetAccountHandler())
	protected.Patch("/account", account.PatchAccountHandler())

	// Şirket
	protected.Post("/company", company.CreateCompanyHandler())
	protected.Get("/company", company.GetCompanyHandler())
	protected.Patch("/company/patch-company", company.PatchCompanyHandler())
	protected.Get("/company/get-users-of-company", company.GetUsersOfCompanyHandler())
	protected.Get("/company/get-users-of-company/:companyId", company.GetUsersOfCompanyByIDHandler())
	protected.Patch("/company/add-user-to-company/:companyId/:userId", company.AddUserToCompanyHandler())
	protected.Patch("/company/connect-company-details/:companyId/:companyDetailsId", company.ConnectCompanyDetailsHandler())
	protected.Get("/company/get-company-by-id/:companyId", company.GetCompanyByIDHandler())

	// Şirket detayları
	protected.Post("/company-details", company.CreateCompanyDetailsHandler())
	protected.Get("/company-details/get", company.GetCompanyDetailsHandler())
	protected.Patch("/company-details/patch", company.PatchCompanyDetailsHandler())
	protected.Get("/company-details/industry/:companyId", company.GetIndustryByCompanyIDHandler())

	// Çalışma saatleri
	protected.Post("/business-hours", businesshours.CreateBusinessHoursHandler())
	protected.Get("/business-hours", businesshours.GetBusinessHoursHandler())
	protected.Get("/business-hours/:userId", businesshours.GetBusinessHoursByUserIDHandler())
	protected.Patch("/business-hours", businesshours.PatchBusinessHoursHandler())
	protected.Patch("/business-hours/:userId", businesshours.PatchBusinessHoursByUserIDHandler())

	// Bildirim tercihleri (iki yol aynı tabloya gider)
	for _, prefix := range []string{"/communications", "/user-notification-settings"} {
		grp := protected.Group(prefix)
		grp.Post("/", communications.CreateCommunicationHandler())
		grp.Get("/", communications.GetCommunicationHandler())
		grp.Get("/user/:userId", communications.GetCommunicationByUserIDHandler())
		grp.Patch("/", communications.PatchCommunicationHandler())
		grp.Patch("/user/:userId", communications.PatchCommunicationByUserIDHandler())
	}

	// İşçilik maliyeti (iki yol aynı tabloya gider)
	for _, prefix := range []string{"/payment-type", "/labour-cost"} {
		grp := protected.Group(prefix)
		grp.Post("/", payment.CreatePaymentTypeHandler())
		grp.Get("/:userId", payment.GetPaymentTypeHandler())
		grp.Patch("/:userId", payment.PatchPaymentTypeHandler())
		grp.Delete("/:userId", payment.DeletePaymentTypeHandler())
	}

	// Yetkiler ve pozisyonlar
	protected.Post("/permissions", permissions.CreatePermissionHandler())
	protected.Get("/permissions/user/:userId", permissions.GetPermissionByUserIDHandler())
	protected.Patch("/permissions/:id", permissions.PatchPermissionHandler())
	protected.Delete("/permissions/:id", permissions.DeletePermissionHandler())

	protected.Get("/user-position", permissions.GetSessionUserPositionHandler())
	protected.Post("/user-position", permissions.CreateUserPositionHandler())
	protected.Post("/user-position/assign", permissions.AssignUserPositionHandler())
	protected.Get("/user-position/:id", permissions.GetUserPositionHandler())
	protected.Patch("/user-position/:id", permissions.PatchUserPositionHandler())
	protected.Delete("/user-position/:id", permissions.DeleteUserPositionHandler())

	// Varlıklar
	protected.Post("/resources", resources.CreateResourceHandler())
	protected.Get("/resources", resources.ListResourcesHandler())
	protected.Post("/resources/default/:companyId", resources.CreateDefaultResourcesHandler())
	protected.Get("/resources/:id", resources.GetResourceHandler())
	protected.Patch("/resources/:id", resources.PatchResourceHandler())
	protected.Delete("/resources/:id", resources.DeleteResourceHandler())

	// Siparişler
	protected.Post("/orders", orders.CreateOrderHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())
	protected.Patch("/orders/:id", orders.PatchOrderHandler())
	protected.Delete("/orders/:id", orders.DeleteOrderHandler())

	protected.Post("/order-companies", orders.CreateOrderCompanyHandler())
	protected.Get("/order-companies", orders.ListOrderCompaniesHandler())
	protected.Get("/order-companies/:id", orders.GetOrderCompanyHandler())
	protected.Patch("/order-companies/:id", orders.PatchOrderCompanyHandler())
	protected.Delete("/order-companies/:id", orders.DeleteOrderCompanyHandler())

	protected.Post("/order-resources", orders.CreateOrderResourceHandler())
	protected.Get("/order-resources", orders.ListOrderResourcesHandler())
	protected.Get("/order-resources/:id", orders.GetOrderResourceHandler())
	protected.Patch("/order-resources/:id", orders.PatchOrderResourceHandler())
	protected.Delete("/order-resources/:id", orders.DeleteOrderResourceHandler())

	logs.Logger.Infof("Server çalışıyor port: %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
