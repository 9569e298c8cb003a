package routes

import (
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stayhub/controllers"
	_ "stayhub/docs"
	"stayhub/middleware"
	"stayhub/services"
	"stayhub/services/logger"
	"stayhub/services/notification"
	"stayhub/store"
)

// Dependencies are the wired infrastructure the services are built from.
type Dependencies struct {
	Store            store.Store
	Redis            *redis.Client
	Cloudinary       *cloudinary.Cloudinary
	Notifier         notification.Service
	Mailer           services.Mailer
	Tokens           *services.TokenService
	Logger           logger.Logger
	GoogleClientID   string
	GoogleVerifier   services.GoogleVerifier
	PropertyIDPrefix string
	PropertyIDOffset int64
	Now              func() time.Time
}

// Services groups everything the routes and jobs call into.
type Services struct {
	Auth       *services.AuthService
	Properties *services.PropertyService
	Rooms      *services.RoomService
	Bookings   *services.BookingService
	Payments   *services.PaymentService
	Uploads    *services.UploadService
}

func NewServices(d Dependencies) *Services {
	cache := services.NewCache(d.Redis, d.Logger)
	return &Services{
		Auth: services.NewAuthService(services.AuthServiceOptions{
			Store:          d.Store,
			Tokens:         d.Tokens,
			Mailer:         d.Mailer,
			Logger:         d.Logger,
			GoogleClientID: d.GoogleClientID,
			VerifyGoogle:   d.GoogleVerifier,
		}),
		Properties: services.NewPropertyService(services.PropertyServiceOptions{
			Store:    d.Store,
			Cache:    cache,
			Logger:   d.Logger,
			IDPrefix: d.PropertyIDPrefix,
			IDOffset: d.PropertyIDOffset,
			Now:      d.Now,
		}),
		Rooms: services.NewRoomService(services.RoomServiceOptions{
			Store:    d.Store,
			Cache:    cache,
			Logger:   d.Logger,
			Notifier: d.Notifier,
			Now:      d.Now,
		}),
		Bookings: services.NewBookingService(services.BookingServiceOptions{
			Store:    d.Store,
			Cache:    cache,
			Logger:   d.Logger,
			Notifier: d.Notifier,
			Now:      d.Now,
		}),
		Payments: services.NewPaymentService(services.PaymentServiceOptions{
			Store:  d.Store,
			Logger: d.Logger,
		}),
		Uploads: services.NewUploadService(d.Cloudinary, d.Logger),
	}
}

func SetupRoutes(router *gin.Engine, svc *Services, guard *middleware.Guard, secureCookies bool, log logger.Logger) {
	authController := controllers.NewAuthController(svc.Auth, secureCookies)
	propertyController := controllers.NewPropertyController(svc.Properties)
	roomController := controllers.NewRoomController(svc.Rooms)
	bookingController := controllers.NewBookingController(svc.Bookings, log)
	paymentController := controllers.NewPaymentController(svc.Payments)
	uploadController := controllers.NewUploadController(svc.Uploads)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.SessionMiddleware())

	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.POST("/auth/google", authController.GoogleLogin)
	api.POST("/auth/logout", authController.Logout)
	api.POST("/vendor/login", authController.VendorLogin)
	api.POST("/admin/login", authController.AdminLogin)

	api.GET("/properties", propertyController.ListPublic)
	api.GET("/properties/:id", propertyController.GetPublic)
	api.POST("/frontend/booking", bookingController.CreateFrontend)

	student := api.Group("", guard.RequireStudent())
	student.GET("/auth/profile", authController.Profile)
	student.GET("/student/referrals", authController.Referrals)
	student.GET("/student/bookings", bookingController.StudentList)
	student.DELETE("/student/bookings/:id", bookingController.StudentCancel)
	student.GET("/student/wallet", paymentController.Wallet)

	vendor := api.Group("", guard.RequireVendor())
	registerPropertyRoutes(vendor.Group("/vendor-properties"), propertyController, roomController)
	vendor.PUT("/vendor-properties/:id", propertyController.Update)
	vendor.GET("/vendor/bookings", bookingController.VendorList)
	vendor.GET("/vendor/bookings/stats", bookingController.VendorStats)
	vendor.PUT("/vendor/bookings/:id/status", bookingController.VendorUpdateStatus)

	admin := api.Group("", guard.RequireAdmin())
	adminProps := admin.Group("/admin/vendor-properties")
	registerPropertyRoutes(adminProps, propertyController, roomController)
	adminProps.PUT("/:id", propertyController.AdminUpdate)
	adminProps.PATCH("/:id/status", propertyController.SetStatus)

	admin.POST("/admin/vendors", authController.CreateVendor)
	admin.GET("/admin/vendors", authController.ListVendors)

	admin.POST("/booking", bookingController.Create)
	admin.GET("/booking", bookingController.List)
	admin.GET("/booking/stats", bookingController.Stats)
	admin.GET("/booking/:id", bookingController.Get)
	admin.PUT("/booking/:id", bookingController.Update)
	admin.DELETE("/booking/:id", bookingController.Delete)

	admin.GET("/admin/payments", paymentController.List)
	admin.POST("/admin/payments", paymentController.Record)
	admin.PUT("/admin/payments/:id", paymentController.Update)
	admin.DELETE("/admin/payments/:id", paymentController.Delete)

	uploads := api.Group("/upload", guard.RequireAdminOrVendor())
	uploads.POST("", uploadController.Upload)
	uploads.POST("/multi", uploadController.UploadMany)
}

// registerPropertyRoutes mounts the routes vendors and admins share; the
// handlers scope by the caller's role.
func registerPropertyRoutes(g *gin.RouterGroup, p controllers.PropertyController, r controllers.RoomController) {
	g.GET("", p.List)
	g.POST("", p.Create)
	g.GET("/:id", p.Get)
	g.DELETE("/:id", p.Delete)

	g.GET("/:id/rooms", r.List)
	g.POST("/:id/rooms", r.Create)
	g.GET("/:id/rooms/:roomId", r.Get)
	g.PUT("/:id/rooms/:roomId", r.Update)
	g.DELETE("/:id/rooms/:roomId", r.Delete)
	g.PATCH("/:id/beds/:roomId/:bedId", r.SetBedStatus)
}
