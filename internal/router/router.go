package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tonelab-collective/booking/docs"
	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/middleware"
	"github.com/tonelab-collective/booking/internal/modules/handler"
	"github.com/tonelab-collective/booking/internal/modules/serializer"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	Sessions       middleware.SessionVerifier
	BookingHandler *handler.BookingHandler
	ContentHandler *handler.ContentHandler
	AdminHandler   *handler.AdminHandler
	ReceiptHandler *handler.ReceiptHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// stored receipts and site images
	r.GET("/objects/*path", d.ReceiptHandler.GetObject)
	r.GET("/public-objects/*path", d.ReceiptHandler.GetPublicObject)

	admin := middleware.AdminAuth(d.Sessions)

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", d.BookingHandler.CreateBooking)
			bookings.GET("", d.BookingHandler.ListBookings)
			bookings.GET("/:id", d.BookingHandler.GetBooking)
			bookings.DELETE("/:id", admin, d.BookingHandler.DeleteBooking)
		}

		content := api.Group("/content")
		{
			content.GET("/public", d.ContentHandler.ListPublicContent)
			content.GET("", admin, d.ContentHandler.ListContent)
			content.PUT("/:id", admin, d.ContentHandler.UpdateContent)
			content.POST("/upload-image", admin, d.ContentHandler.ImageUploadURL)
			content.POST("/images", admin, d.ContentHandler.UploadImage)
		}

		receipts := api.Group("/receipts")
		{
			receipts.POST("/upload", d.ReceiptHandler.ReceiptUploadURL)
			receipts.POST("", d.ReceiptHandler.UploadReceipt)
		}

		adm := api.Group("/admin")
		{
			adm.POST("/login", d.AdminHandler.Login)
			adm.POST("/logout", d.AdminHandler.Logout)

			adm.GET("/stats", admin, d.AdminHandler.Stats)
			adm.GET("/recent-bookings", admin, d.AdminHandler.RecentBookings)
			adm.GET("/bookings", admin, d.AdminHandler.Bookings)
			adm.GET("/bookings/:id/notifications", admin, d.AdminHandler.BookingNotifications)
		}
	}
	return r
}
